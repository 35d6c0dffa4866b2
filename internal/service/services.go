package service

import (
	"github.com/dom/softball-lineup/internal/config"
	"github.com/dom/softball-lineup/internal/metrics"
	"github.com/dom/softball-lineup/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

type Services struct {
	Auth   *AuthService
	Roster *RosterService
	Lineup *LineupService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, recorder *metrics.Recorder, log logrus.FieldLogger) *Services {
	return &Services{
		Auth:   NewAuthService(repos.Coach, repos.Session, cfg),
		Roster: NewRosterService(repos.Team, repos.Player, log),
		Lineup: NewLineupService(repos.Team, cfg.Lineup, cfg.PlanTTL, recorder, log),
	}
}

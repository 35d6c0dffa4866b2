package postgres

import (
	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the roster and account tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Coach{},
		&domain.CoachSession{},
		&domain.Team{},
		&domain.Player{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Coach:   NewCoachRepository(db),
		Session: NewSessionRepository(db),
		Team:    NewTeamRepository(db),
		Player:  NewPlayerRepository(db),
	}
}

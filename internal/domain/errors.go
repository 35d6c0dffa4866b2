package domain

import "errors"

// Roster validation errors
var (
	ErrInvalidPosition         = errors.New("invalid position")
	ErrInvalidGender           = errors.New("invalid gender")
	ErrInvalidPlayerName       = errors.New("player name is required")
	ErrInvalidPitchingPriority = errors.New("pitching priority must be non-negative")
	ErrDuplicatePlayer         = errors.New("player name already on roster")
)

// Roster lookup errors
var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrNotTeamCoach   = errors.New("only the team coach can perform this action")
)

// Game plan errors
var (
	ErrNoAttendees          = errors.New("no attending players")
	ErrUnknownPlayer        = errors.New("player is not on the roster")
	ErrInsufficientPlayers  = errors.New("not enough attending players to field a team")
	ErrUncoverablePosition  = errors.New("no attending player can cover position")
	ErrInvalidSlot          = errors.New("invalid assignment slot")
	ErrInvalidBattingSlot   = errors.New("invalid batting order slot")
	ErrMalformedSharedState = errors.New("malformed shared game state")
	ErrPlanNotFound         = errors.New("game plan not found")
)

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/service"
)

// rosterFile is the JSON roster format shared by every subcommand
type rosterFile struct {
	Team    string                `json:"team"`
	Players []service.PlayerInput `json:"players"`
}

// loadRoster reads and validates a roster file. Player order in the file is
// the roster order.
func loadRoster(path string) (*rosterFile, []domain.Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read roster: %w", err)
	}

	var file rosterFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse roster %s: %w", path, err)
	}

	players := make([]domain.Player, 0, len(file.Players))
	seen := make(map[string]bool, len(file.Players))
	for i, in := range file.Players {
		p, err := in.ToPlayer()
		if err != nil {
			return nil, nil, fmt.Errorf("roster entry %d: %w", i+1, err)
		}
		if seen[p.Name] {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrDuplicatePlayer, p.Name)
		}
		seen[p.Name] = true
		players = append(players, p)
	}
	return &file, players, nil
}

// parseAttendance splits a comma list of names. An empty list means the
// whole roster is attending.
func parseAttendance(raw string, roster []domain.Player) []string {
	var names []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		return names
	}

	names = make([]string, len(roster))
	for i := range roster {
		names[i] = roster[i].Name
	}
	return names
}

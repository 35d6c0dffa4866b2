package lineup

import "github.com/dom/softball-lineup/internal/domain"

// CanPlay reports whether a player may occupy a field position: it is their
// preferred position or it is in their playable set. A nil player is never eligible.
func CanPlay(p *domain.Player, pos domain.Position) bool {
	if p == nil || !pos.IsValid() {
		return false
	}
	return IsPreferred(p, pos) || p.PlaysPosition(pos)
}

// IsPreferred reports whether pos is the player's declared preferred position
func IsPreferred(p *domain.Player, pos domain.Position) bool {
	return p != nil && p.HasPreferredPosition() && p.PreferredPosition == pos
}

// EligiblePlayers returns the players able to cover pos, in input order
func EligiblePlayers(players []domain.Player, pos domain.Position) []domain.Player {
	var out []domain.Player
	for i := range players {
		if CanPlay(&players[i], pos) {
			out = append(out, players[i])
		}
	}
	return out
}

package engine

import (
	"sort"

	"github.com/mkadlec/quizconquest/internal/game"
)

// Attackers computes this round's attacker queue from the non-eliminated
// players: lowest score attacks first (catch-up mechanic) and only
// max(1, floor(n/2)) players attack in a given round. Called fresh at every
// round boundary; the result is then fixed for the whole round.
func Attackers(players []game.Player) []game.Player {
	active := make([]game.Player, 0, len(players))
	for _, p := range players {
		if !p.IsEliminated {
			active = append(active, p)
		}
	}
	if len(active) <= 1 {
		return nil
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Score < active[j].Score
	})
	n := len(active) / 2
	if n < 1 {
		n = 1
	}
	return active[:n]
}

func attackerIDs(players []game.Player) []game.PlayerID {
	ids := make([]game.PlayerID, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	return ids
}

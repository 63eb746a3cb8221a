package engine

import (
	"fmt"
	"math/rand"

	"github.com/mkadlec/quizconquest/internal/game"
)

// resolvePhase1Round finalizes one land-grab round: the human outcome comes
// from the driver, bot picks succeed on a probabilistic roll. Failed claims
// turn the field contested.
func resolvePhase1Round(s *game.State, humanCorrect bool, rng *rand.Rand) {
	for i := range s.Players {
		p := &s.Players[i]
		sel, ok := s.Phase1Selections[p.ID]
		if !ok || sel == nil {
			continue
		}
		field := s.FieldByID(*sel)
		if field == nil || field.Type != game.FieldNeutral || field.OwnerID != "" {
			continue
		}
		success := humanCorrect
		if p.IsBot {
			success = rng.Float64() < s.BotAccuracy
		}
		if success {
			field.OwnerID = p.ID
			p.Score += game.ScorePhase1Claim
			p.Stats.FieldsClaimed++
		} else {
			field.Type = game.FieldBlack
			field.OwnerID = ""
		}
	}

	s.Phase1Selections = make(map[game.PlayerID]*game.FieldID, len(s.Players))
	s.ActiveQuestion = nil
	s.Round++
	if s.Round > game.Phase1Rounds {
		startAttackPhase(s)
	}
}

// startAttackPhase transitions land-grab into the attack phase: round resets
// to 1 and the turn pointer moves to the head of a fresh attacker queue.
func startAttackPhase(s *game.State) {
	s.GamePhase = game.PhaseAttacks
	s.Round = 1
	queue := Attackers(s.Players)
	if len(queue) == 0 {
		endGameByScore(s)
		return
	}
	s.AttackerQueue = attackerIDs(queue)
	s.CurrentTurnPlayerIndex = s.PlayerIndex(queue[0].ID)
	s.GameLog = append(s.GameLog, "Attack phase begins")
}

// advanceAttackTurn moves to the next attacker of the current queue, or
// closes the round: past the round limit the game ends on score, otherwise a
// fresh queue is computed for the new round.
func advanceAttackTurn(s *game.State) {
	if s.GamePhase != game.PhaseAttacks {
		return
	}

	cur := s.CurrentPlayer()
	pos := -1
	if cur != nil {
		for i, id := range s.AttackerQueue {
			if id == cur.ID {
				pos = i
				break
			}
		}
	}
	if pos >= 0 {
		for i := pos + 1; i < len(s.AttackerQueue); i++ {
			next := s.PlayerByID(s.AttackerQueue[i])
			if next != nil && !next.IsEliminated {
				s.CurrentTurnPlayerIndex = s.PlayerIndex(next.ID)
				return
			}
		}
	}

	// Last attacker of the round (or an invalid queue position): next round.
	s.Round++
	if s.Round > game.Phase2Rounds {
		endGameByScore(s)
		return
	}
	queue := Attackers(s.Players)
	if len(queue) == 0 {
		endGameByScore(s)
		return
	}
	s.AttackerQueue = attackerIDs(queue)
	s.CurrentTurnPlayerIndex = s.PlayerIndex(queue[0].ID)
}

// checkImmediateWin ends the game on the spot when a single player remains,
// regardless of round count.
func checkImmediateWin(s *game.State) {
	active := s.ActivePlayers()
	if len(active) != 1 || s.GamePhase == game.PhaseGameOver {
		return
	}
	s.GamePhase = game.PhaseGameOver
	s.Winners = []game.Player{active[0]}
	s.GameLog = append(s.GameLog, fmt.Sprintf("%s is the last player standing", active[0].Name))
}

// endGameByScore closes the game with every active player tied at the top
// score as winner; ties produce multiple winners.
func endGameByScore(s *game.State) {
	active := s.ActivePlayers()
	s.GamePhase = game.PhaseGameOver
	if len(active) == 0 {
		s.Winners = []game.Player{}
		s.GameLog = append(s.GameLog, "Game over: no players remain")
		return
	}
	best := active[0].Score
	for _, p := range active[1:] {
		if p.Score > best {
			best = p.Score
		}
	}
	winners := make([]game.Player, 0, len(active))
	for _, p := range active {
		if p.Score == best {
			winners = append(winners, p)
		}
	}
	s.Winners = winners
	names := ""
	for i, w := range winners {
		if i > 0 {
			names += ", "
		}
		names += w.Name
	}
	s.GameLog = append(s.GameLog, fmt.Sprintf("Game over: %s wins with %d points", names, best))
}

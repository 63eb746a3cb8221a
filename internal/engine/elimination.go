package engine

import (
	"fmt"

	"github.com/mkadlec/quizconquest/internal/game"
)

// checkEliminations runs once per resolved attack, after score and HP
// mutation. Base destruction and negative-score eliminations can both fire in
// the same resolution; every record is queued so none is lost.
func (tc *turnContext) checkEliminations(aq *game.ActiveQuestion) {
	tc.checkBaseDestruction(aq)
	tc.checkNegativeScores()
}

func (tc *turnContext) checkBaseDestruction(aq *game.ActiveQuestion) {
	if !aq.IsBaseAttack || aq.DefenderID == "" {
		return
	}
	field := tc.s.FieldByID(aq.TargetFieldID)
	if field == nil || field.HP > 0 {
		return
	}
	defender := tc.s.PlayerByID(aq.DefenderID)
	attacker := tc.s.PlayerByID(aq.AttackerID)

	// A base left behind by an earlier elimination: capturing it pays the
	// destruction bonus, but there is nobody left to eliminate and the
	// owner's settled score stays untouched.
	if defender.IsEliminated {
		attacker.Score += game.ScoreBaseDestroyBonus
		attacker.Stats.BasesDestroyed++
		field.OwnerID = attacker.ID
		field.HP = field.MaxHP
		tc.add(fmt.Sprintf("%s captured %s's abandoned base", attacker.Name, defender.Name))
		return
	}

	absorbed := defender.Score
	if absorbed < 0 {
		absorbed = 0
	}
	attacker.Score += game.ScoreBaseDestroyBonus + absorbed
	attacker.Coins += game.CoinsEliminationBonus
	attacker.Stats.BasesDestroyed++
	defender.Score = 0
	defender.IsEliminated = true

	// Everything the defender held, the destroyed base included, transfers
	// to the attacker. The base keeps its type.
	for i := range tc.s.Board {
		if tc.s.Board[i].OwnerID == defender.ID {
			tc.s.Board[i].OwnerID = attacker.ID
		}
	}

	tc.s.Eliminations = append(tc.s.Eliminations, game.EliminationRecord{
		EliminatedPlayerName: defender.Name,
		AttackerName:         attacker.Name,
		Cause:                game.CauseBaseDestroyed,
	})
	tc.add(fmt.Sprintf("%s destroyed %s's base and eliminated them", attacker.Name, defender.Name))
}

// checkNegativeScores eliminates every player whose score dropped below zero,
// not just the combatants. Their non-base territory is released back to the
// contested pool; the base stays put and may be captured later.
func (tc *turnContext) checkNegativeScores() {
	for i := range tc.s.Players {
		p := &tc.s.Players[i]
		if p.IsEliminated || p.Score >= 0 {
			continue
		}
		p.IsEliminated = true
		for j := range tc.s.Board {
			f := &tc.s.Board[j]
			if f.OwnerID != p.ID || f.Type == game.FieldPlayerBase {
				continue
			}
			f.Type = game.FieldBlack
			f.OwnerID = ""
		}
		tc.s.Eliminations = append(tc.s.Eliminations, game.EliminationRecord{
			EliminatedPlayerName: p.Name,
			Cause:                game.CauseNegativeScore,
		})
		tc.add(fmt.Sprintf("%s was eliminated: negative score", p.Name))
	}
}

package engine

import (
	"fmt"

	"github.com/mkadlec/quizconquest/internal/game"
)

// resolveHeal applies a self-targeted heal question: +1 HP on the attacker's
// own base when correct, a score penalty when not. Heals never change
// ownership and never trigger elimination checks.
func (tc *turnContext) resolveHeal(aq *game.ActiveQuestion) {
	attacker := tc.s.PlayerByID(aq.AttackerID)
	field := tc.s.FieldByID(aq.TargetFieldID)
	correct := tc.correctFor(aq, aq.AttackerID)

	if correct {
		if field.HP < field.MaxHP {
			field.HP++
		}
		attacker.Score += game.ScoreHealSuccess
		tc.add(fmt.Sprintf("%s repaired their base (HP %d/%d)", attacker.Name, field.HP, field.MaxHP))
	} else {
		attacker.Score += game.ScoreHealFailPenalty
		tc.add(fmt.Sprintf("%s failed to repair their base", attacker.Name))
	}

	tc.s.AnswerResult = &game.AnswerResult{
		AttackerID:      aq.AttackerID,
		AttackerCorrect: correct,
		CorrectAnswer:   aq.Question.CorrectAnswer,
		TargetFieldID:   aq.TargetFieldID,
		ActionType:      game.ActionHeal,
	}
}

// resolveAttack applies one answered attack question. It returns true when
// the outcome escalated into a tie-breaker, in which case the turn is not
// finished and no score or ownership changed yet.
func (tc *turnContext) resolveAttack(aq *game.ActiveQuestion, tieBreaker *game.Question) bool {
	attacker := tc.s.PlayerByID(aq.AttackerID)
	field := tc.s.FieldByID(aq.TargetFieldID)
	attackerCorrect := tc.correctFor(aq, aq.AttackerID)

	// Unowned contested field: the attacker duels the question alone.
	if aq.DefenderID == "" {
		if attackerCorrect {
			field.Type = game.FieldNeutral
			field.OwnerID = attacker.ID
			field.HP = field.MaxHP
			attacker.Score += game.ScoreBlackFieldClaim
			attacker.Stats.FieldsClaimed++
			tc.add(fmt.Sprintf("%s claimed a contested field", attacker.Name))
		} else {
			attacker.Score += game.ScoreBlackFieldFail
			tc.add(fmt.Sprintf("%s failed to claim a contested field", attacker.Name))
		}
		tc.s.AnswerResult = &game.AnswerResult{
			AttackerID:      aq.AttackerID,
			AttackerCorrect: attackerCorrect,
			CorrectAnswer:   aq.Question.CorrectAnswer,
			TargetFieldID:   aq.TargetFieldID,
			ActionType:      game.ActionAttack,
			WasTieBreaker:   aq.IsTieBreaker,
		}
		return false
	}

	defender := tc.s.PlayerByID(aq.DefenderID)
	defenderCorrect := tc.correctFor(aq, aq.DefenderID)

	// Double-correct on a territory attack escalates exactly once.
	if attackerCorrect && defenderCorrect && !aq.IsBaseAttack && !aq.IsTieBreaker && tieBreaker != nil {
		tc.installTieBreaker(aq, tieBreaker)
		return true
	}

	result := &game.AnswerResult{
		AttackerID:      aq.AttackerID,
		DefenderID:      aq.DefenderID,
		AttackerCorrect: attackerCorrect,
		DefenderCorrect: defenderCorrect,
		CorrectAnswer:   aq.Question.CorrectAnswer,
		TargetFieldID:   aq.TargetFieldID,
		ActionType:      game.ActionAttack,
		WasTieBreaker:   aq.IsTieBreaker,
	}

	switch {
	case aq.IsTieBreaker && attackerCorrect == defenderCorrect:
		// A tie-breaker that ties again is logged as defended with no
		// territory change.
		tc.add(fmt.Sprintf("%s defended the duel against %s", defender.Name, attacker.Name))

	case attackerCorrect && defenderCorrect && !aq.IsBaseAttack:
		// Double-correct with no tie-breaker available resolves as defended.
		tc.add(fmt.Sprintf("%s defended against %s", defender.Name, attacker.Name))

	case attackerCorrect && (!defenderCorrect || aq.IsBaseAttack):
		field.HP--
		if aq.IsBaseAttack {
			attacker.Score += game.ScoreAttackDamage
			tc.add(fmt.Sprintf("%s damaged %s's base (HP %d/%d)", attacker.Name, defender.Name, field.HP, field.MaxHP))
		} else {
			field.OwnerID = attacker.ID
			field.HP = field.MaxHP
			attacker.Score += game.ScoreAttackWin
			defender.Score += game.ScoreAttackLossDefender
			attacker.Stats.FieldsClaimed++
			defender.Stats.FieldsLost++
			tc.add(fmt.Sprintf("%s captured a field from %s", attacker.Name, defender.Name))
		}

	case defenderCorrect && !attackerCorrect:
		attacker.Score += game.ScoreAttackLossAttacker
		if !aq.IsBaseAttack {
			defender.Score += game.ScoreAttackWinDefender
		}
		tc.add(fmt.Sprintf("%s repelled %s's attack", defender.Name, attacker.Name))

	default: // both incorrect
		attacker.Score += game.ScoreAttackLossAttacker
		tc.add(fmt.Sprintf("%s's attack on %s fizzled", attacker.Name, defender.Name))
	}

	tc.s.AnswerResult = result
	return false
}

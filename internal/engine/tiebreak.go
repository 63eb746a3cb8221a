package engine

import (
	"fmt"
	"time"

	"github.com/mkadlec/quizconquest/internal/game"
)

// installTieBreaker replaces the active question with an unscored open-ended
// duel between the two combatants. The original question's outcome is
// discarded; resolution re-enters the attack branch with IsTieBreaker set so
// the escalation path cannot fire twice.
func (tc *turnContext) installTieBreaker(prev *game.ActiveQuestion, q *game.Question) {
	q.Type = game.QuestionOpenEnded
	q.Options = nil

	tc.s.ActiveQuestion = &game.ActiveQuestion{
		Question:      *q,
		QuestionType:  game.QuestionOpenEnded,
		TargetFieldID: prev.TargetFieldID,
		AttackerID:    prev.AttackerID,
		DefenderID:    prev.DefenderID,
		IsBaseAttack:  prev.IsBaseAttack,
		IsTieBreaker:  true,
		ActionType:    game.ActionAttack,
		PlayerAnswers: map[game.PlayerID]*string{
			prev.AttackerID: nil,
			prev.DefenderID: nil,
		},
		StartTime: time.Now().UTC(),
	}
	tc.s.QuestionHistory = append(tc.s.QuestionHistory, q.Text)

	attacker := tc.s.PlayerByID(prev.AttackerID)
	defender := tc.s.PlayerByID(prev.DefenderID)
	tc.add(fmt.Sprintf("%s and %s were both correct; the duel goes to a tie-breaker", attacker.Name, defender.Name))
}

// NeedsTieBreaker reports whether resolving the current active question would
// escalate into a tie-breaker. Drivers use it to decide whether to fetch an
// open-ended question before invoking the resolution transition.
func NeedsTieBreaker(s *game.State) bool {
	aq := s.ActiveQuestion
	if aq == nil || aq.ActionType != game.ActionAttack {
		return false
	}
	if aq.DefenderID == "" || aq.IsBaseAttack || aq.IsTieBreaker {
		return false
	}
	if !aq.Answered() {
		return false
	}
	tc := newTurnContext(s)
	return tc.correctFor(aq, aq.AttackerID) && tc.correctFor(aq, aq.DefenderID)
}

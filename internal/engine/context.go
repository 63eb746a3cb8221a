package engine

import "github.com/mkadlec/quizconquest/internal/game"

// turnContext wraps the state being mutated during one resolution and
// accumulates the human-readable game log.
type turnContext struct {
	s *game.State
}

func newTurnContext(s *game.State) *turnContext {
	return &turnContext{s: s}
}

func (tc *turnContext) add(msg string) {
	tc.s.GameLog = append(tc.s.GameLog, msg)
}

// correctFor evaluates the recorded answer of one participant against the
// active question. A missing slot counts as incorrect; resolution
// preconditions ensure that only happens for synthetic timeouts.
func (tc *turnContext) correctFor(aq *game.ActiveQuestion, id game.PlayerID) bool {
	ans, ok := aq.PlayerAnswers[id]
	if !ok || ans == nil {
		return false
	}
	return AnswerMatches(*ans, aq.Question.CorrectAnswer)
}

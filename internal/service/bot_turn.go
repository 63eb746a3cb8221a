package service

import (
	"github.com/mkadlec/quizconquest/internal/bot"
	"github.com/mkadlec/quizconquest/internal/constants"
	"github.com/mkadlec/quizconquest/internal/engine"
	"github.com/mkadlec/quizconquest/internal/game"
	"github.com/mkadlec/quizconquest/internal/logging"
)

// BotTurn plays the current bot's attack-phase turn: it picks a move, draws a
// question and answers every bot slot. A turn against a human defender stays
// open until the human answers; a turn with no legal move or no available
// question is passed.
func (svc *Service) BotTurn(gameID string) (*game.State, error) {
	unlock := svc.lockGame(gameID)
	defer unlock()

	s, err := svc.store.Get(gameID)
	if err != nil {
		return nil, err
	}
	if s.GamePhase != game.PhaseAttacks {
		return s, engine.ErrWrongPhase
	}
	cur := s.CurrentPlayer()
	if cur == nil || !cur.IsBot {
		return s, ErrNotBotTurn
	}
	if s.ActiveQuestion != nil {
		return s, engine.ErrQuestionPending
	}

	decision := bot.ChooseAction(s, cur.ID, svc.newRNG())
	if decision.PassReason != "" {
		return svc.passAndStore(s, cur.ID, decision.PassReason)
	}

	q, err := svc.fetchFor(s, cur.ID, decision.TargetFieldID)
	if err != nil {
		return s, err
	}
	if q == nil {
		logging.Warn("question bank exhausted for bot turn", logging.Fields{
			constants.LogFieldGameID: s.ID,
			"player":                 string(cur.ID),
		})
		return svc.passAndStore(s, cur.ID, "question generation failed")
	}

	ns, err := engine.Apply(s, engine.Action{
		Type: engine.ActionSetQuestion,
		Question: &game.ActiveQuestion{
			Question:      *q,
			QuestionType:  q.Type,
			TargetFieldID: decision.TargetFieldID,
			AttackerID:    cur.ID,
			ActionType:    decision.Action,
		},
	}, nil)
	if err != nil {
		return s, err
	}

	ns, err = svc.fillBotAnswers(ns)
	if err != nil {
		return ns, err
	}
	ns, err = svc.resolveIfReady(ns)
	if err != nil {
		return ns, err
	}
	svc.store.Put(ns)
	return ns, nil
}

func (svc *Service) passAndStore(s *game.State, playerID game.PlayerID, reason string) (*game.State, error) {
	ns, err := engine.Apply(s, engine.Action{
		Type:     engine.ActionPassBotTurn,
		PlayerID: playerID,
		Reason:   reason,
	}, nil)
	if err != nil {
		return s, err
	}
	svc.archiveIfFinished(ns)
	svc.store.Put(ns)
	return ns, nil
}

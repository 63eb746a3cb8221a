package service

import (
	"time"

	"github.com/mkadlec/quizconquest/internal/constants"
	"github.com/mkadlec/quizconquest/internal/engine"
	"github.com/mkadlec/quizconquest/internal/game"
	"github.com/mkadlec/quizconquest/internal/logging"
)

// HandleTimedOutGames sweeps every live game and force-resolves questions
// whose answer window expired. Unanswered slots count as wrong answers.
func (svc *Service) HandleTimedOutGames(now time.Time) {
	for _, s := range svc.store.List() {
		aq := s.ActiveQuestion
		if aq == nil || aq.Answered() {
			continue
		}
		if now.Sub(aq.StartTime) < svc.cfg.AnswerTimeout {
			continue
		}
		if err := svc.handleTimedOutGame(s.ID, aq.StartTime); err != nil {
			logging.Error("failed to resolve timed out question", err, logging.Fields{
				constants.LogFieldGameID: s.ID,
			})
		}
	}
}

func (svc *Service) handleTimedOutGame(gameID string, startedAt time.Time) error {
	unlock := svc.lockGame(gameID)
	defer unlock()

	s, err := svc.store.Get(gameID)
	if err != nil {
		return err
	}
	aq := s.ActiveQuestion
	// The question may have been answered or replaced since the sweep
	// snapshot was taken.
	if aq == nil || aq.Answered() || !aq.StartTime.Equal(startedAt) {
		return nil
	}

	logging.Info("question timed out", logging.Fields{
		constants.LogFieldGameID: gameID,
		"question":              aq.Question.Text,
	})
	for pid, ans := range aq.PlayerAnswers {
		if ans != nil {
			continue
		}
		ns, err := engine.Apply(s, engine.Action{
			Type:     engine.ActionSubmitAnswer,
			PlayerID: pid,
			Answer:   "",
		}, nil)
		if err != nil {
			return err
		}
		s = ns
		aq = s.ActiveQuestion
	}

	if s.GamePhase == game.PhaseLandGrab {
		s, err = svc.resolveLandGrab(s)
	} else {
		s, err = svc.resolveIfReady(s)
	}
	if err != nil {
		return err
	}
	svc.store.Put(s)
	return nil
}

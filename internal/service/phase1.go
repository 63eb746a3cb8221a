package service

import (
	"github.com/mkadlec/quizconquest/internal/bot"
	"github.com/mkadlec/quizconquest/internal/engine"
	"github.com/mkadlec/quizconquest/internal/game"
	"github.com/mkadlec/quizconquest/internal/storage"
)

// SetPhase1Selection registers the human player's land-grab pick, lets every
// bot pick its own field and issues the human's claim question.
func (svc *Service) SetPhase1Selection(gameID string, playerID game.PlayerID, fieldID game.FieldID) (*game.State, error) {
	unlock := svc.lockGame(gameID)
	defer unlock()

	s, err := svc.store.Get(gameID)
	if err != nil {
		return nil, err
	}
	ns, err := engine.Apply(s, engine.Action{
		Type:     engine.ActionSetPhase1Selection,
		PlayerID: playerID,
		FieldID:  fieldID,
	}, nil)
	if err != nil {
		return s, err
	}

	rng := svc.newRNG()
	for _, p := range ns.Players {
		if !p.IsBot || p.IsEliminated {
			continue
		}
		if sel, ok := ns.Phase1Selections[p.ID]; ok && sel != nil {
			continue
		}
		pick, ok := bot.ChoosePhase1Field(ns, p.ID, rng)
		if !ok {
			continue
		}
		next, err := engine.Apply(ns, engine.Action{
			Type:     engine.ActionSetPhase1Selection,
			PlayerID: p.ID,
			FieldID:  pick,
		}, nil)
		if err != nil {
			return ns, err
		}
		ns = next
	}

	ns, err = svc.issuePhase1Question(ns, playerID, fieldID)
	if err != nil {
		svc.store.Put(ns)
		return ns, err
	}
	svc.store.Put(ns)
	return ns, nil
}

// issuePhase1Question asks the human a question for the field they picked.
// Selections survive even when the bank is exhausted so the driver can still
// resolve the round explicitly.
func (svc *Service) issuePhase1Question(s *game.State, playerID game.PlayerID, fieldID game.FieldID) (*game.State, error) {
	field := s.FieldByID(fieldID)
	if field == nil {
		return s, engine.ErrUnknownField
	}
	q, err := svc.fetcher.Fetch(s.ID, storage.QuestionRequest{
		Category: svc.categoryFor(s, field),
		Language: s.Language,
		Exclude:  s.QuestionHistory,
	})
	if err != nil {
		return s, err
	}
	if q == nil {
		return s, ErrNoQuestion
	}
	return engine.Apply(s, engine.Action{
		Type: engine.ActionSetQuestion,
		Question: &game.ActiveQuestion{
			Question:      *q,
			QuestionType:  q.Type,
			TargetFieldID: fieldID,
			AttackerID:    playerID,
			ActionType:    game.ActionAttack,
		},
	}, nil)
}

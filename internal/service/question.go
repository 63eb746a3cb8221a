package service

import (
	"github.com/mkadlec/quizconquest/internal/engine"
	"github.com/mkadlec/quizconquest/internal/game"
	"github.com/mkadlec/quizconquest/internal/storage"
)

// StartQuestion fetches a bank question for the player's chosen move and
// installs it as the turn's active question. Bot participants answer
// immediately; the turn auto-resolves once every required answer is in.
func (svc *Service) StartQuestion(gameID string, playerID game.PlayerID, fieldID game.FieldID, action game.ActionKind) (*game.State, error) {
	unlock := svc.lockGame(gameID)
	defer unlock()

	s, err := svc.store.Get(gameID)
	if err != nil {
		return nil, err
	}

	q, err := svc.fetchFor(s, playerID, fieldID)
	if err != nil {
		return s, err
	}
	if q == nil {
		return s, ErrNoQuestion
	}

	ns, err := engine.Apply(s, engine.Action{
		Type: engine.ActionSetQuestion,
		Question: &game.ActiveQuestion{
			Question:      *q,
			QuestionType:  q.Type,
			TargetFieldID: fieldID,
			AttackerID:    playerID,
			ActionType:    action,
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

// fetchFor draws an unused question matching the target field. Bots get
// difficulty-filtered questions, the human draws from the full pool.
func (svc *Service) fetchFor(s *game.State, playerID game.PlayerID, fieldID game.FieldID) (*game.Question, error) {
	field := s.FieldByID(fieldID)
	if field == nil {
		return nil, engine.ErrUnknownField
	}
	req := storage.QuestionRequest{
		Category: svc.categoryFor(s, field),
		Language: s.Language,
		Exclude:  s.QuestionHistory,
	}
	if p := s.PlayerByID(playerID); p != nil && p.IsBot {
		req.Difficulty = s.BotDifficulty
	}
	q, err := svc.fetcher.Fetch(s.ID, req)
	if err != nil {
		return nil, err
	}
	if q == nil && req.Difficulty != "" {
		// Difficulty pool exhausted: fall back to the full category pool.
		req.Difficulty = ""
		return svc.fetcher.Fetch(s.ID, req)
	}
	return q, nil
}

// categoryFor resolves the question category of a target. Contested fields
// lose their category when released, in that case draw from the allowed set.
func (svc *Service) categoryFor(s *game.State, field *game.Field) game.Category {
	if field.Category != "" {
		return field.Category
	}
	if len(s.AllowedCategories) == 0 {
		return ""
	}
	return s.AllowedCategories[svc.newRNG().Intn(len(s.AllowedCategories))]
}

// fetchTieBreaker draws an open-ended duel question, preferring the contested
// category and falling back across the allowed set. Returns nil when the bank
// has nothing left; the resolver then settles the duel without escalation.
func (svc *Service) fetchTieBreaker(s *game.State) *game.Question {
	tried := map[game.Category]struct{}{}
	candidates := append([]game.Category{s.ActiveQuestion.Question.Category}, s.AllowedCategories...)
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, ok := tried[c]; ok {
			continue
		}
		tried[c] = struct{}{}
		q, err := svc.fetcher.Fetch(s.ID, storage.QuestionRequest{
			Category:  c,
			Language:  s.Language,
			OpenEnded: true,
			Exclude:   s.QuestionHistory,
		})
		if err == nil && q != nil {
			return q
		}
	}
	return nil
}

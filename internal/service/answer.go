package service

import (
	"github.com/mkadlec/quizconquest/internal/bot"
	"github.com/mkadlec/quizconquest/internal/engine"
	"github.com/mkadlec/quizconquest/internal/game"
)

// SubmitAnswer records one player's answer. During land-grab the round
// resolves as soon as the human has answered; during the attack phase the
// turn resolves once every participant has answered, escalating to a
// tie-breaker duel when the rules call for one.
func (svc *Service) SubmitAnswer(gameID string, playerID game.PlayerID, answer string) (*game.State, error) {
	unlock := svc.lockGame(gameID)
	defer unlock()

	s, err := svc.store.Get(gameID)
	if err != nil {
		return nil, err
	}
	ns, err := engine.Apply(s, engine.Action{
		Type:     engine.ActionSubmitAnswer,
		PlayerID: playerID,
		Answer:   answer,
	}, nil)
	if err != nil {
		return s, err
	}

	if ns.GamePhase == game.PhaseLandGrab {
		ns, err = svc.resolveLandGrab(ns)
	} else {
		ns, err = svc.resolveIfReady(ns)
	}
	if err != nil {
		return ns, err
	}
	svc.store.Put(ns)
	return ns, nil
}

// ResolvePhase1 closes the current land-grab round with an explicit human
// outcome. Drivers use it when no question could be issued.
func (svc *Service) ResolvePhase1(gameID string, humanCorrect bool) (*game.State, error) {
	return svc.applyStored(gameID, engine.Action{
		Type:         engine.ActionResolvePhase1Round,
		HumanCorrect: humanCorrect,
	})
}

// ResolveTurn resolves the attack-phase turn explicitly. Resolving with no
// open question is a no-op; unanswered slots are reported instead of forced.
func (svc *Service) ResolveTurn(gameID string) (*game.State, error) {
	unlock := svc.lockGame(gameID)
	defer unlock()

	s, err := svc.store.Get(gameID)
	if err != nil {
		return nil, err
	}
	if aq := s.ActiveQuestion; aq != nil && !aq.Answered() {
		return s, engine.ErrAnswersPending
	}
	ns, err := svc.resolveIfReady(s)
	if err != nil {
		return ns, err
	}
	svc.store.Put(ns)
	return ns, nil
}

// resolveLandGrab finishes the land-grab round once the human answer is in.
func (svc *Service) resolveLandGrab(s *game.State) (*game.State, error) {
	aq := s.ActiveQuestion
	if aq == nil || !aq.Answered() {
		return s, nil
	}
	humanCorrect := false
	if ans := aq.PlayerAnswers[aq.AttackerID]; ans != nil {
		humanCorrect = engine.AnswerMatches(*ans, aq.Question.CorrectAnswer)
	}
	return engine.Apply(s, engine.Action{
		Type:         engine.ActionResolvePhase1Round,
		HumanCorrect: humanCorrect,
	}, svc.newRNG())
}

// resolveIfReady resolves attack-phase turns until no fully answered question
// remains. A tie-breaker escalation installs a fresh question; bot duelists
// answer it immediately, so bot-vs-bot duels settle within the loop.
func (svc *Service) resolveIfReady(s *game.State) (*game.State, error) {
	for {
		aq := s.ActiveQuestion
		if aq == nil || s.GamePhase != game.PhaseAttacks || !aq.Answered() {
			return s, nil
		}
		var tb *game.Question
		if engine.NeedsTieBreaker(s) {
			tb = svc.fetchTieBreaker(s)
		}
		ns, err := engine.Apply(s, engine.Action{
			Type:       engine.ActionResolveTurn,
			TieBreaker: tb,
		}, nil)
		if err != nil {
			return s, err
		}
		s = ns
		if s.ActiveQuestion != nil && s.ActiveQuestion.IsTieBreaker {
			s, err = svc.fillBotAnswers(s)
			if err != nil {
				return s, err
			}
			continue
		}
		svc.archiveIfFinished(s)
		return s, nil
	}
}

// fillBotAnswers submits a simulated answer for every bot participant that
// has not answered the active question yet.
func (svc *Service) fillBotAnswers(s *game.State) (*game.State, error) {
	aq := s.ActiveQuestion
	if aq == nil {
		return s, nil
	}
	rng := svc.newRNG()
	for pid, ans := range aq.PlayerAnswers {
		if ans != nil {
			continue
		}
		p := s.PlayerByID(pid)
		if p == nil || !p.IsBot {
			continue
		}
		ns, err := engine.Apply(s, engine.Action{
			Type:     engine.ActionSubmitAnswer,
			PlayerID: pid,
			Answer:   bot.AnswerFor(&aq.Question, s.BotAccuracy, rng),
		}, nil)
		if err != nil {
			return s, err
		}
		s = ns
		aq = s.ActiveQuestion
	}
	return s, nil
}

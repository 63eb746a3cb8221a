package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/mkadlec/quizconquest/internal/game"
)

var (
	ErrGameCompleted      = errors.New("game already completed")
	ErrWrongPhase         = errors.New("action not valid in current phase")
	ErrWrongTurn          = errors.New("not this player's turn")
	ErrUnknownPlayer      = errors.New("unknown player")
	ErrUnknownField       = errors.New("unknown field")
	ErrIllegalTarget      = errors.New("illegal target field")
	ErrCategoryExhausted  = errors.New("category already used for a territory attack")
	ErrQuestionPending    = errors.New("a question is already active")
	ErrNoActiveQuestion   = errors.New("no active question")
	ErrNotParticipant     = errors.New("player is not a participant of the active question")
	ErrAnswersPending     = errors.New("required answers are still missing")
	ErrUnsupportedAction  = errors.New("unsupported action")
)

type ActionType string

const (
	ActionSetPhase1Selection       ActionType = "SET_PHASE1_SELECTION"
	ActionSetQuestion              ActionType = "SET_QUESTION"
	ActionSubmitAnswer             ActionType = "SUBMIT_ANSWER"
	ActionResolvePhase1Round       ActionType = "RESOLVE_PHASE1_ROUND"
	ActionResolveTurn              ActionType = "RESOLVE_TURN"
	ActionPassBotTurn              ActionType = "PASS_BOT_TURN"
	ActionClearAnswerFeedback      ActionType = "CLEAR_ANSWER_FEEDBACK"
	ActionClearEliminationFeedback ActionType = "CLEAR_ELIMINATION_FEEDBACK"
	ActionResetGame                ActionType = "RESET_GAME"
)

// Action is one unit of driver input. Only the fields relevant to the
// action's type need to be set.
type Action struct {
	Type     ActionType
	PlayerID game.PlayerID
	FieldID  game.FieldID
	Answer   string
	// Question carries the SET_QUESTION payload.
	Question *game.ActiveQuestion
	// TieBreaker optionally carries the open-ended duel question for
	// RESOLVE_TURN; leaving it nil forces a non-escalating resolution.
	TieBreaker *game.Question
	// HumanCorrect carries the human outcome for RESOLVE_PHASE1_ROUND.
	HumanCorrect bool
	// Reason documents a PASS_BOT_TURN in the game log.
	Reason string
}

// Apply is the state transition function: it returns a structurally new state
// and never mutates the input. Precondition violations return the input state
// unchanged together with a sentinel error. The rng is used for bot success
// rolls during land-grab resolution and may be nil for actions that never
// roll.
func Apply(s *game.State, a Action, rng *rand.Rand) (*game.State, error) {
	if s == nil {
		return nil, errors.New("nil state")
	}
	if s.GamePhase == game.PhaseGameOver {
		switch a.Type {
		case ActionResetGame, ActionClearAnswerFeedback, ActionClearEliminationFeedback:
		default:
			return s, ErrGameCompleted
		}
	}

	switch a.Type {
	case ActionSetPhase1Selection:
		return applySelection(s, a)
	case ActionSetQuestion:
		return applySetQuestion(s, a)
	case ActionSubmitAnswer:
		return applySubmitAnswer(s, a)
	case ActionResolvePhase1Round:
		return applyResolvePhase1(s, a, rng)
	case ActionResolveTurn:
		return applyResolveTurn(s, a)
	case ActionPassBotTurn:
		return applyPass(s, a)
	case ActionClearAnswerFeedback:
		ns := s.Clone()
		ns.AnswerResult = nil
		return ns, nil
	case ActionClearEliminationFeedback:
		ns := s.Clone()
		ns.Eliminations = nil
		return ns, nil
	case ActionResetGame:
		return &game.State{ID: s.ID}, nil
	default:
		return s, ErrUnsupportedAction
	}
}

func applySelection(s *game.State, a Action) (*game.State, error) {
	if s.GamePhase != game.PhaseLandGrab {
		return s, ErrWrongPhase
	}
	if s.PlayerByID(a.PlayerID) == nil {
		return s, ErrUnknownPlayer
	}
	field := s.FieldByID(a.FieldID)
	if field == nil {
		return s, ErrUnknownField
	}
	if field.Type != game.FieldNeutral || field.OwnerID != "" {
		return s, ErrIllegalTarget
	}
	for pid, sel := range s.Phase1Selections {
		if pid != a.PlayerID && sel != nil && *sel == a.FieldID {
			return s, ErrIllegalTarget
		}
	}
	ns := s.Clone()
	fid := a.FieldID
	ns.Phase1Selections[a.PlayerID] = &fid
	return ns, nil
}

func applySetQuestion(s *game.State, a Action) (*game.State, error) {
	if a.Question == nil {
		return s, ErrNoActiveQuestion
	}
	if s.ActiveQuestion != nil {
		return s, ErrQuestionPending
	}
	attacker := s.PlayerByID(a.Question.AttackerID)
	if attacker == nil || attacker.IsEliminated {
		return s, ErrUnknownPlayer
	}
	field := s.FieldByID(a.Question.TargetFieldID)
	if field == nil {
		return s, ErrUnknownField
	}

	aq := a.Question.Clone()
	aq.IsTieBreaker = false
	aq.PlayerAnswers = map[game.PlayerID]*string{aq.AttackerID: nil}
	if aq.StartTime.IsZero() {
		aq.StartTime = time.Now().UTC()
	}

	switch s.GamePhase {
	case game.PhaseLandGrab:
		sel, ok := s.Phase1Selections[aq.AttackerID]
		if !ok || sel == nil || *sel != aq.TargetFieldID {
			return s, ErrIllegalTarget
		}
		aq.ActionType = game.ActionAttack
		aq.DefenderID = ""
		aq.IsBaseAttack = false

	case game.PhaseAttacks:
		cur := s.CurrentPlayer()
		if cur == nil || cur.ID != aq.AttackerID {
			return s, ErrWrongTurn
		}
		switch aq.ActionType {
		case game.ActionHeal:
			if field.Type != game.FieldPlayerBase || field.OwnerID != aq.AttackerID {
				return s, ErrIllegalTarget
			}
			aq.DefenderID = ""
			aq.IsBaseAttack = false
		case game.ActionAttack:
			if field.OwnerID == aq.AttackerID {
				return s, ErrIllegalTarget
			}
			if field.Type != game.FieldBlack && field.OwnerID == "" {
				return s, ErrIllegalTarget
			}
			aq.DefenderID = field.OwnerID
			aq.IsBaseAttack = field.Type == game.FieldPlayerBase
			if field.Type == game.FieldNeutral {
				if attacker.HasUsedCategory(field.Category) {
					return s, ErrCategoryExhausted
				}
			}
			// An eliminated owner no longer answers; their leftover base
			// defends itself.
			if aq.DefenderID != "" {
				if def := s.PlayerByID(aq.DefenderID); def != nil && !def.IsEliminated {
					aq.PlayerAnswers[aq.DefenderID] = nil
				}
			}
		default:
			return s, ErrUnsupportedAction
		}

	default:
		return s, ErrWrongPhase
	}

	ns := s.Clone()
	if s.GamePhase == game.PhaseAttacks && aq.ActionType == game.ActionAttack && field.Type == game.FieldNeutral && field.OwnerID != "" {
		ns.PlayerByID(aq.AttackerID).MarkCategoryUsed(field.Category)
	}
	ns.ActiveQuestion = aq
	ns.QuestionHistory = append(ns.QuestionHistory, aq.Question.Text)
	return ns, nil
}

func applySubmitAnswer(s *game.State, a Action) (*game.State, error) {
	if s.ActiveQuestion == nil {
		return s, ErrNoActiveQuestion
	}
	if _, ok := s.ActiveQuestion.PlayerAnswers[a.PlayerID]; !ok {
		return s, ErrNotParticipant
	}
	ns := s.Clone()
	aq := ns.ActiveQuestion
	first := aq.PlayerAnswers[a.PlayerID] == nil
	ans := a.Answer
	aq.PlayerAnswers[a.PlayerID] = &ans

	if first {
		p := ns.PlayerByID(a.PlayerID)
		p.Stats.QuestionsAnswered++
		if AnswerMatches(ans, aq.Question.CorrectAnswer) {
			p.Stats.CorrectAnswers++
		}
	}
	return ns, nil
}

func applyResolvePhase1(s *game.State, a Action, rng *rand.Rand) (*game.State, error) {
	if s.GamePhase != game.PhaseLandGrab {
		return s, ErrWrongPhase
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	ns := s.Clone()
	resolvePhase1Round(ns, a.HumanCorrect, rng)
	return ns, nil
}

func applyResolveTurn(s *game.State, a Action) (*game.State, error) {
	// Resolving with no open question is an idempotent no-op by contract.
	if s.ActiveQuestion == nil {
		return s, nil
	}
	if s.GamePhase != game.PhaseAttacks {
		return s, ErrWrongPhase
	}
	if !s.ActiveQuestion.Answered() {
		return s, ErrAnswersPending
	}

	ns := s.Clone()
	tc := newTurnContext(ns)
	aq := ns.ActiveQuestion

	switch aq.ActionType {
	case game.ActionHeal:
		tc.resolveHeal(aq)
	case game.ActionAttack:
		if tc.resolveAttack(aq, a.TieBreaker) {
			// Escalated: a fresh tie-breaker question is now active and the
			// turn is not finished.
			return ns, nil
		}
	default:
		return s, ErrUnsupportedAction
	}

	ns.ActiveQuestion = nil
	if aq.ActionType == game.ActionAttack {
		tc.checkEliminations(aq)
	}
	checkImmediateWin(ns)
	if ns.GamePhase != game.PhaseGameOver {
		advanceAttackTurn(ns)
	}
	return ns, nil
}

func applyPass(s *game.State, a Action) (*game.State, error) {
	if s.GamePhase != game.PhaseAttacks {
		return s, ErrWrongPhase
	}
	cur := s.CurrentPlayer()
	if cur == nil || cur.ID != a.PlayerID {
		return s, ErrWrongTurn
	}
	if s.ActiveQuestion != nil {
		return s, ErrQuestionPending
	}
	ns := s.Clone()
	reason := a.Reason
	if reason == "" {
		reason = "no legal target"
	}
	ns.GameLog = append(ns.GameLog, fmt.Sprintf("%s passes: %s", cur.Name, reason))
	advanceAttackTurn(ns)
	return ns, nil
}

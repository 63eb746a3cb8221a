package engine

import (
	"testing"

	"github.com/mkadlec/quizconquest/internal/game"
)

func duelQuestion() *game.Question {
	return &game.Question{
		Text:          "in which year did the Berlin Wall fall?",
		CorrectAnswer: "1989",
		Category:      "sport",
	}
}

func escalatedState(t *testing.T) *game.State {
	t.Helper()
	s := attackState()
	s = installQuestion(t, s, fP2Land, game.ActionAttack)
	s = answer(t, s, "p1", "paris")
	s = answer(t, s, "p2", "Paris")
	return resolve(t, s, duelQuestion())
}

func TestTieBreaker_Escalation(t *testing.T) {
	s := attackState()
	s = installQuestion(t, s, fP2Land, game.ActionAttack)
	s = answer(t, s, "p1", "paris")
	s = answer(t, s, "p2", "Paris")

	if !NeedsTieBreaker(s) {
		t.Fatal("double-correct territory attack must request a tie-breaker")
	}

	s = resolve(t, s, duelQuestion())

	aq := s.ActiveQuestion
	if aq == nil || !aq.IsTieBreaker {
		t.Fatal("expected a tie-breaker active question")
	}
	if aq.QuestionType != game.QuestionOpenEnded || len(aq.Question.Options) != 0 {
		t.Fatal("tie-breaker must be open-ended with no options")
	}
	if len(aq.PlayerAnswers) != 2 {
		t.Fatalf("tie-breaker must involve exactly the two combatants, got %d slots", len(aq.PlayerAnswers))
	}
	for pid, a := range aq.PlayerAnswers {
		if a != nil {
			t.Fatalf("answer slot for %s must start empty", pid)
		}
	}
	if s.PlayerByID("p1").Score != 100 || s.PlayerByID("p2").Score != 80 {
		t.Fatal("no score change may happen before the tie-breaker resolves")
	}
	if s.FieldByID(fP2Land).OwnerID != "p2" {
		t.Fatal("no ownership change may happen before the tie-breaker resolves")
	}
	last := s.QuestionHistory[len(s.QuestionHistory)-1]
	if last != duelQuestion().Text {
		t.Fatalf("tie-breaker text missing from question history, got %q", last)
	}
}

func TestTieBreaker_NeverFiresTwice(t *testing.T) {
	s := escalatedState(t)
	s = answer(t, s, "p1", "1989")
	s = answer(t, s, "p2", "1989")

	if NeedsTieBreaker(s) {
		t.Fatal("a tie-breaker question must never escalate again")
	}
	s = resolve(t, s, duelQuestion())

	if s.ActiveQuestion != nil {
		t.Fatal("double-correct tie-breaker must finalize the turn")
	}
	if s.FieldByID(fP2Land).OwnerID != "p2" {
		t.Fatal("tied tie-breaker is a defended encounter: territory unchanged")
	}
	if s.PlayerByID("p1").Score != 100 || s.PlayerByID("p2").Score != 80 {
		t.Fatal("tied tie-breaker must not change scores")
	}
}

func TestTieBreaker_BothWrongIsDefendedTie(t *testing.T) {
	s := escalatedState(t)
	s = answer(t, s, "p1", "1990")
	s = answer(t, s, "p2", "1991")
	s = resolve(t, s, nil)

	if s.FieldByID(fP2Land).OwnerID != "p2" {
		t.Fatal("both-wrong tie-breaker must leave territory unchanged")
	}
	if s.PlayerByID("p1").Score != 100 || s.PlayerByID("p2").Score != 80 {
		t.Fatal("both-wrong tie-breaker must not change scores")
	}
}

func TestTieBreaker_AttackerWinsDuel(t *testing.T) {
	s := escalatedState(t)
	s = answer(t, s, "p1", "1989")
	s = answer(t, s, "p2", "1990")
	s = resolve(t, s, nil)

	if s.FieldByID(fP2Land).OwnerID != "p1" {
		t.Fatal("attacker winning the duel must take the field")
	}
	if got := s.PlayerByID("p1").Score; got != 100+game.ScoreAttackWin {
		t.Fatalf("attacker score = %d, want %d", got, 100+game.ScoreAttackWin)
	}
	if got := s.PlayerByID("p2").Score; got != 80+game.ScoreAttackLossDefender {
		t.Fatalf("defender score = %d, want %d", got, 80+game.ScoreAttackLossDefender)
	}
}

func TestTieBreaker_DefenderWinsDuel(t *testing.T) {
	s := escalatedState(t)
	s = answer(t, s, "p1", "1990")
	s = answer(t, s, "p2", "1989")
	s = resolve(t, s, nil)

	if s.FieldByID(fP2Land).OwnerID != "p2" {
		t.Fatal("defender winning the duel keeps the field")
	}
	if got := s.PlayerByID("p1").Score; got != 100+game.ScoreAttackLossAttacker {
		t.Fatalf("attacker score = %d, want %d", got, 100+game.ScoreAttackLossAttacker)
	}
	if got := s.PlayerByID("p2").Score; got != 80+game.ScoreAttackWinDefender {
		t.Fatalf("defender score = %d, want %d", got, 80+game.ScoreAttackWinDefender)
	}
}

func TestTieBreaker_ForcedNonEscalation(t *testing.T) {
	// Provider failed: the driver resolves without a tie-breaker question and
	// the encounter counts as defended.
	s := attackState()
	s = installQuestion(t, s, fP2Land, game.ActionAttack)
	s = answer(t, s, "p1", "paris")
	s = answer(t, s, "p2", "paris")
	s = resolve(t, s, nil)

	if s.ActiveQuestion != nil {
		t.Fatal("forced resolution must not install a tie-breaker")
	}
	if s.FieldByID(fP2Land).OwnerID != "p2" {
		t.Fatal("forced resolution leaves territory unchanged")
	}
	if s.PlayerByID("p1").Score != 100 || s.PlayerByID("p2").Score != 80 {
		t.Fatal("forced resolution must not change scores")
	}
}

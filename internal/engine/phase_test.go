package engine

import (
	"math/rand"
	"testing"

	"github.com/mkadlec/quizconquest/internal/game"
)

func newTestGame(t *testing.T, playerCount int) *game.State {
	t.Helper()
	s, err := NewGame(Setup{
		GameID:      "g1",
		PlayerCount: playerCount,
		HumanName:   "Human",
		HumanCoins:  300,
		Categories:  []game.Category{"history", "science", "sport", "art", "geography"},
		Language:    "en",
		RNG:         rand.New(rand.NewSource(42)),
	})
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	return s
}

func neutralFields(s *game.State) []game.Field {
	var out []game.Field
	for _, f := range s.Board {
		if f.Type == game.FieldNeutral && f.OwnerID == "" {
			out = append(out, f)
		}
	}
	return out
}

// Land-grab walkthrough: the human claims one field correctly per round while
// the bot always fails, so after three rounds the human sits at 300 points
// and the attack phase begins.
func TestPhase1_HumanClaimsThreeFields(t *testing.T) {
	s := newTestGame(t, 2)
	s.BotAccuracy = 0 // deterministic: bots always fail their rolls
	rng := rand.New(rand.NewSource(7))

	for round := 1; round <= game.Phase1Rounds; round++ {
		if s.GamePhase != game.PhaseLandGrab {
			t.Fatalf("round %d: phase = %s, want land grab", round, s.GamePhase)
		}
		if s.Round != round {
			t.Fatalf("round = %d, want %d", s.Round, round)
		}
		free := neutralFields(s)
		if len(free) == 0 {
			t.Fatal("no claimable fields left")
		}
		var err error
		s, err = Apply(s, Action{Type: ActionSetPhase1Selection, PlayerID: "p1", FieldID: free[0].ID}, rng)
		if err != nil {
			t.Fatalf("selection failed: %v", err)
		}
		s, err = Apply(s, Action{Type: ActionResolvePhase1Round, HumanCorrect: true, FieldID: free[0].ID}, rng)
		if err != nil {
			t.Fatalf("phase1 resolve failed: %v", err)
		}
	}

	if got := s.PlayerByID("p1").Score; got != 3*game.ScorePhase1Claim {
		t.Fatalf("human score = %d, want %d before attack phase", got, 3*game.ScorePhase1Claim)
	}
	if s.GamePhase != game.PhaseAttacks {
		t.Fatalf("phase = %s, want attacks after %d rounds", s.GamePhase, game.Phase1Rounds)
	}
	if s.Round != 1 {
		t.Fatalf("round = %d, must reset to 1 entering the attack phase", s.Round)
	}
	if len(s.AttackerQueue) != 1 {
		t.Fatalf("attacker queue = %v, want a single attacker for 2 players", s.AttackerQueue)
	}
	if cur := s.CurrentPlayer(); cur == nil || cur.ID != s.AttackerQueue[0] {
		t.Fatal("turn pointer must target the head of the attacker queue")
	}
}

func TestPhase1_FailedClaimTurnsFieldBlack(t *testing.T) {
	s := newTestGame(t, 2)
	s.BotAccuracy = 0
	rng := rand.New(rand.NewSource(7))
	target := neutralFields(s)[0].ID

	s, err := Apply(s, Action{Type: ActionSetPhase1Selection, PlayerID: "p1", FieldID: target}, rng)
	if err != nil {
		t.Fatalf("selection failed: %v", err)
	}
	s, err = Apply(s, Action{Type: ActionResolvePhase1Round, HumanCorrect: false, FieldID: target}, rng)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	f := s.FieldByID(target)
	if f.Type != game.FieldBlack || f.OwnerID != "" {
		t.Fatalf("failed claim: field type=%s owner=%s, want contested unowned", f.Type, f.OwnerID)
	}
	if got := s.PlayerByID("p1").Score; got != 0 {
		t.Fatalf("failed claim must not score, got %d", got)
	}
}

func TestPhase1_RejectsOwnedFieldSelection(t *testing.T) {
	s := newTestGame(t, 2)
	var base game.FieldID
	for _, f := range s.Board {
		if f.Type == game.FieldPlayerBase {
			base = f.ID
			break
		}
	}
	_, err := Apply(s, Action{Type: ActionSetPhase1Selection, PlayerID: "p1", FieldID: base}, testRNG())
	if err != ErrIllegalTarget {
		t.Fatalf("expected ErrIllegalTarget selecting a base, got %v", err)
	}
}

func TestPass_AdvancesTurn(t *testing.T) {
	s := attackState()
	s.Players[1].IsBot = true
	before := s.Round

	ns, err := Apply(s, Action{Type: ActionPassBotTurn, PlayerID: "p1", Reason: "question generation failed"}, testRNG())
	if err != nil {
		t.Fatalf("pass failed: %v", err)
	}
	if ns.Round != before+1 {
		t.Fatalf("round = %d, want %d after the last attacker passes", ns.Round, before+1)
	}
	logged := ns.GameLog[len(ns.GameLog)-1]
	if logged != "P1 passes: question generation failed" {
		t.Fatalf("unexpected log entry %q", logged)
	}
}

func TestPass_RejectsOutOfTurn(t *testing.T) {
	s := attackState()
	if _, err := Apply(s, Action{Type: ActionPassBotTurn, PlayerID: "p2"}, testRNG()); err != ErrWrongTurn {
		t.Fatalf("expected ErrWrongTurn, got %v", err)
	}
}

func TestRoundLimit_EndsGameOnScore(t *testing.T) {
	s := attackState()
	s.Round = game.Phase2Rounds

	ns, err := Apply(s, Action{Type: ActionPassBotTurn, PlayerID: "p1", Reason: "no legal target"}, testRNG())
	if err != nil {
		t.Fatalf("pass failed: %v", err)
	}
	if ns.GamePhase != game.PhaseGameOver {
		t.Fatalf("phase = %s, want game over past the round limit", ns.GamePhase)
	}
	if len(ns.Winners) != 1 || ns.Winners[0].ID != "p1" {
		t.Fatalf("winners = %+v, want p1 (highest score)", ns.Winners)
	}
}

func TestRoundLimit_TiesProduceMultipleWinners(t *testing.T) {
	s := attackState()
	s.Round = game.Phase2Rounds
	s.PlayerByID("p2").Score = s.PlayerByID("p1").Score

	ns, err := Apply(s, Action{Type: ActionPassBotTurn, PlayerID: "p1"}, testRNG())
	if err != nil {
		t.Fatalf("pass failed: %v", err)
	}
	if len(ns.Winners) != 2 {
		t.Fatalf("expected both tied players as winners, got %+v", ns.Winners)
	}
}

// Scenario: three players, one base destruction plus one pre-existing
// negative score collapse the field from three active players to one.
func TestImmediateWin_ThreeToOne(t *testing.T) {
	s := attackState()
	s.Players = append(s.Players, game.Player{ID: "p3", Name: "P3", Score: -5, UsedAttackCategories: []game.Category{}})
	s.Board = append(s.Board, game.Field{ID: fP3Base, Q: 1, R: -1, Type: game.FieldPlayerBase, OwnerID: "p3", Category: "art", HP: game.BaseHP, MaxHP: game.BaseHP})
	s.FieldByID(fP2Base).HP = 1
	s.Round = 2 // well inside the round limit

	s = installQuestion(t, s, fP2Base, game.ActionAttack)
	s = answer(t, s, "p1", "paris")
	s = answer(t, s, "p2", "london")
	s = resolve(t, s, nil)

	if s.GamePhase != game.PhaseGameOver {
		t.Fatalf("phase = %s, want immediate game over", s.GamePhase)
	}
	if len(s.Winners) != 1 || s.Winners[0].ID != "p1" {
		t.Fatalf("winners = %+v, want p1 alone", s.Winners)
	}
	if len(s.Eliminations) != 2 {
		t.Fatalf("both elimination records must be queued, got %+v", s.Eliminations)
	}
	causes := map[string]string{}
	for _, rec := range s.Eliminations {
		causes[rec.EliminatedPlayerName] = rec.Cause
	}
	if causes["P2"] != game.CauseBaseDestroyed {
		t.Fatalf("P2 record = %+v, want base destruction", s.Eliminations)
	}
	if causes["P3"] != game.CauseNegativeScore {
		t.Fatalf("P3 record = %+v, want negative score", s.Eliminations)
	}
}

func TestGameOver_IsTerminal(t *testing.T) {
	s := attackState()
	s.GamePhase = game.PhaseGameOver
	s.Winners = []game.Player{s.Players[0]}

	if _, err := Apply(s, Action{Type: ActionPassBotTurn, PlayerID: "p1"}, testRNG()); err != ErrGameCompleted {
		t.Fatalf("expected ErrGameCompleted, got %v", err)
	}
	if _, err := Apply(s, Action{Type: ActionSubmitAnswer, PlayerID: "p1", Answer: "x"}, testRNG()); err != ErrGameCompleted {
		t.Fatalf("expected ErrGameCompleted, got %v", err)
	}

	ns, err := Apply(s, Action{Type: ActionResetGame}, testRNG())
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if ns.GamePhase != "" || len(ns.Players) != 0 {
		t.Fatal("reset must return an uninitialized state")
	}
}

func TestClearFeedback(t *testing.T) {
	s := attackState()
	s.AnswerResult = &game.AnswerResult{AttackerID: "p1"}
	s.Eliminations = []game.EliminationRecord{{EliminatedPlayerName: "P2"}}

	ns, err := Apply(s, Action{Type: ActionClearAnswerFeedback}, testRNG())
	if err != nil || ns.AnswerResult != nil {
		t.Fatalf("answer feedback not cleared (err=%v)", err)
	}
	ns, err = Apply(ns, Action{Type: ActionClearEliminationFeedback}, testRNG())
	if err != nil || len(ns.Eliminations) != 0 {
		t.Fatalf("elimination feedback not cleared (err=%v)", err)
	}
}

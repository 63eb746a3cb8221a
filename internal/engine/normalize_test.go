package engine

import "testing"

func TestNormalizeAnswer(t *testing.T) {
	cases := []struct {
		a, b string
	}{
		{"  José ", "jose"},
		{"ÚTOK", "utok"},
		{"Crème Brûlée", "creme brulee"},
		{"plain", "PLAIN "},
	}
	for _, c := range cases {
		if NormalizeAnswer(c.a) != NormalizeAnswer(c.b) {
			t.Fatalf("expected %q and %q to normalize equal (%q vs %q)",
				c.a, c.b, NormalizeAnswer(c.a), NormalizeAnswer(c.b))
		}
	}
}

func TestNormalizeAnswer_Distinct(t *testing.T) {
	if NormalizeAnswer("paris") == NormalizeAnswer("london") {
		t.Fatal("distinct answers must not normalize equal")
	}
}

func TestAnswerMatches(t *testing.T) {
	if !AnswerMatches(" JOSÉ", "jose") {
		t.Fatal("expected match after normalization")
	}
	if AnswerMatches("", "jose") {
		t.Fatal("empty answer must not match")
	}
}

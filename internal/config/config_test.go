package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkadlec/quizconquest/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"categories": ["History", "science"],
		"question_list": [
			{"text": "q1", "correct_answer": "a1", "options": ["a1", "b1"], "category": "history"},
			{"text": "q2", "correct_answer": "a2", "category": "Science"}
		]
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServerAddress != ":8080" {
		t.Fatalf("expected default address, got %s", cfg.ServerAddress)
	}
	if cfg.Language != "en" || cfg.BotDifficulty != game.DifficultyNormal {
		t.Fatalf("unexpected defaults: %s/%s", cfg.Language, cfg.BotDifficulty)
	}
	if cfg.AnswerTimeout != 30*time.Second || cfg.StartingCoins != 300 {
		t.Fatalf("unexpected timeout/coins: %v/%d", cfg.AnswerTimeout, cfg.StartingCoins)
	}
	if len(cfg.Categories) != 2 || cfg.Categories[0] != "history" {
		t.Fatalf("categories not normalized: %v", cfg.Categories)
	}
	if cfg.Questions[0].Type != game.QuestionMultipleChoice {
		t.Fatalf("q1 should be multiple choice")
	}
	if cfg.Questions[1].Type != game.QuestionOpenEnded {
		t.Fatalf("question without options should be open ended")
	}
	if cfg.Questions[1].Difficulty != game.DifficultyNormal {
		t.Fatalf("difficulty should default to normal")
	}
}

func TestLoadConfigRejectsUnknownCategoryReference(t *testing.T) {
	path := writeConfig(t, `{
		"categories": ["history"],
		"question_list": [{"text": "q", "correct_answer": "a", "category": "sports"}]
	}`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for unknown category reference")
	}
}

func TestLoadConfigRejectsEmptyCategories(t *testing.T) {
	path := writeConfig(t, `{"categories": [], "question_list": []}`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for empty categories")
	}
}

func TestLoadConfigRejectsBadAccuracy(t *testing.T) {
	path := writeConfig(t, `{
		"categories": ["history"],
		"question_list": [],
		"bot_accuracy": {"easy": 1.5}
	}`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for out-of-range accuracy")
	}
}

func TestAccuracyForFallsBackToBuiltins(t *testing.T) {
	cfg := &LoadedConfig{BotAccuracy: map[game.Difficulty]float64{game.DifficultyEasy: 0.5}}
	if got := cfg.AccuracyFor(game.DifficultyEasy); got != 0.5 {
		t.Fatalf("expected override 0.5, got %v", got)
	}
	if got := cfg.AccuracyFor(game.DifficultyHard); got != game.AccuracyForDifficulty(game.DifficultyHard) {
		t.Fatalf("expected builtin fallback, got %v", got)
	}
}

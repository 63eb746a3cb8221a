package storage

import "github.com/mkadlec/quizconquest/internal/game"

// QuestionRequest keys one lookup against the question bank. Exclude carries
// the texts of questions already asked this match so the bank never repeats
// itself within a game.
type QuestionRequest struct {
	Category   game.Category
	Difficulty game.Difficulty
	Language   string
	OpenEnded  bool
	Exclude    []string
}

// Repository is the persistence boundary: the seeded question bank plus the
// finished-match archive. In-progress game state is deliberately not part of
// this interface.
type Repository interface {
	// NextQuestion returns a random bank entry matching the request, or nil
	// when the bank is exhausted for that key.
	NextQuestion(req QuestionRequest) (*game.Question, error)
	// CountQuestions reports the number of bank entries for a category.
	CountQuestions(category game.Category, language string) (int64, error)
	// ArchiveMatch records one finished game. Repeated calls for the same
	// game ID are upserts.
	ArchiveMatch(rec *game.MatchRecord) error
	// RecentMatches lists the newest archive entries.
	RecentMatches(limit int) ([]game.MatchRecord, error)
}

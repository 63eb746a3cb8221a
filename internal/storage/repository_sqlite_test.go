package storage

import (
	"fmt"
	"testing"

	"github.com/mkadlec/quizconquest/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/datatypes"
)

func testQuestions() []game.Question {
	return []game.Question{
		{Text: "q1", CorrectAnswer: "a1", Options: []string{"a1", "b1"}, Category: "history", Difficulty: game.DifficultyEasy, Language: "en", Type: game.QuestionMultipleChoice},
		{Text: "q2", CorrectAnswer: "a2", Options: []string{"a2", "b2"}, Category: "history", Difficulty: game.DifficultyHard, Language: "en", Type: game.QuestionMultipleChoice},
		{Text: "q3", CorrectAnswer: "a3", Category: "history", Difficulty: game.DifficultyNormal, Language: "en", Type: game.QuestionOpenEnded},
		{Text: "q4", CorrectAnswer: "a4", Options: []string{"a4", "b4"}, Category: "science", Difficulty: game.DifficultyNormal, Language: "en", Type: game.QuestionMultipleChoice},
	}
}

func newTestRepository(t *testing.T) Repository {
	t.Helper()
	// Shared-cache memory databases survive gorm's connection pooling;
	// the test name keeps them isolated from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := OpenAndMigrate(dsn, testQuestions())
	require.NoError(t, err)
	return NewSQLiteRepository(db)
}

func TestNextQuestionFiltersCategoryAndLanguage(t *testing.T) {
	repo := newTestRepository(t)

	q, err := repo.NextQuestion(QuestionRequest{Category: "science", Language: "en"})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "q4", q.Text)
	assert.Equal(t, []string{"a4", "b4"}, q.Options)

	q, err = repo.NextQuestion(QuestionRequest{Category: "science", Language: "de"})
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestNextQuestionRespectsExclusionList(t *testing.T) {
	repo := newTestRepository(t)

	req := QuestionRequest{Category: "history", Language: "en", Exclude: []string{"q1", "q2"}}
	q, err := repo.NextQuestion(req)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "q3", q.Text)

	req.Exclude = []string{"q1", "q2", "q3"}
	q, err = repo.NextQuestion(req)
	require.NoError(t, err)
	assert.Nil(t, q, "fully excluded category must report exhaustion")
}

func TestNextQuestionDifficultyAndOpenEndedFilters(t *testing.T) {
	repo := newTestRepository(t)

	q, err := repo.NextQuestion(QuestionRequest{Category: "history", Language: "en", Difficulty: game.DifficultyHard})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "q2", q.Text)

	q, err = repo.NextQuestion(QuestionRequest{Category: "history", Language: "en", OpenEnded: true})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "q3", q.Text)
	assert.Equal(t, game.QuestionOpenEnded, q.Type)
}

func TestCountQuestions(t *testing.T) {
	repo := newTestRepository(t)

	n, err := repo.CountQuestions("history", "en")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = repo.CountQuestions("history", "cs")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestArchiveMatchUpsertsOnGameID(t *testing.T) {
	repo := newTestRepository(t)

	first := &game.MatchRecord{GameID: "g1", PlayerCount: 2, Rounds: 4, WinnerNames: "Alice", Stats: datatypes.JSON([]byte("{}"))}
	require.NoError(t, repo.ArchiveMatch(first))

	second := &game.MatchRecord{GameID: "g1", PlayerCount: 2, Rounds: 6, WinnerNames: "Bot 1", Stats: datatypes.JSON([]byte("{}"))}
	require.NoError(t, repo.ArchiveMatch(second))

	matches, err := repo.RecentMatches(10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Bot 1", matches[0].WinnerNames)
	assert.Equal(t, 6, matches[0].Rounds)
}

func TestGameStore(t *testing.T) {
	store := NewGameStore()

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrGameNotFound)

	s := &game.State{ID: "g1"}
	store.Put(s)
	got, err := store.Get("g1")
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Len(t, store.List(), 1)

	store.Delete("g1")
	_, err = store.Get("g1")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

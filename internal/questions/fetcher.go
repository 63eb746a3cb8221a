package questions

import (
	"fmt"

	"github.com/mkadlec/quizconquest/internal/game"
	"github.com/mkadlec/quizconquest/internal/storage"

	"golang.org/x/sync/singleflight"
)

// Provider serves the next unused question for a request. A nil question with
// a nil error means the pool for that request is exhausted.
type Provider interface {
	NextQuestion(req storage.QuestionRequest) (*game.Question, error)
}

// Fetcher deduplicates concurrent question lookups. Two drivers asking for
// the same game and category at the same time share one bank query instead of
// racing for different rows.
type Fetcher struct {
	provider Provider
	group    singleflight.Group
}

func NewFetcher(provider Provider) *Fetcher {
	return &Fetcher{provider: provider}
}

func (f *Fetcher) Fetch(gameID string, req storage.QuestionRequest) (*game.Question, error) {
	key := fmt.Sprintf("%s|%s|%s|%s|%t", gameID, req.Category, req.Difficulty, req.Language, req.OpenEnded)
	v, err, _ := f.group.Do(key, func() (interface{}, error) {
		return f.provider.NextQuestion(req)
	})
	if err != nil {
		return nil, err
	}
	q, _ := v.(*game.Question)
	return q, nil
}

package service

import (
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mkadlec/quizconquest/internal/config"
	"github.com/mkadlec/quizconquest/internal/constants"
	"github.com/mkadlec/quizconquest/internal/engine"
	"github.com/mkadlec/quizconquest/internal/game"
	"github.com/mkadlec/quizconquest/internal/logging"
	"github.com/mkadlec/quizconquest/internal/questions"
	"github.com/mkadlec/quizconquest/internal/storage"

	"gorm.io/datatypes"
)

var (
	ErrNoQuestion = errors.New("no question available")
	ErrNotBotTurn = errors.New("current player is not a bot")
)

// Service orchestrates game lifecycles: it drives the state machine, feeds it
// questions from the bank, answers for bots and archives finished matches.
type Service struct {
	store   *storage.GameStore
	repo    storage.Repository
	fetcher *questions.Fetcher
	cfg     *config.LoadedConfig

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(store *storage.GameStore, repo storage.Repository, fetcher *questions.Fetcher, cfg *config.LoadedConfig) *Service {
	return &Service{
		store:   store,
		repo:    repo,
		fetcher: fetcher,
		cfg:     cfg,
		locks:   make(map[string]*sync.Mutex),
	}
}

// lockGame serializes transitions of a single game. Distinct games proceed
// concurrently.
func (svc *Service) lockGame(id string) func() {
	svc.mu.Lock()
	l, ok := svc.locks[id]
	if !ok {
		l = &sync.Mutex{}
		svc.locks[id] = l
	}
	svc.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func (svc *Service) newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

type CreateGameParams struct {
	PlayerCount int
	HumanName   string
	Difficulty  game.Difficulty
	Categories  []game.Category
	Language    string
}

func (svc *Service) CreateGame(params CreateGameParams) (*game.State, error) {
	difficulty := params.Difficulty
	if difficulty == "" {
		difficulty = svc.cfg.BotDifficulty
	}
	categories := params.Categories
	if len(categories) == 0 {
		categories = svc.cfg.Categories
	}
	language := params.Language
	if language == "" {
		language = svc.cfg.Language
	}

	s, err := engine.NewGame(engine.Setup{
		GameID:        uuid.NewString(),
		PlayerCount:   params.PlayerCount,
		HumanName:     params.HumanName,
		HumanCoins:    svc.cfg.StartingCoins,
		BotDifficulty: difficulty,
		BotAccuracy:   svc.cfg.AccuracyFor(difficulty),
		Categories:    categories,
		Language:      language,
		RNG:           svc.newRNG(),
	})
	if err != nil {
		return nil, err
	}
	svc.store.Put(s)
	logging.Info("game created", logging.Fields{
		constants.LogFieldGameID: s.ID,
		"players":                len(s.Players),
	})
	return s, nil
}

func (svc *Service) GetGame(gameID string) (*game.State, error) {
	return svc.store.Get(gameID)
}

func (svc *Service) ResetGame(gameID string) (*game.State, error) {
	unlock := svc.lockGame(gameID)
	defer unlock()

	s, err := svc.store.Get(gameID)
	if err != nil {
		return nil, err
	}
	ns, err := engine.Apply(s, engine.Action{Type: engine.ActionResetGame}, nil)
	if err != nil {
		return nil, err
	}
	svc.store.Delete(gameID)
	logging.Info("game reset", logging.Fields{constants.LogFieldGameID: gameID})
	return ns, nil
}

func (svc *Service) ClearAnswerFeedback(gameID string) (*game.State, error) {
	return svc.applyStored(gameID, engine.Action{Type: engine.ActionClearAnswerFeedback})
}

func (svc *Service) ClearEliminationFeedback(gameID string) (*game.State, error) {
	return svc.applyStored(gameID, engine.Action{Type: engine.ActionClearEliminationFeedback})
}

func (svc *Service) RecentMatches(limit int) ([]game.MatchRecord, error) {
	return svc.repo.RecentMatches(limit)
}

// applyStored runs one action against a stored game under its lock and saves
// the result.
func (svc *Service) applyStored(gameID string, a engine.Action) (*game.State, error) {
	unlock := svc.lockGame(gameID)
	defer unlock()

	s, err := svc.store.Get(gameID)
	if err != nil {
		return nil, err
	}
	ns, err := engine.Apply(s, a, svc.newRNG())
	if err != nil {
		return s, err
	}
	svc.store.Put(ns)
	return ns, nil
}

// archiveIfFinished persists the final outcome of a completed game. The live
// state stays in the store so clients can still read the end screen.
func (svc *Service) archiveIfFinished(s *game.State) {
	if s.GamePhase != game.PhaseGameOver {
		return
	}
	names := make([]string, 0, len(s.Winners))
	for _, w := range s.Winners {
		names = append(names, w.Name)
	}
	stats := make(map[string]game.PlayerStats, len(s.Players))
	for _, p := range s.Players {
		stats[p.Name] = p.Stats
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		logging.Error("failed to encode match stats", err, logging.Fields{constants.LogFieldGameID: s.ID})
		raw = []byte("{}")
	}
	record := &game.MatchRecord{
		GameID:      s.ID,
		PlayerCount: len(s.Players),
		Rounds:      s.Round,
		WinnerNames: strings.Join(names, ", "),
		Stats:       datatypes.JSON(raw),
	}
	if err := svc.repo.ArchiveMatch(record); err != nil {
		logging.Error("failed to archive match", err, logging.Fields{constants.LogFieldGameID: s.ID})
		return
	}
	logging.Info("match archived", logging.Fields{
		constants.LogFieldGameID: s.ID,
		"winners":                record.WinnerNames,
	})
}

package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/mkadlec/quizconquest/internal/game"
)

var (
	ErrInvalidPlayerCount = errors.New("player count must be 2 or 4")
	ErrNoCategories       = errors.New("at least one category is required")
)

var playerColors = []string{"#e74c3c", "#3498db", "#2ecc71", "#f1c40f"}

// Setup carries everything needed to initialize a new game. The RNG is
// injected so scenario tests can be deterministic.
type Setup struct {
	GameID        string
	PlayerCount   int
	HumanName     string
	HumanCoins    int
	BotDifficulty game.Difficulty
	BotAccuracy   float64
	Categories    []game.Category
	Language      string
	RNG           *rand.Rand
}

// base coordinates sit on hexagon corners: opposite ends for two players,
// four-way symmetric for four.
var baseCoords = map[int][][2]int{
	2: {{-1, 0}, {1, 0}},
	4: {{2, 0}, {-2, 0}, {0, 2}, {0, -2}},
}

func boardRadius(playerCount int) int {
	if playerCount == 2 {
		return 1
	}
	return 2
}

// NewGame builds the initial state: a hex board of radius 1 or 2 with one
// base per player and neutral fields whose categories are spread evenly by
// shuffling the category list and assigning round-robin.
func NewGame(setup Setup) (*game.State, error) {
	if setup.PlayerCount != 2 && setup.PlayerCount != 4 {
		return nil, ErrInvalidPlayerCount
	}
	if len(setup.Categories) == 0 {
		return nil, ErrNoCategories
	}
	rng := setup.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if setup.BotDifficulty == "" {
		setup.BotDifficulty = game.DifficultyNormal
	}
	if setup.BotAccuracy <= 0 || setup.BotAccuracy > 1 {
		setup.BotAccuracy = game.AccuracyForDifficulty(setup.BotDifficulty)
	}

	shuffled := append([]game.Category(nil), setup.Categories...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	players := newPlayers(setup, shuffled)
	board := newBoard(setup.PlayerCount, players, shuffled)

	s := &game.State{
		ID:                     setup.GameID,
		Players:                players,
		Board:                  board,
		GamePhase:              game.PhaseLandGrab,
		CurrentTurnPlayerIndex: 0,
		Round:                  1,
		Phase1Selections:       make(map[game.PlayerID]*game.FieldID, len(players)),
		QuestionHistory:        []string{},
		GameLog:                []string{},
		BotDifficulty:          setup.BotDifficulty,
		BotAccuracy:            setup.BotAccuracy,
		AllowedCategories:      append([]game.Category(nil), setup.Categories...),
		Language:               setup.Language,
		CreatedAt:              time.Now().UTC(),
	}
	return s, nil
}

func newPlayers(setup Setup, shuffled []game.Category) []game.Player {
	humanName := setup.HumanName
	if humanName == "" {
		humanName = "Player"
	}
	players := make([]game.Player, 0, setup.PlayerCount)
	for i := 0; i < setup.PlayerCount; i++ {
		p := game.Player{
			ID:                   game.PlayerID(fmt.Sprintf("p%d", i+1)),
			Color:                playerColors[i],
			MainBaseCategory:     shuffled[i%len(shuffled)],
			UsedAttackCategories: []game.Category{},
		}
		if i == 0 {
			p.Name = humanName
			p.Coins = setup.HumanCoins
		} else {
			p.Name = fmt.Sprintf("Bot %d", i+1)
			p.IsBot = true
		}
		players = append(players, p)
	}
	return players
}

func newBoard(playerCount int, players []game.Player, shuffled []game.Category) []game.Field {
	radius := boardRadius(playerCount)
	bases := baseCoords[playerCount]

	baseOwner := func(q, r int) game.PlayerID {
		for i, c := range bases {
			if c[0] == q && c[1] == r {
				return players[i].ID
			}
		}
		return ""
	}

	fields := make([]game.Field, 0, 3*radius*(radius+1)+1)
	id := game.FieldID(0)
	neutralIdx := 0
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			if q+r < -radius || q+r > radius {
				continue
			}
			f := game.Field{ID: id, Q: q, R: r}
			if owner := baseOwner(q, r); owner != "" {
				f.Type = game.FieldPlayerBase
				f.OwnerID = owner
				f.Category = mustPlayer(players, owner).MainBaseCategory
				f.HP = game.BaseHP
				f.MaxHP = game.BaseHP
			} else {
				f.Type = game.FieldNeutral
				f.Category = shuffled[neutralIdx%len(shuffled)]
				f.HP = game.FieldHP
				f.MaxHP = game.FieldHP
				neutralIdx++
			}
			fields = append(fields, f)
			id++
		}
	}

	// Structurally empty cells never reach the playable board.
	playable := fields[:0]
	for _, f := range fields {
		if f.Type != game.FieldEmpty {
			playable = append(playable, f)
		}
	}
	return playable
}

func mustPlayer(players []game.Player, id game.PlayerID) *game.Player {
	for i := range players {
		if players[i].ID == id {
			return &players[i]
		}
	}
	return &players[0]
}

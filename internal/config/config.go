package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mkadlec/quizconquest/internal/game"
)

type questionEntry struct {
	Text          string   `json:"text"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
	Language      string   `json:"language"`
	OpenEnded     bool     `json:"open_ended"`
}

type rawConfig struct {
	Categories []string        `json:"categories"`
	Questions  []questionEntry `json:"question_list"`
	Server     *struct {
		Address string `json:"address"`
	} `json:"server"`
	Language             string             `json:"language"`
	BotDifficulty        string             `json:"bot_difficulty"`
	BotAccuracy          map[string]float64 `json:"bot_accuracy"`
	AnswerTimeoutSeconds int                `json:"answer_timeout_seconds"`
	StartingCoins        int                `json:"starting_coins"`
}

// LoadedConfig contains the category list, question seed data and runtime
// settings for the server.
type LoadedConfig struct {
	Categories    []game.Category
	Questions     []game.Question
	ServerAddress string
	Language      string
	BotDifficulty game.Difficulty
	BotAccuracy   map[game.Difficulty]float64
	AnswerTimeout time.Duration
	StartingCoins int
}

// AccuracyFor resolves the bot answer accuracy for a difficulty, falling back
// to the built-in defaults when the config does not override it.
func (c *LoadedConfig) AccuracyFor(d game.Difficulty) float64 {
	if v, ok := c.BotAccuracy[d]; ok && v > 0 && v <= 1 {
		return v
	}
	return game.AccuracyForDifficulty(d)
}

// LoadConfig reads the configuration file at path. It requires a non-empty
// `categories` array and a `question_list` whose entries reference only
// declared categories.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.Categories) == 0 {
		return nil, fmt.Errorf("config file %s: categories is empty (provide a 'categories' array)", path)
	}
	catSet := make(map[string]struct{}, len(rc.Categories))
	categories := make([]game.Category, 0, len(rc.Categories))
	for _, c := range rc.Categories {
		key := strings.ToLower(strings.TrimSpace(c))
		if key == "" {
			return nil, fmt.Errorf("config file %s: blank category entry", path)
		}
		if _, exists := catSet[key]; exists {
			return nil, fmt.Errorf("config file %s: duplicate category '%s'", path, c)
		}
		catSet[key] = struct{}{}
		categories = append(categories, game.Category(key))
	}

	lang := strings.TrimSpace(rc.Language)
	if lang == "" {
		lang = "en"
	}

	questions := make([]game.Question, 0, len(rc.Questions))
	for i, q := range rc.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return nil, fmt.Errorf("config file %s: question %d missing 'text'", path, i)
		}
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			return nil, fmt.Errorf("config file %s: question %q missing 'correct_answer'", path, q.Text)
		}
		cat := strings.ToLower(strings.TrimSpace(q.Category))
		if _, ok := catSet[cat]; !ok {
			return nil, fmt.Errorf("config file %s: question %q references unknown category '%s'", path, q.Text, q.Category)
		}
		qt := game.QuestionMultipleChoice
		if q.OpenEnded || len(q.Options) == 0 {
			qt = game.QuestionOpenEnded
		}
		difficulty := game.Difficulty(strings.ToLower(strings.TrimSpace(q.Difficulty)))
		if difficulty == "" {
			difficulty = game.DifficultyNormal
		}
		qLang := strings.TrimSpace(q.Language)
		if qLang == "" {
			qLang = lang
		}
		questions = append(questions, game.Question{
			Text:          q.Text,
			CorrectAnswer: q.CorrectAnswer,
			Options:       q.Options,
			Category:      game.Category(cat),
			Difficulty:    difficulty,
			Language:      qLang,
			Type:          qt,
		})
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	difficulty := game.Difficulty(strings.ToLower(strings.TrimSpace(rc.BotDifficulty)))
	switch difficulty {
	case "":
		difficulty = game.DifficultyNormal
	case game.DifficultyEasy, game.DifficultyNormal, game.DifficultyHard:
	default:
		return nil, fmt.Errorf("config file %s: unknown bot_difficulty '%s'", path, rc.BotDifficulty)
	}

	accuracy := make(map[game.Difficulty]float64, len(rc.BotAccuracy))
	for k, v := range rc.BotAccuracy {
		if v <= 0 || v > 1 {
			return nil, fmt.Errorf("config file %s: bot_accuracy[%s]=%v out of range (0,1]", path, k, v)
		}
		accuracy[game.Difficulty(strings.ToLower(k))] = v
	}

	timeout := 30 * time.Second
	if rc.AnswerTimeoutSeconds > 0 {
		timeout = time.Duration(rc.AnswerTimeoutSeconds) * time.Second
	}

	coins := rc.StartingCoins
	if coins < 0 {
		return nil, fmt.Errorf("config file %s: starting_coins must not be negative", path)
	}
	if coins == 0 {
		coins = 300
	}

	return &LoadedConfig{
		Categories:    categories,
		Questions:     questions,
		ServerAddress: addr,
		Language:      lang,
		BotDifficulty: difficulty,
		BotAccuracy:   accuracy,
		AnswerTimeout: timeout,
		StartingCoins: coins,
	}, nil
}

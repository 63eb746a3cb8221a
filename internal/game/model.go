package game

import "time"

type PlayerID string

type FieldID int

type Category string

type FieldType string

const (
	FieldNeutral    FieldType = "neutral"
	FieldPlayerBase FieldType = "player_base"
	FieldBlack      FieldType = "black"
	FieldEmpty      FieldType = "empty"
)

type GamePhase string

const (
	PhaseLandGrab GamePhase = "phase1_land_grab"
	PhaseAttacks  GamePhase = "phase2_attacks"
	PhaseGameOver GamePhase = "game_over"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionOpenEnded      QuestionType = "open_ended"
)

// ActionKind distinguishes what an active question is being asked for.
type ActionKind string

const (
	ActionAttack ActionKind = "attack"
	ActionHeal   ActionKind = "heal"
)

// Difficulty controls both the question pool a bot draws from and the
// probability that a bot answers correctly.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Question is opaque to the engine: it only ever compares answers against
// CorrectAnswer. Text and options exist for the driver/UI.
type Question struct {
	Text          string       `json:"text"`
	CorrectAnswer string       `json:"correct_answer"`
	Options       []string     `json:"options,omitempty"`
	Category      Category     `json:"category"`
	Difficulty    Difficulty   `json:"difficulty"`
	Language      string       `json:"language"`
	Type          QuestionType `json:"type"`
}

// Field is one hex cell of the board, addressed by axial coordinates.
type Field struct {
	ID       FieldID   `json:"id"`
	Q        int       `json:"q"`
	R        int       `json:"r"`
	Type     FieldType `json:"type"`
	OwnerID  PlayerID  `json:"owner_id,omitempty"`
	Category Category  `json:"category,omitempty"`
	HP       int       `json:"hp"`
	MaxHP    int       `json:"max_hp"`
}

// PlayerStats accumulates per-match statistics for the finished-game archive.
type PlayerStats struct {
	QuestionsAnswered int `json:"questions_answered"`
	CorrectAnswers    int `json:"correct_answers"`
	FieldsClaimed     int `json:"fields_claimed"`
	FieldsLost        int `json:"fields_lost"`
	BasesDestroyed    int `json:"bases_destroyed"`
}

type Player struct {
	ID                   PlayerID    `json:"id"`
	Name                 string      `json:"name"`
	Color                string      `json:"color"`
	Score                int         `json:"score"`
	Coins                int         `json:"coins"`
	IsBot                bool        `json:"is_bot"`
	MainBaseCategory     Category    `json:"main_base_category"`
	UsedAttackCategories []Category  `json:"used_attack_categories"`
	IsEliminated         bool        `json:"is_eliminated"`
	Stats                PlayerStats `json:"stats"`
}

// HasUsedCategory reports whether the player already burned this category
// on a territory attack this match.
func (p *Player) HasUsedCategory(c Category) bool {
	for _, u := range p.UsedAttackCategories {
		if u == c {
			return true
		}
	}
	return false
}

// MarkCategoryUsed records c with set semantics (no duplicates).
func (p *Player) MarkCategoryUsed(c Category) {
	if !p.HasUsedCategory(c) {
		p.UsedAttackCategories = append(p.UsedAttackCategories, c)
	}
}

// ActiveQuestion is the single in-flight question of a turn. PlayerAnswers
// holds one slot per required participant; a nil value means "not answered
// yet". The struct is replaced, never patched, when a tie-breaker is issued.
type ActiveQuestion struct {
	Question      Question              `json:"question"`
	QuestionType  QuestionType          `json:"question_type"`
	TargetFieldID FieldID               `json:"target_field_id"`
	AttackerID    PlayerID              `json:"attacker_id"`
	DefenderID    PlayerID              `json:"defender_id,omitempty"`
	IsBaseAttack  bool                  `json:"is_base_attack"`
	IsTieBreaker  bool                  `json:"is_tie_breaker"`
	ActionType    ActionKind            `json:"action_type"`
	PlayerAnswers map[PlayerID]*string  `json:"player_answers"`
	StartTime     time.Time             `json:"start_time"`
}

// Answered reports whether every required participant has an answer recorded.
func (aq *ActiveQuestion) Answered() bool {
	for _, a := range aq.PlayerAnswers {
		if a == nil {
			return false
		}
	}
	return true
}

// AnswerResult is the transient outcome of the last resolved question, kept
// around until the driver acknowledges it.
type AnswerResult struct {
	AttackerID      PlayerID   `json:"attacker_id"`
	DefenderID      PlayerID   `json:"defender_id,omitempty"`
	AttackerCorrect bool       `json:"attacker_correct"`
	DefenderCorrect bool       `json:"defender_correct"`
	CorrectAnswer   string     `json:"correct_answer"`
	TargetFieldID   FieldID    `json:"target_field_id"`
	ActionType      ActionKind `json:"action_type"`
	WasTieBreaker   bool       `json:"was_tie_breaker"`
}

// Elimination causes.
const (
	CauseBaseDestroyed = "base destroyed"
	CauseNegativeScore = "negative score"
)

// EliminationRecord is a pending elimination notification. Records queue up
// so that two eliminations in a single resolution are both surfaced.
type EliminationRecord struct {
	EliminatedPlayerName string `json:"eliminated_player_name"`
	AttackerName         string `json:"attacker_name,omitempty"`
	Cause                string `json:"cause"`
}

// State is the aggregate game state. Every transition returns a structurally
// new value; callers must treat a previous reference as stale afterwards.
type State struct {
	ID                     string                 `json:"id"`
	Players                []Player               `json:"players"`
	Board                  []Field                `json:"board"`
	GamePhase              GamePhase              `json:"game_phase"`
	CurrentTurnPlayerIndex int                    `json:"current_turn_player_index"`
	Round                  int                    `json:"round"`
	ActiveQuestion         *ActiveQuestion        `json:"active_question,omitempty"`
	Winners                []Player               `json:"winners,omitempty"`
	Phase1Selections       map[PlayerID]*FieldID  `json:"phase1_selections"`
	AnswerResult           *AnswerResult          `json:"answer_result,omitempty"`
	Eliminations           []EliminationRecord    `json:"eliminations,omitempty"`
	QuestionHistory        []string               `json:"question_history"`
	AttackerQueue          []PlayerID             `json:"attacker_queue,omitempty"`
	GameLog                []string               `json:"game_log"`
	BotDifficulty          Difficulty             `json:"bot_difficulty"`
	BotAccuracy            float64                `json:"bot_accuracy"`
	AllowedCategories      []Category             `json:"allowed_categories"`
	Language               string                 `json:"language"`
	CreatedAt              time.Time              `json:"created_at"`
}

// FieldByID returns a pointer into the state's board, or nil.
func (s *State) FieldByID(id FieldID) *Field {
	for i := range s.Board {
		if s.Board[i].ID == id {
			return &s.Board[i]
		}
	}
	return nil
}

// PlayerByID returns a pointer into the state's player list, or nil.
func (s *State) PlayerByID(id PlayerID) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// PlayerIndex returns the position of id in the ordered player list, or -1.
func (s *State) PlayerIndex(id PlayerID) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// ActivePlayers returns the non-eliminated players in turn order.
func (s *State) ActivePlayers() []Player {
	out := make([]Player, 0, len(s.Players))
	for _, p := range s.Players {
		if !p.IsEliminated {
			out = append(out, p)
		}
	}
	return out
}

// CurrentPlayer returns the player the turn pointer targets, or nil when the
// pointer is out of range.
func (s *State) CurrentPlayer() *Player {
	if s.CurrentTurnPlayerIndex < 0 || s.CurrentTurnPlayerIndex >= len(s.Players) {
		return nil
	}
	return &s.Players[s.CurrentTurnPlayerIndex]
}

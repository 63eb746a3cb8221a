package game

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuestionRecord is a persisted question-bank entry. The bank is seeded from
// the config file at startup and queried by category/difficulty/language with
// an exclusion list of already-asked question texts.
type QuestionRecord struct {
	gorm.Model
	Text          string         `json:"text" gorm:"index"`
	CorrectAnswer string         `json:"correct_answer"`
	Options       datatypes.JSON `json:"options" gorm:"type:json"`
	Category      string         `json:"category" gorm:"index"`
	Difficulty    string         `json:"difficulty" gorm:"index"`
	Language      string         `json:"language" gorm:"index"`
	OpenEnded     bool           `json:"open_ended"`
}

func (QuestionRecord) TableName() string { return "question_bank" }

// MatchRecord archives one finished game. In-progress games are never
// persisted; only the final outcome and per-player statistics are kept.
type MatchRecord struct {
	gorm.Model
	GameID      string         `json:"game_id" gorm:"uniqueIndex;size:36"`
	PlayerCount int            `json:"player_count"`
	Rounds      int            `json:"rounds"`
	WinnerNames string         `json:"winner_names"`
	Stats       datatypes.JSON `json:"stats" gorm:"type:json"`
}

func (MatchRecord) TableName() string { return "match_archive" }

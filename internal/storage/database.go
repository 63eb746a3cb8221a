package storage

import (
	"encoding/json"

	"github.com/mkadlec/quizconquest/internal/game"
	"github.com/mkadlec/quizconquest/internal/logging"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database, keeps the schema updated via
// AutoMigrate and seeds the question bank from the config file when the bank
// is empty.
func OpenAndMigrate(dataSourceName string, questionsFromConfig []game.Question) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.QuestionRecord{}, &game.MatchRecord{}); err != nil {
		return nil, err
	}
	seedQuestionBank(db, questionsFromConfig)
	return db, nil
}

func seedQuestionBank(db *gorm.DB, questionsFromConfig []game.Question) {
	var count int64
	db.Model(&game.QuestionRecord{}).Count(&count)
	if count > 0 {
		return
	}
	records := make([]game.QuestionRecord, 0, len(questionsFromConfig))
	for _, q := range questionsFromConfig {
		opts, err := json.Marshal(q.Options)
		if err != nil {
			logging.Error("failed to encode question options", err, logging.Fields{"text": q.Text})
			continue
		}
		records = append(records, game.QuestionRecord{
			Text:          q.Text,
			CorrectAnswer: q.CorrectAnswer,
			Options:       datatypes.JSON(opts),
			Category:      string(q.Category),
			Difficulty:    string(q.Difficulty),
			Language:      q.Language,
			OpenEnded:     q.Type == game.QuestionOpenEnded,
		})
	}
	if len(records) == 0 {
		logging.Warn("question bank seed is empty", nil)
		return
	}
	if err := db.Create(&records).Error; err != nil {
		logging.Error("failed to seed question bank", err, nil)
		return
	}
	logging.Info("question bank seeded", logging.Fields{"questions": len(records)})
}

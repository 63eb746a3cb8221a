package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mkadlec/quizconquest/internal/game"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository wraps an open gorm handle in the Repository interface.
func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) NextQuestion(req QuestionRequest) (*game.Question, error) {
	query := r.db.Model(&game.QuestionRecord{}).
		Where("category = ?", string(req.Category)).
		Where("language = ?", req.Language)
	if req.Difficulty != "" {
		query = query.Where("difficulty = ?", string(req.Difficulty))
	}
	if req.OpenEnded {
		query = query.Where("open_ended = ?", true)
	}
	if len(req.Exclude) > 0 {
		query = query.Not("text IN ?", req.Exclude)
	}

	var record game.QuestionRecord
	err := query.Order("RANDOM()").Limit(1).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch question: %w", err)
	}
	return recordToQuestion(record)
}

func (r *sqliteRepository) CountQuestions(category game.Category, language string) (int64, error) {
	var count int64
	err := r.db.Model(&game.QuestionRecord{}).
		Where("category = ?", string(category)).
		Where("language = ?", language).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

func (r *sqliteRepository) ArchiveMatch(record *game.MatchRecord) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}},
		UpdateAll: true,
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to archive match: %w", err)
	}
	return nil
}

func (r *sqliteRepository) RecentMatches(limit int) ([]game.MatchRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	var records []game.MatchRecord
	err := r.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return records, nil
}

func recordToQuestion(record game.QuestionRecord) (*game.Question, error) {
	var options []string
	if len(record.Options) > 0 {
		if err := json.Unmarshal(record.Options, &options); err != nil {
			return nil, fmt.Errorf("failed to decode question options: %w", err)
		}
	}
	qType := game.QuestionMultipleChoice
	if record.OpenEnded {
		qType = game.QuestionOpenEnded
	}
	return &game.Question{
		Text:          record.Text,
		CorrectAnswer: record.CorrectAnswer,
		Options:       options,
		Category:      game.Category(record.Category),
		Difficulty:    game.Difficulty(record.Difficulty),
		Language:      record.Language,
		Type:          qType,
	}, nil
}

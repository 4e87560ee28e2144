package repository

import (
	"context"

	"task_maturity_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// FindAllWithOptions 题目与选项都按自然顺序返回
func (r *QuestionRepository) FindAllWithOptions(ctx context.Context) ([]model.TestQuestion, error) {
	var questions []model.TestQuestion
	err := r.DB.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("option_order ASC, id ASC")
		}).
		Order("question_order ASC, id ASC").
		Find(&questions).Error
	return questions, err
}

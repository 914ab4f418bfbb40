package repository

import (
	"context"
	"errors"
	"fmt"
	"quizapp/internal/model"
	"quizapp/internal/util"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// 按 ID 升序返回全部题目
func (r *QuestionRepository) List(ctx context.Context) ([]*model.Question, error) {
	var questions []*model.Question
	err := r.DB.WithContext(ctx).Order("id").Find(&questions).Error
	return questions, err
}

// FindByID returns util.ErrQuestionNotFound when no row has the id.
func (r *QuestionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.WithContext(ctx).First(&question, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("question %d: %w", id, util.ErrQuestionNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.DB.WithContext(ctx).Create(question).Error
}

// CreateBatch inserts all questions or none.
func (r *QuestionRepository) CreateBatch(ctx context.Context, questions []*model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&questions).Error
	})
}

func (r *QuestionRepository) Update(ctx context.Context, question *model.Question) error {
	return r.DB.WithContext(ctx).Save(question).Error
}

func (r *QuestionRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&model.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("question %d: %w", id, util.ErrQuestionNotFound)
	}
	return nil
}

func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Question{}).Count(&count).Error
	return count, err
}

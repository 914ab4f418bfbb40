package repository

import (
	"context"
	"errors"
	"quizapp/internal/model"
	"quizapp/internal/util"

	"gorm.io/gorm"
)

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

func (r *ScoreRepository) Create(ctx context.Context, score *model.StudentScore) error {
	return r.DB.WithContext(ctx).Create(score).Error
}

// 按提交顺序返回全部成绩
func (r *ScoreRepository) List(ctx context.Context) ([]*model.StudentScore, error) {
	var scores []*model.StudentScore
	err := r.DB.WithContext(ctx).Order("id").Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) FindByToken(ctx context.Context, token string) (*model.StudentScore, error) {
	var score model.StudentScore
	err := r.DB.WithContext(ctx).Where("token = ?", token).First(&score).Error
	return checkFound(&score, err)
}

// FindLatestByName returns the most recent submission under name.
func (r *ScoreRepository) FindLatestByName(ctx context.Context, name string) (*model.StudentScore, error) {
	var score model.StudentScore
	err := r.DB.WithContext(ctx).Where("name = ?", name).Order("id DESC").First(&score).Error
	return checkFound(&score, err)
}

// DeleteAll 清空成绩表，无软删除
func (r *ScoreRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.DB.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.StudentScore{})
	return result.RowsAffected, result.Error
}

func (r *ScoreRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.StudentScore{}).Count(&count).Error
	return count, err
}

func checkFound(score *model.StudentScore, err error) (*model.StudentScore, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	return score, nil
}

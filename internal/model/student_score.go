package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentScore 一次答题提交的结果，只追加不修改
type StudentScore struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Token     string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"token"`
	Name      string    `gorm:"type:varchar(100);not null;index" json:"name"`
	Score     int       `gorm:"not null" json:"score"`
	Total     int       `gorm:"not null" json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

func (StudentScore) TableName() string {
	return "student_scores"
}

func (s *StudentScore) BeforeCreate(tx *gorm.DB) (err error) {
	if s.Token == "" {
		s.Token = uuid.New().String()
	}
	return
}

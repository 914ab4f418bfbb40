package model

import "time"

// Question 单选题，四个选项，CorrectOption 为 A-D 之一
type Question struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionText  string    `gorm:"type:varchar(200);not null" json:"question_text"`
	OptionA       string    `gorm:"type:varchar(100);not null" json:"option_a"`
	OptionB       string    `gorm:"type:varchar(100);not null" json:"option_b"`
	OptionC       string    `gorm:"type:varchar(100);not null" json:"option_c"`
	OptionD       string    `gorm:"type:varchar(100);not null" json:"option_d"`
	CorrectOption string    `gorm:"type:varchar(1);not null" json:"correct_option"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}

type Option struct {
	Letter string
	Text   string
}

// Options returns the four options in letter order.
func (q Question) Options() []Option {
	return []Option{
		{Letter: "A", Text: q.OptionA},
		{Letter: "B", Text: q.OptionB},
		{Letter: "C", Text: q.OptionC},
		{Letter: "D", Text: q.OptionD},
	}
}

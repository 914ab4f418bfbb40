package database

import (
	"context"
	"quizapp/internal/model"

	"gorm.io/gorm"
)

// SampleQuestions are inserted into an empty question table.
// Correct answers in order: B C B A C.
func SampleQuestions() []*model.Question {
	return []*model.Question{
		{QuestionText: "What is the keyword used to define a function in Python?", OptionA: "func", OptionB: "def", OptionC: "function", OptionD: "define", CorrectOption: "B"},
		{QuestionText: "Which of the following is a mutable data type in Python?", OptionA: "tuple", OptionB: "string", OptionC: "list", OptionD: "int", CorrectOption: "C"},
		{QuestionText: "What is the output of print(2 ** 3)?", OptionA: "6", OptionB: "8", OptionC: "9", OptionD: "None of the above", CorrectOption: "B"},
		{QuestionText: "Which of the following is used to handle exceptions in Python?", OptionA: "try-except", OptionB: "if-else", OptionC: "for-while", OptionD: "do-while", CorrectOption: "A"},
		{QuestionText: "What is the correct file extension for Python files?", OptionA: ".pyth", OptionB: ".pt", OptionC: ".py", OptionD: ".p", CorrectOption: "C"},
	}
}

// SeedQuestions inserts SampleQuestions when no question exists and
// returns how many rows it wrote.
func SeedQuestions(ctx context.Context, db *gorm.DB) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Question{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	questions := SampleQuestions()
	if err := db.WithContext(ctx).Create(&questions).Error; err != nil {
		return 0, err
	}
	return len(questions), nil
}

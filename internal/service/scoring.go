package service

import (
	"quizapp/internal/model"
	"quizapp/internal/util"
)

// Answers maps a question ID in decimal form to the submitted option letter.
type Answers map[string]string

// ScoreAnswers counts the questions whose submitted letter equals the
// stored correct option. Missing answers never count.
func ScoreAnswers(answers Answers, questions []*model.Question) int {
	score := 0
	for _, q := range questions {
		selected, ok := answers[util.FormatID(q.ID)]
		if ok && selected == q.CorrectOption {
			score++
		}
	}
	return score
}

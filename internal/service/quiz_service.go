package service

import (
	"context"
	"fmt"
	"quizapp/internal/model"
	"quizapp/internal/repository"
	"quizapp/internal/util"
	"quizapp/pkg/logger"
	"quizapp/pkg/monitoring"
	"quizapp/pkg/tracing"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type QuizService struct {
	QuestionRepo *repository.QuestionRepository
	ScoreRepo    *repository.ScoreRepository
}

func NewQuizService(questionRepo *repository.QuestionRepository, scoreRepo *repository.ScoreRepository) *QuizService {
	return &QuizService{
		QuestionRepo: questionRepo,
		ScoreRepo:    scoreRepo,
	}
}

// 答题页展示的全部题目
func (s *QuizService) Questions(ctx context.Context) ([]*model.Question, error) {
	return s.QuestionRepo.List(ctx)
}

// Submit scores answers against every stored question and appends a
// score record for name.
func (s *QuizService) Submit(ctx context.Context, name string, answers Answers) (*model.StudentScore, error) {
	ctx, span := tracing.Start(ctx, "QuizService.Submit")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, util.ErrNameRequired
	}
	if utf8.RuneCountInString(name) > util.MaxNameLen {
		return nil, fmt.Errorf("%w: max %d characters", util.ErrNameTooLong, util.MaxNameLen)
	}

	questions, err := s.QuestionRepo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list questions: %w", err)
	}

	record := &model.StudentScore{
		Name:  name,
		Score: ScoreAnswers(answers, questions),
		Total: len(questions),
	}
	if err := s.ScoreRepo.Create(ctx, record); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("save score: %w", err)
	}

	span.SetAttributes(
		attribute.Int("quiz.score", record.Score),
		attribute.Int("quiz.total", record.Total),
	)
	monitoring.ObserveSubmission(record.Score, record.Total)
	logger.Log.Info("Quiz submitted",
		zap.String("name", record.Name),
		zap.Int("score", record.Score),
		zap.Int("total", record.Total),
	)

	return record, nil
}

// Result looks up a submission by token when one is given, otherwise the
// latest submission under name.
func (s *QuizService) Result(ctx context.Context, token, name string) (*model.StudentScore, error) {
	token = strings.TrimSpace(token)
	name = strings.TrimSpace(name)

	switch {
	case token != "":
		return s.ScoreRepo.FindByToken(ctx, token)
	case name != "":
		return s.ScoreRepo.FindLatestByName(ctx, name)
	default:
		return nil, fmt.Errorf("%w: name or token", util.ErrNameRequired)
	}
}

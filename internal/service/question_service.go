package service

import (
	"context"
	"fmt"
	"io"
	"quizapp/internal/model"
	"quizapp/internal/repository"
	"quizapp/internal/util"
	"quizapp/pkg/logger"
	"quizapp/pkg/monitoring"
	"quizapp/pkg/tracing"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// QuestionInput carries the six editable fields of a question.
type QuestionInput struct {
	QuestionText  string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectOption string
}

func (in *QuestionInput) normalize() {
	in.QuestionText = strings.TrimSpace(in.QuestionText)
	in.OptionA = strings.TrimSpace(in.OptionA)
	in.OptionB = strings.TrimSpace(in.OptionB)
	in.OptionC = strings.TrimSpace(in.OptionC)
	in.OptionD = strings.TrimSpace(in.OptionD)
	in.CorrectOption = strings.ToUpper(strings.TrimSpace(in.CorrectOption))
}

func (in QuestionInput) validate() error {
	if in.QuestionText == "" {
		return fmt.Errorf("%w: question text is required", util.ErrInvalidQuestion)
	}
	if utf8.RuneCountInString(in.QuestionText) > util.MaxQuestionTextLen {
		return fmt.Errorf("%w: question text exceeds %d characters", util.ErrInvalidQuestion, util.MaxQuestionTextLen)
	}

	options := []string{in.OptionA, in.OptionB, in.OptionC, in.OptionD}
	for i, opt := range options {
		letter := util.OptionLetters[i]
		if opt == "" {
			return fmt.Errorf("%w: option %s is required", util.ErrInvalidQuestion, letter)
		}
		if utf8.RuneCountInString(opt) > util.MaxOptionLen {
			return fmt.Errorf("%w: option %s exceeds %d characters", util.ErrInvalidQuestion, letter, util.MaxOptionLen)
		}
	}

	if !util.IsValidOption(in.CorrectOption) {
		return fmt.Errorf("%w, got %q", util.ErrInvalidOption, in.CorrectOption)
	}
	return nil
}

func (in QuestionInput) apply(q *model.Question) {
	q.QuestionText = in.QuestionText
	q.OptionA = in.OptionA
	q.OptionB = in.OptionB
	q.OptionC = in.OptionC
	q.OptionD = in.OptionD
	q.CorrectOption = in.CorrectOption
}

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo}
}

func (s *QuestionService) List(ctx context.Context) ([]*model.Question, error) {
	return s.QuestionRepo.List(ctx)
}

func (s *QuestionService) Get(ctx context.Context, id uint) (*model.Question, error) {
	return s.QuestionRepo.FindByID(ctx, id)
}

// 新增题目
func (s *QuestionService) Add(ctx context.Context, in QuestionInput) (*model.Question, error) {
	ctx, span := tracing.Start(ctx, "QuestionService.Add")
	defer span.End()

	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	question := &model.Question{}
	in.apply(question)
	if err := s.QuestionRepo.Create(ctx, question); err != nil {
		span.RecordError(err)
		return nil, err
	}

	monitoring.QuestionChanges.WithLabelValues("add").Inc()
	logger.Log.Info("Question added", zap.Uint("id", question.ID))
	return question, nil
}

// Edit overwrites all six fields of question id.
func (s *QuestionService) Edit(ctx context.Context, id uint, in QuestionInput) (*model.Question, error) {
	ctx, span := tracing.Start(ctx, "QuestionService.Edit")
	defer span.End()

	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	question, err := s.QuestionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.apply(question)
	if err := s.QuestionRepo.Update(ctx, question); err != nil {
		span.RecordError(err)
		return nil, err
	}

	monitoring.QuestionChanges.WithLabelValues("edit").Inc()
	logger.Log.Info("Question edited", zap.Uint("id", id))
	return question, nil
}

// 删除题目，不存在时返回 ErrQuestionNotFound
func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	ctx, span := tracing.Start(ctx, "QuestionService.Delete")
	defer span.End()

	if _, err := s.QuestionRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.QuestionRepo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}

	monitoring.QuestionChanges.WithLabelValues("delete").Inc()
	logger.Log.Info("Question deleted", zap.Uint("id", id))
	return nil
}

// Import reads questions from the first sheet of an xlsx workbook. Columns:
// question text, option A-D, correct option. A header row whose first cell
// is "question_text" is skipped. Either every row is stored or none is.
func (s *QuestionService) Import(ctx context.Context, r io.Reader) (int, error) {
	ctx, span := tracing.Start(ctx, "QuestionService.Import")
	defer span.End()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", util.ErrInvalidSheet, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Log.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return 0, fmt.Errorf("%w: workbook has no sheets", util.ErrInvalidSheet)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", util.ErrInvalidSheet, err)
	}

	var questions []*model.Question
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "question_text") {
			continue
		}
		if len(row) < 6 {
			return 0, fmt.Errorf("%w: row %d has %d columns, want 6", util.ErrInvalidSheet, i+1, len(row))
		}

		in := QuestionInput{
			QuestionText:  row[0],
			OptionA:       row[1],
			OptionB:       row[2],
			OptionC:       row[3],
			OptionD:       row[4],
			CorrectOption: row[5],
		}
		in.normalize()
		if err := in.validate(); err != nil {
			return 0, fmt.Errorf("%w: row %d: %v", util.ErrInvalidSheet, i+1, err)
		}

		question := &model.Question{}
		in.apply(question)
		questions = append(questions, question)
	}

	if err := s.QuestionRepo.CreateBatch(ctx, questions); err != nil {
		span.RecordError(err)
		return 0, err
	}

	monitoring.QuestionChanges.WithLabelValues("import").Add(float64(len(questions)))
	logger.Log.Info("Questions imported", zap.Int("count", len(questions)))
	return len(questions), nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

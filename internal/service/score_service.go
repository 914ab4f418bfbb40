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

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const scoreSheet = "Scores"

var scoreHeader = []interface{}{"ID", "Name", "Score", "Total", "Submitted At"}

type ScoreService struct {
	ScoreRepo *repository.ScoreRepository
}

func NewScoreService(scoreRepo *repository.ScoreRepository) *ScoreService {
	return &ScoreService{ScoreRepo: scoreRepo}
}

func (s *ScoreService) List(ctx context.Context) ([]*model.StudentScore, error) {
	return s.ScoreRepo.List(ctx)
}

// Reset 清空全部成绩，题目不受影响
func (s *ScoreService) Reset(ctx context.Context) error {
	ctx, span := tracing.Start(ctx, "ScoreService.Reset")
	defer span.End()

	n, err := s.ScoreRepo.DeleteAll(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}

	monitoring.ScoreResets.Inc()
	logger.Log.Info("Scores reset", zap.Int64("deleted", n))
	return nil
}

// Export writes every score as an xlsx workbook to w.
func (s *ScoreService) Export(ctx context.Context, w io.Writer) error {
	ctx, span := tracing.Start(ctx, "ScoreService.Export")
	defer span.End()

	scores, err := s.ScoreRepo.List(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Log.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), scoreSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(scoreSheet, "A1", &scoreHeader); err != nil {
		return err
	}

	for i, score := range scores {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{score.ID, score.Name, score.Score, score.Total, score.CreatedAt.Format(util.TimeFormat)}
		if err := f.SetSheetRow(scoreSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

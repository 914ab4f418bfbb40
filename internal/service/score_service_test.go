package service_test

import (
	"bytes"
	"context"
	"quizapp/internal/repository"
	"quizapp/internal/service"
	"quizapp/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestScoreService_ResetKeepsQuestions(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSeededDB(t)
	quiz := newQuizService(db)
	scores := service.NewScoreService(repository.NewScoreRepository(db))

	for _, name := range []string{"Alice", "Bob", "Alice"} {
		_, err := quiz.Submit(ctx, name, service.Answers{"1": "B"})
		require.NoError(t, err)
	}

	list, err := scores.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	require.NoError(t, scores.Reset(ctx))

	list, err = scores.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	questions, err := repository.NewQuestionRepository(db).Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, questions)

	// 空表上重置也应成功
	require.NoError(t, scores.Reset(ctx))
}

func TestScoreService_Export(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSeededDB(t)
	quiz := newQuizService(db)
	scores := service.NewScoreService(repository.NewScoreRepository(db))

	_, err := quiz.Submit(ctx, "Alice", service.Answers{"1": "B", "2": "C", "3": "B", "4": "A", "5": "C"})
	require.NoError(t, err)
	_, err = quiz.Submit(ctx, "Bob", service.Answers{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, scores.Export(ctx, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Scores")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Name", "Score", "Total", "Submitted At"}, rows[0])
	assert.Equal(t, "Alice", rows[1][1])
	assert.Equal(t, "5", rows[1][2])
	assert.Equal(t, "Bob", rows[2][1])
	assert.Equal(t, "0", rows[2][2])
}

package app

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"quizapp/internal/model"
	"quizapp/internal/testutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*App, *gorm.DB) {
	t.Helper()

	db := testutil.NewSeededDB(t)
	app, err := NewWithDB(testutil.TestConfig(), db)
	require.NoError(t, err)
	return app, db
}

func get(app *App, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	app.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func postForm(app *App, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	app.Router.ServeHTTP(rr, req)
	return rr
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

func TestHome(t *testing.T) {
	app, _ := newTestApp(t)

	rr := get(app, "/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "/manage_questions")

	rr = get(app, "/?admin=true")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/manage_questions")
	assert.Contains(t, rr.Body.String(), "/scores")
}

func TestQuizFlow(t *testing.T) {
	app, db := newTestApp(t)

	rr := get(app, "/quiz")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "What is the keyword used to define a function in Python?")
	assert.Contains(t, body, `name="1" value="B"`)

	rr = postForm(app, "/quiz", url.Values{
		"name": {"Alice"},
		"1":    {"B"},
		"2":    {"C"},
		"3":    {"B"},
		"4":    {"A"},
		"5":    {"C"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	location, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/result", location.Path)
	assert.Equal(t, "Alice", location.Query().Get("name"))
	assert.NotEmpty(t, location.Query().Get("token"))

	var record model.StudentScore
	require.NoError(t, db.Where("name = ?", "Alice").First(&record).Error)
	assert.Equal(t, 5, record.Score)

	rr = get(app, location.String())
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `<strong class="score">5</strong>`)

	rr = get(app, "/result?name=Alice")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `<strong class="score">5</strong>`)
}

func TestSubmitQuizErrors(t *testing.T) {
	app, db := newTestApp(t)

	tests := []struct {
		name string
		form url.Values
	}{
		{name: "missing name", form: url.Values{"1": {"B"}}},
		{name: "blank name", form: url.Values{"name": {"  "}, "1": {"B"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postForm(app, "/quiz", tt.form)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}

	assert.Zero(t, countRows(t, db, &model.StudentScore{}))
}

func TestResultNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	rr := get(app, "/result?name=Unknown")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "no such result")

	rr = get(app, "/result?token=missing")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = get(app, "/result")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestScoresResetAndExport(t *testing.T) {
	app, db := newTestApp(t)

	for _, name := range []string{"Alice", "Bob"} {
		rr := postForm(app, "/quiz", url.Values{"name": {name}, "1": {"B"}})
		require.Equal(t, http.StatusSeeOther, rr.Code)
	}

	rr := get(app, "/scores")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Alice")
	assert.Contains(t, rr.Body.String(), "Bob")

	rr = get(app, "/scores/export")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "scores.xlsx")
	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	rows, err := f.GetRows("Scores")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	require.NoError(t, f.Close())

	// 没有 reset 字段时不做任何修改
	rr = postForm(app, "/scores", url.Values{})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.EqualValues(t, 2, countRows(t, db, &model.StudentScore{}))

	rr = postForm(app, "/scores", url.Values{"reset": {"1"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/scores", rr.Header().Get("Location"))
	assert.Zero(t, countRows(t, db, &model.StudentScore{}))
	assert.EqualValues(t, 5, countRows(t, db, &model.Question{}))
}

func questionForm(action string) url.Values {
	return url.Values{
		"action":         {action},
		"question_text":  {"What does len return for a nil slice?"},
		"option_a":       {"panic"},
		"option_b":       {"-1"},
		"option_c":       {"0"},
		"option_d":       {"nil"},
		"correct_option": {"C"},
	}
}

func TestManageQuestions(t *testing.T) {
	app, db := newTestApp(t)

	t.Run("list", func(t *testing.T) {
		rr := get(app, "/manage_questions")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "What is the correct file extension for Python files?")
	})

	t.Run("add", func(t *testing.T) {
		rr := postForm(app, "/manage_questions", questionForm("add"))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "What does len return for a nil slice?")

		var q model.Question
		require.NoError(t, db.Where("question_text = ?", "What does len return for a nil slice?").First(&q).Error)
		assert.Equal(t, "0", q.OptionC)
		assert.Equal(t, "C", q.CorrectOption)
	})

	t.Run("add with bad letter", func(t *testing.T) {
		before := countRows(t, db, &model.Question{})
		form := questionForm("add")
		form.Set("correct_option", "E")

		rr := postForm(app, "/manage_questions", form)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, before, countRows(t, db, &model.Question{}))
	})

	t.Run("add with missing field", func(t *testing.T) {
		form := questionForm("add")
		form.Del("option_b")

		rr := postForm(app, "/manage_questions", form)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("edit", func(t *testing.T) {
		form := questionForm("edit")
		form.Set("question_id", "1")
		form.Set("question_text", "Edited question")

		rr := postForm(app, "/manage_questions", form)
		require.Equal(t, http.StatusOK, rr.Code)

		var q model.Question
		require.NoError(t, db.First(&q, 1).Error)
		assert.Equal(t, "Edited question", q.QuestionText)

		var other model.Question
		require.NoError(t, db.First(&other, 2).Error)
		assert.Equal(t, "Which of the following is a mutable data type in Python?", other.QuestionText)
	})

	t.Run("edit missing", func(t *testing.T) {
		form := questionForm("edit")
		form.Set("question_id", "999")

		rr := postForm(app, "/manage_questions", form)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("edit bad id", func(t *testing.T) {
		form := questionForm("edit")
		form.Set("question_id", "abc")

		rr := postForm(app, "/manage_questions", form)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("delete", func(t *testing.T) {
		before := countRows(t, db, &model.Question{})

		rr := postForm(app, "/manage_questions", url.Values{"action": {"delete"}, "question_id": {"5"}})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "What is the correct file extension for Python files?")
		assert.Equal(t, before-1, countRows(t, db, &model.Question{}))
	})

	t.Run("delete missing", func(t *testing.T) {
		rr := postForm(app, "/manage_questions", url.Values{"action": {"delete"}, "question_id": {"5"}})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("unknown action", func(t *testing.T) {
		before := countRows(t, db, &model.Question{})

		rr := postForm(app, "/manage_questions", url.Values{"action": {"noop"}})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, before, countRows(t, db, &model.Question{}))
	})
}

func TestImportQuestions(t *testing.T) {
	app, db := newTestApp(t)

	f := excelize.NewFile()
	row := []interface{}{"Is Go statically typed?", "yes", "no", "sometimes", "never", "A"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &row))
	sheet, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "questions.xlsx")
	require.NoError(t, err)
	_, err = part.Write(sheet.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/manage_questions/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	app.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.EqualValues(t, 6, countRows(t, db, &model.Question{}))

	rr = postForm(app, "/manage_questions/import", url.Values{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStaticHealthAndNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	rr := get(app, "/static/style.css")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "font-family")

	rr = get(app, "/health")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"database":"up"`)

	rr = get(app, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = get(app, "/nowhere")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRequestCancelled(t *testing.T) {
	app, _ := newTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodGet, "/quiz", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	app.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

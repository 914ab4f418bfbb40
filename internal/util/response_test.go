package util

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "question not found", err: fmt.Errorf("question 3: %w", ErrQuestionNotFound), want: http.StatusNotFound},
		{name: "result not found", err: ErrResultNotFound, want: http.StatusNotFound},
		{name: "name required", err: ErrNameRequired, want: http.StatusBadRequest},
		{name: "invalid option", err: fmt.Errorf("%w, got %q", ErrInvalidOption, "E"), want: http.StatusBadRequest},
		{name: "invalid sheet", err: ErrInvalidSheet, want: http.StatusBadRequest},
		{name: "anything else", err: errors.New("disk full"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.SetHTMLTemplate(template.Must(template.New(errorTemplate).Parse(`{{.Status}} {{.Message}}`)))
			r.GET("/", func(c *gin.Context) { HandleError(c, tt.err) })

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestFormatID(t *testing.T) {
	assert.Equal(t, "12", FormatID(12))
	assert.Equal(t, "0", FormatID(0))
}

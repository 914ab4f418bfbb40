package util

import (
	"errors"
	"net/http"
	"quizapp/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response JSON 响应结构，仅用于运维接口
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

const errorTemplate = "error.html"

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

// Error renders the shared error page with the given status.
func Error(c *gin.Context, code int, message string) {
	c.HTML(code, errorTemplate, gin.H{
		"Title":   http.StatusText(code),
		"Status":  code,
		"Message": message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	_ = c.Error(err)
	InternalServerError(c)
}

// HandleError maps domain errors onto status codes.
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrQuestionNotFound), errors.Is(err, ErrResultNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrNameTooLong),
		errors.Is(err, ErrInvalidOption),
		errors.Is(err, ErrInvalidQuestion),
		errors.Is(err, ErrInvalidSheet):
		BadRequest(c, err.Error())
	default:
		LogInternalError(c, err)
	}
}

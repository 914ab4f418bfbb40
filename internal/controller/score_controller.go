package controller

import (
	"bytes"
	"net/http"
	"quizapp/internal/service"
	"quizapp/internal/util"

	"github.com/gin-gonic/gin"
)

type ScoreController struct {
	ScoreService *service.ScoreService
}

func NewScoreController(scoreService *service.ScoreService) *ScoreController {
	return &ScoreController{ScoreService: scoreService}
}

func (c *ScoreController) ListScores(ctx *gin.Context) {
	scores, err := c.ScoreService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "scores.html", gin.H{
		"Title":  "Scores",
		"Scores": scores,
	})
}

// ResetScores clears every score when the form carries a reset field.
func (c *ScoreController) ResetScores(ctx *gin.Context) {
	if _, ok := ctx.GetPostForm("reset"); ok {
		if err := c.ScoreService.Reset(ctx.Request.Context()); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}
	ctx.Redirect(http.StatusSeeOther, "/scores")
}

func (c *ScoreController) ExportScores(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := c.ScoreService.Export(ctx.Request.Context(), &buf); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="scores.xlsx"`)
	ctx.Data(http.StatusOK, util.MimeXLSX, buf.Bytes())
}

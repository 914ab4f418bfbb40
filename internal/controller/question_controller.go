package controller

import (
	"fmt"
	"net/http"
	"quizapp/internal/service"
	"quizapp/internal/util"

	"github.com/gin-gonic/gin"
)

const (
	actionAdd    = "add"
	actionEdit   = "edit"
	actionDelete = "delete"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// QuestionForm binds the add form; the edit form embeds it.
type QuestionForm struct {
	QuestionText  string `form:"question_text" binding:"required"`
	OptionA       string `form:"option_a" binding:"required"`
	OptionB       string `form:"option_b" binding:"required"`
	OptionC       string `form:"option_c" binding:"required"`
	OptionD       string `form:"option_d" binding:"required"`
	CorrectOption string `form:"correct_option" binding:"required"`
}

func (f QuestionForm) input() service.QuestionInput {
	return service.QuestionInput{
		QuestionText:  f.QuestionText,
		OptionA:       f.OptionA,
		OptionB:       f.OptionB,
		OptionC:       f.OptionC,
		OptionD:       f.OptionD,
		CorrectOption: f.CorrectOption,
	}
}

type editQuestionForm struct {
	QuestionForm
	QuestionID uint `form:"question_id" binding:"required"`
}

type deleteQuestionForm struct {
	QuestionID uint `form:"question_id" binding:"required"`
}

func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	c.render(ctx)
}

// ManageQuestions dispatches on the action field, then re-renders the
// question list. An unknown action changes nothing.
func (c *QuestionController) ManageQuestions(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

	switch ctx.PostForm("action") {
	case actionAdd:
		var form QuestionForm
		if err := ctx.ShouldBind(&form); err != nil {
			util.BadRequest(ctx, fmt.Sprintf("%v: all fields are required", util.ErrInvalidQuestion))
			return
		}
		if _, err := c.QuestionService.Add(reqCtx, form.input()); err != nil {
			util.HandleError(ctx, err)
			return
		}

	case actionEdit:
		var form editQuestionForm
		if err := ctx.ShouldBind(&form); err != nil {
			util.BadRequest(ctx, fmt.Sprintf("%v: question_id and all fields are required", util.ErrInvalidQuestion))
			return
		}
		if _, err := c.QuestionService.Edit(reqCtx, form.QuestionID, form.input()); err != nil {
			util.HandleError(ctx, err)
			return
		}

	case actionDelete:
		var form deleteQuestionForm
		if err := ctx.ShouldBind(&form); err != nil {
			util.BadRequest(ctx, "a numeric question_id is required")
			return
		}
		if err := c.QuestionService.Delete(reqCtx, form.QuestionID); err != nil {
			util.HandleError(ctx, err)
			return
		}
	}

	c.render(ctx)
}

// ImportQuestions adds every question from an uploaded xlsx file.
func (c *QuestionController) ImportQuestions(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "a spreadsheet file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	if _, err := c.QuestionService.Import(ctx.Request.Context(), file); err != nil {
		util.HandleError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/manage_questions")
}

func (c *QuestionController) render(ctx *gin.Context) {
	questions, err := c.QuestionService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "manage_questions.html", gin.H{
		"Title":     "Manage questions",
		"Questions": questions,
		"Letters":   util.OptionLetters,
	})
}

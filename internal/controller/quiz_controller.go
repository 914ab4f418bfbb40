package controller

import (
	"net/http"
	"net/url"
	"quizapp/internal/service"
	"quizapp/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

func (c *QuizController) ShowQuiz(ctx *gin.Context) {
	questions, err := c.QuizService.Questions(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "quiz.html", gin.H{
		"Title":     "Quiz",
		"Questions": questions,
	})
}

type submitQuizRequest struct {
	Name string `form:"name" binding:"required"`
}

// SubmitQuiz scores the posted answers. Every form field other than name
// is read as questionID=letter.
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	var req submitQuizRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, util.ErrNameRequired.Error())
		return
	}

	answers := make(service.Answers, len(ctx.Request.PostForm))
	for key, values := range ctx.Request.PostForm {
		if key == "name" || len(values) == 0 {
			continue
		}
		answers[key] = values[0]
	}

	record, err := c.QuizService.Submit(ctx.Request.Context(), req.Name, answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	query := url.Values{}
	query.Set("name", record.Name)
	query.Set("token", record.Token)
	ctx.Redirect(http.StatusSeeOther, "/result?"+query.Encode())
}

func (c *QuizController) ShowResult(ctx *gin.Context) {
	record, err := c.QuizService.Result(ctx.Request.Context(), ctx.Query("token"), ctx.Query("name"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "result.html", gin.H{
		"Title": "Result",
		"Name":  record.Name,
		"Score": record.Score,
		"Total": record.Total,
	})
}

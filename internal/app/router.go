package app

import (
	"quizapp/internal/util"
	"quizapp/internal/web"
	"quizapp/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	router.StaticFS("/static", web.Static())

	router.GET("/", c.home.Home)

	router.GET("/quiz", c.quiz.ShowQuiz)
	router.POST("/quiz", c.quiz.SubmitQuiz)
	router.GET("/result", c.quiz.ShowResult)

	router.GET("/scores", c.score.ListScores)
	router.POST("/scores", c.score.ResetScores)
	router.GET("/scores/export", c.score.ExportScores)

	// admin 标志只影响首页链接，这里不做权限校验
	router.GET("/manage_questions", c.question.ListQuestions)
	router.POST("/manage_questions", c.question.ManageQuestions)
	router.POST("/manage_questions/import", c.question.ImportQuestions)

	router.NoRoute(func(ctx *gin.Context) {
		util.NotFound(ctx, "page not found")
	})
}

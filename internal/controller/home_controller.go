package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HomeController struct{}

func NewHomeController() *HomeController {
	return &HomeController{}
}

// Home renders the landing page. ?admin=true only toggles navigation
// links; it grants nothing.
func (c *HomeController) Home(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "home.html", gin.H{
		"Title":   "Python Quiz",
		"IsAdmin": ctx.Query("admin") == "true",
	})
}

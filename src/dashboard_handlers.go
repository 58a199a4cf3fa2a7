package main

import (
	"cycleparadise/src/apperror"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *server) dashboardHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.GET("/dashboard/stats", func(ctx *gin.Context) {
		stats, err := s.dashboard.Stats(ctx.Request.Context())
		if err != nil {
			apperror.Respond(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, stats)
	})
	return g
}

package main

import (
	"cycleparadise/src/apperror"
	"cycleparadise/src/models"
	"cycleparadise/src/types"
	"cycleparadise/src/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *server) publicGuideHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/guides", func(ctx *gin.Context) {
			var query types.GuideQueryFilters
			if err := ctx.ShouldBindQuery(&query); err != nil {
				bindError(ctx, err)
				return
			}
			guides, err := s.guides.FindPublished(ctx.Request.Context(), types.GuideSearchParams{
				Query:         strings.TrimSpace(query.Query),
				Region:        query.Region,
				MaxDifficulty: query.MaxDifficulty,
				Featured:      query.Featured,
			})
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": guides, "count": len(guides)})
		}).
		GET("/guides/:slug", func(ctx *gin.Context) {
			var params types.SlugRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			guide, err := s.guides.FindBySlug(ctx.Request.Context(), params.Slug)
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": guide})
		})
	return g
}

func applyGuide(guide *models.CyclingGuide, body types.UpsertGuideRequestBody) {
	guide.Title = body.Title
	guide.Slug = utils.Slugify(body.Slug, body.Title)
	guide.Region = body.Region
	guide.Content = body.Content
	guide.Description = body.Description
	guide.ShortDescription = body.ShortDescription
	guide.RouteMap = body.RouteMap
	guide.DifficultyRating = body.DifficultyRating
	guide.EstimatedDistance = body.EstimatedDistance
	guide.EstimatedDuration = body.EstimatedDuration
	guide.StartingPoint = body.StartingPoint
	guide.EndingPoint = body.EndingPoint
	guide.TerrainType = body.TerrainType
	guide.BestSeason = body.BestSeason
	guide.Highlights = body.Highlights
	guide.SafetyTips = body.SafetyTips
	guide.GearChecklist = body.GearChecklist
	guide.MapImageURL = body.MapImageURL
	guide.GpxFileURL = body.GpxFileURL
	guide.Featured = body.Featured
	guide.MetaTitle = body.MetaTitle
	guide.MetaDescription = body.MetaDescription
	if body.IsPublished != nil {
		guide.IsPublished = *body.IsPublished
	}
}

func (s *server) adminGuideHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/guides", func(ctx *gin.Context) {
			guides, err := s.guides.FindAll(ctx.Request.Context())
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": guides, "count": len(guides)})
		}).
		POST("/guides", func(ctx *gin.Context) {
			var body types.UpsertGuideRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			var guide models.CyclingGuide
			applyGuide(&guide, body)
			if err := s.guides.Create(ctx.Request.Context(), &guide); err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": guide})
		}).
		GET("/guides/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			guide, err := s.guides.FindByID(ctx.Request.Context(), params.ID)
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": guide})
		}).
		PUT("/guides/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			var body types.UpsertGuideRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			c := ctx.Request.Context()
			guide, err := s.guides.FindByID(c, params.ID)
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			applyGuide(guide, body)
			if err := s.guides.Update(c, guide); err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": guide})
		}).
		DELETE("/guides/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			if err := s.guides.Delete(ctx.Request.Context(), params.ID); err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Guide deleted successfully"})
		})
	return g
}

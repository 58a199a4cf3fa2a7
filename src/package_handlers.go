package main

import (
	"cycleparadise/src/apperror"
	"cycleparadise/src/models"
	"cycleparadise/src/repositories"
	"cycleparadise/src/types"
	"cycleparadise/src/utils"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// errPackageMissing is ErrPackageNotFound rendered as a 404 for lookups by
// slug or id, where the package is the resource itself.
var errPackageMissing = apperror.NewNotFoundError("Package not found", apperror.CodePackageNotFound)

func packageLookupError(ctx *gin.Context, err error) {
	if errors.Is(err, repositories.ErrPackageNotFound) {
		err = errPackageMissing
	}
	apperror.Respond(ctx, err)
}

func (s *server) publicPackageHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/packages", func(ctx *gin.Context) {
			var query types.PackageQueryFilters
			if err := ctx.ShouldBindQuery(&query); err != nil {
				bindError(ctx, err)
				return
			}
			result, err := s.packages.FindMany(ctx.Request.Context(), types.PackageSearchParams{
				Query:       strings.TrimSpace(query.Query),
				Region:      query.Region,
				Difficulty:  types.DifficultyLevel(query.Difficulty),
				MinPrice:    query.MinPrice,
				MaxPrice:    query.MaxPrice,
				MinDuration: query.MinDuration,
				MaxDuration: query.MaxDuration,
				Featured:    query.Featured,
				Page:        query.Page,
				Limit:       query.Limit,
			})
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": result})
		}).
		GET("/packages/featured", func(ctx *gin.Context) {
			var query struct {
				Limit int `form:"limit" binding:"omitempty,min=1,max=12"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				bindError(ctx, err)
				return
			}
			packages, err := s.packages.FindFeatured(ctx.Request.Context(), query.Limit)
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": packages})
		}).
		GET("/packages/:slug", func(ctx *gin.Context) {
			var params types.SlugRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			pkg, err := s.packages.FindBySlug(ctx.Request.Context(), params.Slug)
			if err != nil {
				packageLookupError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": pkg})
		})
	return g
}

func applyPackage(pkg *models.TourPackage, body types.UpsertPackageRequestBody) {
	pkg.Title = body.Title
	pkg.Slug = utils.Slugify(body.Slug, body.Title)
	pkg.Description = body.Description
	pkg.ShortDescription = body.ShortDescription
	pkg.Itinerary = body.Itinerary
	pkg.Duration = body.Duration
	pkg.DifficultyLevel = body.DifficultyLevel
	pkg.Region = body.Region
	pkg.BasePrice = body.BasePrice
	pkg.MaxParticipants = body.MaxParticipants
	pkg.IncludedServices = body.IncludedServices
	pkg.ExcludedServices = body.ExcludedServices
	pkg.Highlights = body.Highlights
	pkg.WhatToBring = body.WhatToBring
	pkg.MediaGallery = body.MediaGallery
	pkg.YoutubeVideoID = body.YoutubeVideoID
	pkg.FAQs = body.FAQs
	pkg.Featured = body.Featured
	pkg.MetaTitle = body.MetaTitle
	pkg.MetaDescription = body.MetaDescription
	if body.IsActive != nil {
		pkg.IsActive = *body.IsActive
	}
}

func (s *server) adminPackageHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/packages", func(ctx *gin.Context) {
			packages, err := s.packages.FindAll(ctx.Request.Context())
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": packages, "count": len(packages)})
		}).
		POST("/packages", func(ctx *gin.Context) {
			var body types.UpsertPackageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			pkg := models.TourPackage{IsActive: true}
			applyPackage(&pkg, body)
			if err := s.packages.Create(ctx.Request.Context(), &pkg); err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": pkg})
		}).
		GET("/packages/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			pkg, err := s.packages.FindByID(ctx.Request.Context(), params.ID)
			if err != nil {
				packageLookupError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": pkg})
		}).
		PUT("/packages/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			var body types.UpsertPackageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			c := ctx.Request.Context()
			pkg, err := s.packages.FindByID(c, params.ID)
			if err != nil {
				packageLookupError(ctx, err)
				return
			}
			applyPackage(pkg, body)
			if err := s.packages.Update(c, pkg); err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": pkg})
		}).
		DELETE("/packages/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			if err := s.packages.Delete(ctx.Request.Context(), params.ID); err != nil {
				packageLookupError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Package deleted successfully"})
		})
	return g
}

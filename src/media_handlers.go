package main

import (
	"cycleparadise/src/apperror"
	"cycleparadise/src/lib/storage"
	"cycleparadise/src/middlewares"
	"cycleparadise/src/models"
	"cycleparadise/src/repositories"
	"cycleparadise/src/types"
	"fmt"
	"log"
	"math"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 32 << 20

// saveUpload writes one multipart file to the store and records it.
func (s *server) saveUpload(ctx *gin.Context, fh *multipart.FileHeader) (*models.MediaAsset, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c := ctx.Request.Context()
	key := storage.NewKey(fh.Filename, s.now())
	url, err := s.store.Save(c, key, f, contentType)
	if err != nil {
		return nil, err
	}
	uploader := middlewares.AdminID(ctx)
	asset := models.MediaAsset{
		Filename:   fh.Filename,
		StorageKey: key,
		MimeType:   contentType,
		FileSize:   fh.Size,
		URL:        url,
		UploadedBy: &uploader,
		IsPublic:   true,
	}
	if err := s.media.Create(c, &asset); err != nil {
		if derr := s.store.Delete(c, key); derr != nil {
			log.Printf("Error removing orphaned upload %s: %s\n", key, derr.Error())
		}
		return nil, err
	}
	return &asset, nil
}

func (s *server) mediaHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/media", func(ctx *gin.Context) {
			var query types.MediaQueryFilters
			if err := ctx.ShouldBindQuery(&query); err != nil {
				bindError(ctx, err)
				return
			}
			page, limit := query.Page, query.Limit
			if page < 1 {
				page = 1
			}
			if limit < 1 {
				limit = repositories.DefaultMediaLimit
			}
			assets, total, err := s.media.FindMany(ctx.Request.Context(), query.Search, page, limit)
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"data": assets,
				"meta": gin.H{
					"total":      total,
					"page":       page,
					"limit":      limit,
					"totalPages": int(math.Ceil(float64(total) / float64(limit))),
				},
			})
		}).
		POST("/media", func(ctx *gin.Context) {
			ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxUploadSize)
			form, err := ctx.MultipartForm()
			if err != nil || len(form.File["files"]) == 0 {
				apperror.Respond(ctx, apperror.NewValidationError("No files uploaded", "files", ""))
				return
			}
			uploaded := make([]*models.MediaAsset, 0, len(form.File["files"]))
			for _, fh := range form.File["files"] {
				asset, err := s.saveUpload(ctx, fh)
				if err != nil {
					log.Printf("[%s] Failed to handle file %s: %s\n", s.store.Name(), fh.Filename, err.Error())
					continue
				}
				uploaded = append(uploaded, asset)
			}
			if len(uploaded) == 0 {
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to upload files"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{
				"message": fmt.Sprintf("Successfully uploaded %d files", len(uploaded)),
				"data":    uploaded,
			})
		}).
		DELETE("/media/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			c := ctx.Request.Context()
			asset, err := s.media.FindByID(c, params.ID)
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			if err := s.store.Delete(c, asset.StorageKey); err != nil {
				log.Printf("[%s] Error deleting %s: %s\n", s.store.Name(), asset.StorageKey, err.Error())
			}
			if err := s.media.Delete(c, asset.ID); err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
		})
	return g
}

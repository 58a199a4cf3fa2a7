package repositories

import (
	"context"
	"cycleparadise/src/apperror"
	"cycleparadise/src/models"
	"cycleparadise/src/models/scopes"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultMediaLimit = 20

var ErrMediaNotFound = apperror.NewNotFoundError("Media asset not found", apperror.CodeNotFound)

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) Create(ctx context.Context, asset *models.MediaAsset) error {
	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		return fail("creating media asset", "Failed to save media asset", err)
	}
	return nil
}

// FindMany searches filename, alt text and caption.
func (r *MediaRepository) FindMany(ctx context.Context, search string, page, limit int) ([]models.MediaAsset, int64, error) {
	page, limit = normalizePage(page, limit, DefaultMediaLimit)
	q := func() *gorm.DB {
		db := r.db.WithContext(ctx).Model(&models.MediaAsset{})
		if search != "" {
			like := scopes.Contains(search)
			db = db.Where("filename ILIKE ? OR alt_text ILIKE ? OR caption ILIKE ?", like, like, like)
		}
		return db
	}
	var total int64
	if err := q().Count(&total).Error; err != nil {
		return nil, 0, fail("counting media", "Failed to retrieve media", err)
	}
	var assets []models.MediaAsset
	err := q().Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&assets).Error
	if err != nil {
		return nil, 0, fail("finding media", "Failed to retrieve media", err)
	}
	return assets, total, nil
}

func (r *MediaRepository) FindByID(ctx context.Context, id string) (*models.MediaAsset, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrMediaNotFound
	}
	var asset models.MediaAsset
	err = r.db.WithContext(ctx).Where("id = ?", uid).First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMediaNotFound
	}
	if err != nil {
		return nil, fail("finding media asset", "Failed to retrieve media", err)
	}
	return &asset, nil
}

func (r *MediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MediaAsset{}).Error; err != nil {
		return fail("deleting media asset", "Failed to delete media", err)
	}
	return nil
}

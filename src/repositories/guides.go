package repositories

import (
	"context"
	"cycleparadise/src/apperror"
	"cycleparadise/src/models"
	"cycleparadise/src/models/scopes"
	"cycleparadise/src/types"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrGuideNotFound = apperror.NewNotFoundError("Guide not found", apperror.CodeNotFound)

type GuideRepository struct {
	db *gorm.DB
}

func NewGuideRepository(db *gorm.DB) *GuideRepository {
	return &GuideRepository{db: db}
}

func (r *GuideRepository) FindPublished(ctx context.Context, params types.GuideSearchParams) ([]models.CyclingGuide, error) {
	var guides []models.CyclingGuide
	err := r.db.WithContext(ctx).
		Scopes(scopes.PublishedGuides, scopes.GuideSearch(params)).
		Order("featured desc").
		Order("created_at desc").
		Find(&guides).Error
	if err != nil {
		return nil, fail("finding cycling guides", "Failed to retrieve cycling guides", err)
	}
	return guides, nil
}

func (r *GuideRepository) FindBySlug(ctx context.Context, slug string) (*models.CyclingGuide, error) {
	var guide models.CyclingGuide
	err := r.db.WithContext(ctx).
		Scopes(scopes.PublishedGuides).
		Where("slug = ?", slug).
		First(&guide).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGuideNotFound
	}
	if err != nil {
		return nil, fail("finding guide by slug", "Failed to retrieve cycling guide", err)
	}
	return &guide, nil
}

func (r *GuideRepository) FindAll(ctx context.Context) ([]models.CyclingGuide, error) {
	var guides []models.CyclingGuide
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&guides).Error; err != nil {
		return nil, fail("listing guides", "Failed to retrieve cycling guides", err)
	}
	return guides, nil
}

func (r *GuideRepository) FindByID(ctx context.Context, id string) (*models.CyclingGuide, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrGuideNotFound
	}
	var guide models.CyclingGuide
	err = r.db.WithContext(ctx).Where("id = ?", uid).First(&guide).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGuideNotFound
	}
	if err != nil {
		return nil, fail("finding guide by ID", "Failed to retrieve cycling guide", err)
	}
	return &guide, nil
}

func (r *GuideRepository) slugTaken(db *gorm.DB, slug string, except uuid.UUID) (bool, error) {
	var count int64
	q := db.Model(&models.CyclingGuide{}).Where("slug = ?", slug)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *GuideRepository) Create(ctx context.Context, guide *models.CyclingGuide) error {
	db := r.db.WithContext(ctx)
	taken, err := r.slugTaken(db, guide.Slug, uuid.Nil)
	if err != nil {
		return fail("checking guide slug", "Failed to create cycling guide", err)
	}
	if taken {
		return ErrDuplicateSlug
	}
	if err := db.Create(guide).Error; err != nil {
		return fail("creating guide", "Failed to create cycling guide", err)
	}
	return nil
}

func (r *GuideRepository) Update(ctx context.Context, guide *models.CyclingGuide) error {
	db := r.db.WithContext(ctx)
	taken, err := r.slugTaken(db, guide.Slug, guide.ID)
	if err != nil {
		return fail("checking guide slug", "Failed to update cycling guide", err)
	}
	if taken {
		return ErrDuplicateSlug
	}
	if err := db.Save(guide).Error; err != nil {
		return fail("updating guide", "Failed to update cycling guide", err)
	}
	return nil
}

func (r *GuideRepository) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrGuideNotFound
	}
	res := r.db.WithContext(ctx).Where("id = ?", uid).Delete(&models.CyclingGuide{})
	if res.Error != nil {
		return fail("deleting guide", "Failed to delete cycling guide", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrGuideNotFound
	}
	return nil
}

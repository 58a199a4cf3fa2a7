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

const (
	DefaultPackageLimit  = 12
	DefaultFeaturedLimit = 3
)

var (
	ErrPackageHasBookings = apperror.NewValidationError("Cannot delete a package that has bookings", "", apperror.CodePackageHasBookings)
	ErrDuplicateSlug      = apperror.NewValidationError("Slug is already in use", "slug", apperror.CodeDuplicate)
)

type PackageSearchResult struct {
	Packages []models.TourPackage `json:"packages"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	Limit    int                  `json:"limit"`
	HasMore  bool                 `json:"hasMore"`
}

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

// FindMany lists active packages, featured first.
func (r *PackageRepository) FindMany(ctx context.Context, params types.PackageSearchParams) (*PackageSearchResult, error) {
	page, limit := normalizePage(params.Page, params.Limit, DefaultPackageLimit)
	db := r.db.WithContext(ctx)
	search := func() *gorm.DB {
		return db.Model(&models.TourPackage{}).Scopes(scopes.ActivePackages, scopes.PackageSearch(params))
	}

	var packages []models.TourPackage
	err := search().
		Order("featured desc").
		Order("created_at desc").
		Scopes(scopes.Paginate(page, limit)).
		Find(&packages).Error
	if err != nil {
		return nil, fail("finding tour packages", "Failed to retrieve tour packages", err)
	}
	var total int64
	if err := search().Count(&total).Error; err != nil {
		return nil, fail("counting tour packages", "Failed to retrieve tour packages", err)
	}
	return &PackageSearchResult{
		Packages: packages,
		Total:    total,
		Page:     page,
		Limit:    limit,
		HasMore:  int64((page-1)*limit+len(packages)) < total,
	}, nil
}

func (r *PackageRepository) FindFeatured(ctx context.Context, limit int) ([]models.TourPackage, error) {
	if limit < 1 {
		limit = DefaultFeaturedLimit
	}
	var packages []models.TourPackage
	err := r.db.WithContext(ctx).
		Scopes(scopes.ActivePackages).
		Where("featured = ?", true).
		Order("created_at desc").
		Limit(limit).
		Find(&packages).Error
	if err != nil {
		return nil, fail("finding featured packages", "Failed to retrieve featured packages", err)
	}
	return packages, nil
}

// FindBySlug only returns active packages.
func (r *PackageRepository) FindBySlug(ctx context.Context, slug string) (*models.TourPackage, error) {
	if slug == "" {
		return nil, apperror.NewValidationError("Package slug is required", "slug", "")
	}
	var pkg models.TourPackage
	err := r.db.WithContext(ctx).
		Scopes(scopes.ActivePackages).
		Where("slug = ?", slug).
		First(&pkg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fail("finding package by slug", "Failed to retrieve package", err)
	}
	return &pkg, nil
}

// FindByID returns the package regardless of its active flag.
func (r *PackageRepository) FindByID(ctx context.Context, id string) (*models.TourPackage, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrPackageNotFound
	}
	var pkg models.TourPackage
	err = r.db.WithContext(ctx).Where("id = ?", uid).First(&pkg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fail("finding package by ID", "Failed to retrieve package", err)
	}
	return &pkg, nil
}

// FindAll lists every package for the admin table, newest first.
func (r *PackageRepository) FindAll(ctx context.Context) ([]models.TourPackage, error) {
	var packages []models.TourPackage
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&packages).Error; err != nil {
		return nil, fail("listing packages", "Failed to retrieve packages", err)
	}
	return packages, nil
}

func (r *PackageRepository) slugTaken(db *gorm.DB, slug string, except uuid.UUID) (bool, error) {
	var count int64
	q := db.Model(&models.TourPackage{}).Where("slug = ?", slug)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *PackageRepository) Create(ctx context.Context, pkg *models.TourPackage) error {
	db := r.db.WithContext(ctx)
	taken, err := r.slugTaken(db, pkg.Slug, uuid.Nil)
	if err != nil {
		return fail("checking package slug", "Failed to create package", err)
	}
	if taken {
		return ErrDuplicateSlug
	}
	if err := db.Create(pkg).Error; err != nil {
		return fail("creating package", "Failed to create package", err)
	}
	return nil
}

func (r *PackageRepository) Update(ctx context.Context, pkg *models.TourPackage) error {
	db := r.db.WithContext(ctx)
	taken, err := r.slugTaken(db, pkg.Slug, pkg.ID)
	if err != nil {
		return fail("checking package slug", "Failed to update package", err)
	}
	if taken {
		return ErrDuplicateSlug
	}
	if err := db.Save(pkg).Error; err != nil {
		return fail("updating package", "Failed to update package", err)
	}
	return nil
}

// Delete refuses to remove a package that bookings still reference.
func (r *PackageRepository) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrPackageNotFound
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bookings int64
		if err := tx.Model(&models.Booking{}).Where("package_id = ?", uid).Count(&bookings).Error; err != nil {
			return err
		}
		if bookings > 0 {
			return ErrPackageHasBookings
		}
		res := tx.Where("id = ?", uid).Delete(&models.TourPackage{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPackageNotFound
		}
		return nil
	})
	if err != nil {
		return fail("deleting package", "Failed to delete package", err)
	}
	return nil
}

package repositories

import (
	"context"
	"errors"
	"testing"

	"cycleparadise/src/apperror"
	"cycleparadise/src/db/dbtest"
	"cycleparadise/src/models"
	"cycleparadise/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PackageRepositorySuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	repo *PackageRepository
}

func (s *PackageRepositorySuite) SetupTest() {
	gormDB, mock := dbtest.NewMockDB(s.T())
	s.mock = mock
	s.repo = NewPackageRepository(gormDB)
}

func (s *PackageRepositorySuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func TestPackageRepositorySuite(t *testing.T) {
	suite.Run(t, new(PackageRepositorySuite))
}

func (s *PackageRepositorySuite) TestFindManyActiveFeaturedFirst() {
	featured, regular := uuid.New(), uuid.New()

	s.mock.ExpectQuery(`SELECT \* FROM "tour_packages" WHERE is_active = \$1 ORDER BY featured desc,created_at desc LIMIT \$2`).
		WithArgs(true, DefaultPackageLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "slug", "featured", "is_active"}).
			AddRow(featured.String(), "Knuckles Range Traverse", "knuckles-range-traverse", true, true).
			AddRow(regular.String(), "Galle Coastal Spin", "galle-coastal-spin", false, true))
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "tour_packages" WHERE is_active = \$1`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	result, err := s.repo.FindMany(context.Background(), types.PackageSearchParams{})

	require.NoError(s.T(), err)
	require.Len(s.T(), result.Packages, 2)
	assert.True(s.T(), result.Packages[0].Featured)
	assert.Equal(s.T(), "knuckles-range-traverse", result.Packages[0].Slug)
	assert.Equal(s.T(), int64(2), result.Total)
	assert.Equal(s.T(), DefaultPackageLimit, result.Limit)
	assert.False(s.T(), result.HasMore)
}

func (s *PackageRepositorySuite) TestFindManyWithRegion() {
	s.mock.ExpectQuery(`SELECT \* FROM "tour_packages" WHERE is_active = \$1 AND region ILIKE \$2 ORDER BY featured desc,created_at desc LIMIT \$3 OFFSET \$4`).
		WithArgs(true, "%uva%", 6, 6).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "tour_packages" WHERE is_active = \$1 AND region ILIKE \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	result, err := s.repo.FindMany(context.Background(), types.PackageSearchParams{Region: "uva", Page: 2, Limit: 6})

	require.NoError(s.T(), err)
	assert.Empty(s.T(), result.Packages)
	assert.False(s.T(), result.HasMore)
}

func (s *PackageRepositorySuite) TestFindBySlugSkipsInactive() {
	s.mock.ExpectQuery(`SELECT \* FROM "tour_packages" WHERE slug = \$1 AND is_active = \$2 ORDER BY "tour_packages"."id" LIMIT \$3`).
		WithArgs("retired-loop", true, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.repo.FindBySlug(context.Background(), "retired-loop")

	assert.ErrorIs(s.T(), err, ErrPackageNotFound)
}

func (s *PackageRepositorySuite) TestCreateDuplicateSlug() {
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "tour_packages" WHERE slug = \$1`).
		WithArgs("hill-country-loop").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := s.repo.Create(context.Background(), &models.TourPackage{Title: "Hill Country Loop", Slug: "hill-country-loop"})

	assert.ErrorIs(s.T(), err, ErrDuplicateSlug)
	assert.Equal(s.T(), 400, apperror.Status(err))
}

func (s *PackageRepositorySuite) TestUpdateSlugTakenByAnotherPackage() {
	id := uuid.New()

	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "tour_packages" WHERE slug = \$1 AND id <> \$2`).
		WithArgs("hill-country-loop", id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	pkg := &models.TourPackage{Title: "Hill Country Loop", Slug: "hill-country-loop"}
	pkg.ID = id
	err := s.repo.Update(context.Background(), pkg)

	assert.ErrorIs(s.T(), err, ErrDuplicateSlug)
}

func (s *PackageRepositorySuite) TestDeleteRefusesPackageWithBookings() {
	id := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE package_id = \$1`).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	s.mock.ExpectRollback()

	err := s.repo.Delete(context.Background(), id.String())

	require.ErrorIs(s.T(), err, ErrPackageHasBookings)
	var ve *apperror.ValidationError
	require.True(s.T(), errors.As(err, &ve))
	assert.Equal(s.T(), apperror.CodePackageHasBookings, ve.Code)
	assert.Equal(s.T(), 400, apperror.Status(err))
}

func (s *PackageRepositorySuite) TestDelete() {
	id := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE package_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	s.mock.ExpectExec(`DELETE FROM "tour_packages" WHERE id = \$1`).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	assert.NoError(s.T(), s.repo.Delete(context.Background(), id.String()))
}

func (s *PackageRepositorySuite) TestDeleteMissing() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE package_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	s.mock.ExpectExec(`DELETE FROM "tour_packages"`).WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectRollback()

	err := s.repo.Delete(context.Background(), uuid.NewString())

	assert.ErrorIs(s.T(), err, ErrPackageNotFound)
}

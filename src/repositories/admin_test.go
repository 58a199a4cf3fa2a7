package repositories

import (
	"context"
	"net/http"
	"testing"
	"time"

	"cycleparadise/src/apperror"
	"cycleparadise/src/db/dbtest"
	"cycleparadise/src/models"
	"cycleparadise/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	gormDB, mock := dbtest.NewMockDB(t)
	repo := NewUserRepository(gormDB)
	email := faker.Email()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "admin_users" WHERE LOWER\(email\) = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := repo.Create(context.Background(), &models.AdminUser{Email: email})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.Status(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreate(t *testing.T) {
	gormDB, mock := dbtest.NewMockDB(t)
	repo := NewUserRepository(gormDB)
	user := &models.AdminUser{
		Email:        "editor@cycleparadise.com",
		PasswordHash: "hash",
		FirstName:    "Ed",
		LastName:     "Itor",
		Role:         types.ROLE_EDITOR,
		IsActive:     true,
	}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "admin_users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "admin_users"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDeleteMissing(t *testing.T) {
	gormDB, mock := dbtest.NewMockDB(t)
	repo := NewUserRepository(gormDB)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "sessions" WHERE user_id = \$1`).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "admin_users" WHERE id = \$1`).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), id)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActiveByEmailNotFound(t *testing.T) {
	gormDB, mock := dbtest.NewMockDB(t)
	repo := NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "admin_users" WHERE LOWER\(email\) = \$1 AND is_active = \$2`).
		WithArgs("admin@cycleparadise.com", true, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindActiveByEmail(context.Background(), " Admin@CycleParadise.com ")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionCleanupExpired(t *testing.T) {
	gormDB, mock := dbtest.NewMockDB(t)
	repo := NewSessionRepository(gormDB)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "sessions" WHERE expires_at < \$1`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := repo.CleanupExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionFindMissing(t *testing.T) {
	gormDB, mock := dbtest.NewMockDB(t)
	repo := NewSessionRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "sessions" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Find(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionIDsForUser(t *testing.T) {
	gormDB, mock := dbtest.NewMockDB(t)
	repo := NewSessionRepository(gormDB)
	userID := uuid.New()
	first, second := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT "id" FROM "sessions" WHERE user_id = \$1`).
		WithArgs(userID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(first.String()).AddRow(second.String()))

	ids, err := repo.IDsForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first, second}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaFindMany(t *testing.T) {
	gormDB, mock := dbtest.NewMockDB(t)
	repo := NewMediaRepository(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "media_assets" WHERE filename ILIKE \$1 OR alt_text ILIKE \$2 OR caption ILIKE \$3`).
		WithArgs("%rice%", "%rice%", "%rice%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))
	mock.ExpectQuery(`SELECT \* FROM "media_assets" WHERE .* ORDER BY created_at desc LIMIT \$4 OFFSET \$5`).
		WithArgs("%rice%", "%rice%", "%rice%", 20, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "filename"}).AddRow(uuid.New().String(), "rice-terraces.jpg"))

	assets, total, err := repo.FindMany(context.Background(), "rice", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(21), total)
	require.Len(t, assets, 1)
	assert.Equal(t, "rice-terraces.jpg", assets[0].Filename)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaFindByIDMalformed(t *testing.T) {
	gormDB, mock := dbtest.NewMockDB(t)
	repo := NewMediaRepository(gormDB)

	_, err := repo.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrMediaNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardStats(t *testing.T) {
	gormDB, mock := dbtest.NewMockDB(t)
	repo := NewDashboardRepository(gormDB)
	packageID := uuid.New()
	start := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE status = \$1`).
		WithArgs("PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "tour_packages" WHERE is_active = \$1`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) FROM "bookings" WHERE payment_status = \$1`).
		WithArgs("PAID").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1250.5))
	mock.ExpectQuery(`SELECT \* FROM "bookings" ORDER BY created_at desc LIMIT \$1`).
		WithArgs(RecentBookingsLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "package_id", "customer_name", "customer_email", "start_date", "total_amount", "status"}).
			AddRow(uuid.New().String(), packageID.String(), "Madonna", "m@example.com", start, 300.0, "CONFIRMED"))
	mock.ExpectQuery(`SELECT "id","title" FROM "tour_packages" WHERE "tour_packages"."id" = \$1`).
		WithArgs(packageID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(packageID.String(), "Banaue Rice Terraces"))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalBookings)
	assert.Equal(t, int64(4), stats.PendingBookings)
	assert.Equal(t, int64(6), stats.ActivePackages)
	assert.Equal(t, 1250.5, stats.TotalRevenue)
	require.Len(t, stats.RecentBookings, 1)

	recent := stats.RecentBookings[0]
	assert.Equal(t, "Madonna", recent.CustomerFirstName)
	assert.Equal(t, "Madonna", recent.CustomerLastName)
	assert.Equal(t, "Banaue Rice Terraces", recent.PackageName)
	assert.Equal(t, types.BOOKING_CONFIRMED, recent.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

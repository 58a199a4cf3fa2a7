package repositories

import (
	"context"
	"cycleparadise/src/apperror"
	"cycleparadise/src/models"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = apperror.NewNotFoundError("User not found", apperror.CodeNotFound)
	ErrDuplicateUser = &apperror.ValidationError{
		Message: "User with this email already exists",
		Field:   "email",
		Code:    apperror.CodeDuplicate,
		Status:  http.StatusConflict,
	}
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]models.AdminUser, error) {
	var users []models.AdminUser
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, fail("listing admin users", "Failed to retrieve users", err)
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fail("finding admin user", "Failed to retrieve user", err)
	}
	return &user, nil
}

// FindActiveByEmail is the login lookup. Emails compare case-insensitively.
func (r *UserRepository) FindActiveByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Where("is_active = ?", true).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fail("finding admin user by email", "Failed to retrieve user", err)
	}
	return &user, nil
}

func (r *UserRepository) emailTaken(db *gorm.DB, email string, except uuid.UUID) (bool, error) {
	var count int64
	q := db.Model(&models.AdminUser{}).Where("LOWER(email) = ?", strings.ToLower(email))
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Create(ctx context.Context, user *models.AdminUser) error {
	db := r.db.WithContext(ctx)
	taken, err := r.emailTaken(db, user.Email, uuid.Nil)
	if err != nil {
		return fail("checking admin email", "Failed to create user", err)
	}
	if taken {
		return ErrDuplicateUser
	}
	if err := db.Create(user).Error; err != nil {
		return fail("creating admin user", "Failed to create user", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.AdminUser) error {
	db := r.db.WithContext(ctx)
	taken, err := r.emailTaken(db, user.Email, user.ID)
	if err != nil {
		return fail("checking admin email", "Failed to update user", err)
	}
	if taken {
		return ErrDuplicateUser
	}
	if err := db.Save(user).Error; err != nil {
		return fail("updating admin user", "Failed to update user", err)
	}
	return nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.AdminUser{}).Where("id = ?", id).Update("last_login_at", at).Error
	if err != nil {
		return fail("updating last login", "Failed to update user", err)
	}
	return nil
}

// Delete also drops the user's sessions.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.AdminUser{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return fail("deleting admin user", "Failed to delete user", err)
	}
	return nil
}

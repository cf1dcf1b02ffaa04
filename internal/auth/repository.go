package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swasthikkulal/parking-backend/internal/shared/errs"
)

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Admin, error)
	Create(ctx context.Context, admin *Admin) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	var admin Admin
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("admin not found")
		}
		return nil, err
	}
	return &admin, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Admin, error) {
	var admin Admin
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("admin not found")
		}
		return nil, err
	}
	return &admin, nil
}

func (r *repository) Create(ctx context.Context, admin *Admin) error {
	admin.Email = strings.ToLower(admin.Email)
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *repository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	return r.db.WithContext(ctx).Model(&Admin{}).
		Where("id = ?", id).
		Update("password", hashedPassword).Error
}

func (r *repository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&Admin{}).
		Where("id = ?", id).
		Update("last_login_at", time.Now()).Error
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Admin{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

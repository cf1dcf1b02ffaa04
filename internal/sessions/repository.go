package sessions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swasthikkulal/parking-backend/internal/shared/errs"
	"github.com/swasthikkulal/parking-backend/internal/slots"
)

type Repository interface {
	FindByToken(ctx context.Context, token string) (*Session, error)
	FindActiveByToken(ctx context.Context, token string) (*Session, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Session, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Session, error)

	// ExtendActive adds time and charge to a session in one write guarded on
	// status, so an extension can never land on a settled bill.
	ExtendActive(ctx context.Context, id uuid.UUID, additionalMinutes int, extraCharge float64) (*Session, error)
	List(ctx context.Context, query SessionListQuery) ([]Session, int64, error)
	ListByVehicle(ctx context.Context, vehicleNumber string) ([]Session, error)
	DeleteTerminalOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// CreateWithSlotClaim creates the session and flips its slot to occupied
	// in one transaction. The slot claim is a conditional write: if another
	// session took the slot first the whole transaction rolls back with
	// Unavailable.
	CreateWithSlotClaim(ctx context.Context, session *Session) error

	// CompleteAndRelease moves an active session to a terminal state, frees
	// its slot, and (for completions) appends the occupancy record. Both
	// writes are conditional so a concurrent terminal transition loses with
	// Conflict and changes nothing.
	CompleteAndRelease(ctx context.Context, sessionID uuid.UUID, updates map[string]interface{}, record *slots.OccupancyRecord) error

	// CancelAndRelease is CompleteAndRelease without an occupancy record.
	CancelAndRelease(ctx context.Context, sessionID uuid.UUID, updates map[string]interface{}) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByToken(ctx context.Context, token string) (*Session, error) {
	var session Session
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("session not found")
		}
		return nil, err
	}
	return &session, nil
}

func (r *repository) FindActiveByToken(ctx context.Context, token string) (*Session, error) {
	var session Session
	err := r.db.WithContext(ctx).
		Where("token = ? AND status = ?", token, StatusActive).
		First(&session).Error
	if err != nil {
		// An unknown token and a terminal session look the same to callers.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("active session not found")
		}
		return nil, err
	}
	return &session, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	var session Session
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("session not found")
		}
		return nil, err
	}
	return &session, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Session, error) {
	var session Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("session not found")
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&session).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *repository) ExtendActive(ctx context.Context, id uuid.UUID, additionalMinutes int, extraCharge float64) (*Session, error) {
	result := r.db.WithContext(ctx).Model(&Session{}).
		Where("id = ? AND status = ?", id, StatusActive).
		Updates(map[string]interface{}{
			"allotted_minutes": gorm.Expr("allotted_minutes + ?", additionalMinutes),
			"total_amount":     gorm.Expr("total_amount + ?", extraCharge),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.Conflict("session is no longer active")
	}
	return r.FindByID(ctx, id)
}

func (r *repository) List(ctx context.Context, query SessionListQuery) ([]Session, int64, error) {
	var results []Session
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Session{})

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.Vehicle != "" {
		db = db.Where("vehicle_number = ?", strings.ToUpper(query.Vehicle))
	}
	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(token) LIKE ? OR LOWER(holder_name) LIKE ? OR LOWER(vehicle_number) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 20
	}
	offset := (query.Page - 1) * query.Limit

	err := db.Order("entry_time DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&results).Error

	return results, totalCount, err
}

func (r *repository) ListByVehicle(ctx context.Context, vehicleNumber string) ([]Session, error) {
	var results []Session
	err := r.db.WithContext(ctx).
		Where("vehicle_number = ?", strings.ToUpper(vehicleNumber)).
		Order("entry_time DESC").
		Find(&results).Error
	return results, err
}

func (r *repository) DeleteTerminalOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status IN ? AND updated_at < ?", []Status{StatusCompleted, StatusCancelled}, cutoff).
		Delete(&Session{})
	return result.RowsAffected, result.Error
}

func (r *repository) CreateWithSlotClaim(ctx context.Context, session *Session) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if session.ID == uuid.Nil {
			session.ID = uuid.New()
		}

		// The occupancy flip is the point of mutual exclusion: of any number
		// of concurrent bookings on one slot, exactly one claim matches.
		if err := slots.Claim(tx, session.SlotID, session.ID, session.EntryTime); err != nil {
			return err
		}

		if err := tx.Create(session).Error; err != nil {
			if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate") {
				return errs.Wrap(errs.KindInternal, "session token collision", err)
			}
			return err
		}
		return nil
	})
}

func (r *repository) CompleteAndRelease(ctx context.Context, sessionID uuid.UUID, updates map[string]interface{}, record *slots.OccupancyRecord) error {
	return r.terminateAndRelease(ctx, sessionID, updates, record)
}

func (r *repository) CancelAndRelease(ctx context.Context, sessionID uuid.UUID, updates map[string]interface{}) error {
	return r.terminateAndRelease(ctx, sessionID, updates, nil)
}

func (r *repository) terminateAndRelease(ctx context.Context, sessionID uuid.UUID, updates map[string]interface{}, record *slots.OccupancyRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session Session
		if err := tx.Where("id = ?", sessionID).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("session not found")
			}
			return err
		}

		// status guard doubles as the idempotence check: the second terminal
		// transition matches zero rows and the transaction rolls back.
		result := tx.Model(&Session{}).
			Where("id = ? AND status = ?", sessionID, StatusActive).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.Conflict("session already %s", session.Status)
		}

		return slots.Release(tx, session.SlotID, sessionID, record)
	})
}

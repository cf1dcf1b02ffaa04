package slots

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
	Create(ctx context.Context, slot *Slot) error
	CreateBatch(ctx context.Context, batch []Slot) error
	GetByID(ctx context.Context, id uuid.UUID) (*Slot, error)
	GetByNumber(ctx context.Context, slotNumber string) (*Slot, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Slot, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
	List(ctx context.Context, query SlotListQuery) ([]Slot, int64, error)
	FindEligible(ctx context.Context, vehicle VehicleClass, emergency bool) ([]Slot, error)

	// MarkOccupied claims a free, active, unreserved slot for a session.
	// It fails with Unavailable if another session holds the slot.
	MarkOccupied(ctx context.Context, slotID, sessionID uuid.UUID) error

	// MarkFree releases a slot held by the given session and records the
	// occupancy. It fails with Conflict if the session no longer holds it.
	MarkFree(ctx context.Context, slotID, sessionID uuid.UUID, record *OccupancyRecord) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, slot *Slot) error {
	err := r.db.WithContext(ctx).Create(slot).Error
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate") {
			return errs.Conflict("slot number %s already exists", slot.SlotNumber)
		}
		return err
	}
	return nil
}

func (r *repository) CreateBatch(ctx context.Context, batch []Slot) error {
	if len(batch) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(batch, 100).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Slot, error) {
	var slot Slot
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("slot not found")
		}
		return nil, err
	}
	return &slot, nil
}

func (r *repository) GetByNumber(ctx context.Context, slotNumber string) (*Slot, error) {
	var slot Slot
	err := r.db.WithContext(ctx).Where("slot_number = ?", slotNumber).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("slot %s not found", slotNumber)
		}
		return nil, err
	}
	return &slot, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Slot, error) {
	var slot Slot
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("slot not found")
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&slot).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	slot, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if slot.IsOccupied || slot.CurrentSessionID != nil {
		return errs.Conflict("slot %s has an active session", slot.SlotNumber)
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Slot{}).Error
}

func (r *repository) DeleteAll(ctx context.Context) (int64, error) {
	var occupied int64
	if err := r.db.WithContext(ctx).Model(&Slot{}).
		Where("is_occupied = ?", true).Count(&occupied).Error; err != nil {
		return 0, err
	}
	if occupied > 0 {
		return 0, errs.Conflict("%d slots still have active sessions", occupied)
	}

	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&Slot{})
	return result.RowsAffected, result.Error
}

func (r *repository) List(ctx context.Context, query SlotListQuery) ([]Slot, int64, error) {
	var results []Slot
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Slot{})

	if query.Floor > 0 {
		db = db.Where("floor = ?", query.Floor)
	}
	if query.Section != "" {
		db = db.Where("section = ?", strings.ToUpper(query.Section))
	}
	if query.Class != "" {
		db = db.Where("class = ?", query.Class)
	}
	if query.Gate != "" {
		db = db.Where("entry_gate = ?", query.Gate)
	}
	if query.Available != nil {
		if *query.Available {
			db = db.Where("is_occupied = ? AND is_active = ? AND is_reserved = ? AND sensor = ?",
				false, true, false, SensorOnline)
		} else {
			db = db.Where("is_occupied = ?", true)
		}
	}
	if query.Active != nil {
		db = db.Where("is_active = ?", *query.Active)
	}
	if query.Search != "" {
		db = db.Where("LOWER(slot_number) LIKE ?", "%"+strings.ToLower(query.Search)+"%")
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 50
	}
	offset := (query.Page - 1) * query.Limit

	err := db.Order("floor ASC, section ASC, row ASC, col ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&results).Error

	return results, totalCount, err
}

func (r *repository) FindEligible(ctx context.Context, vehicle VehicleClass, emergency bool) ([]Slot, error) {
	var results []Slot

	db := r.db.WithContext(ctx).
		Where("is_active = ? AND is_occupied = ? AND is_reserved = ? AND sensor = ?",
			true, false, false, SensorOnline)

	if emergency {
		// Emergency vehicles get emergency slots first, then anything free.
		db = db.Order("CASE WHEN class = 'Emergency' THEN 0 ELSE 1 END, priority DESC, slot_number ASC")
	} else {
		db = db.Where("class <> ?", ClassEmergency).
			Order("priority DESC, floor ASC, slot_number ASC")
	}

	if err := db.Find(&results).Error; err != nil {
		return nil, err
	}

	if emergency {
		return results, nil
	}

	// Vehicle class filtering happens in memory since the classes are stored
	// as a JSON document.
	eligible := make([]Slot, 0, len(results))
	for i := range results {
		if results[i].Supports(vehicle) {
			eligible = append(eligible, results[i])
		}
	}
	return eligible, nil
}

// Claim flips a free, active, unreserved slot to occupied for sessionID on
// the caller's handle. The conditional write is the point of mutual
// exclusion: of any number of concurrent claims exactly one matches.
func Claim(tx *gorm.DB, slotID, sessionID uuid.UUID, at time.Time) error {
	result := tx.Model(&Slot{}).
		Where("id = ? AND is_occupied = ? AND is_active = ? AND is_reserved = ? AND sensor = ?",
			slotID, false, true, false, SensorOnline).
		Updates(map[string]interface{}{
			"is_occupied":        true,
			"current_session_id": sessionID,
			"last_occupied":      at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.Unavailable("slot is not available for booking")
	}
	return nil
}

// Release frees a slot held by sessionID on the caller's handle. A non-nil
// record appends the completed stay and bumps the occupancy counter.
func Release(tx *gorm.DB, slotID, sessionID uuid.UUID, record *OccupancyRecord) error {
	result := tx.Model(&Slot{}).
		Where("id = ? AND current_session_id = ?", slotID, sessionID).
		Updates(map[string]interface{}{
			"is_occupied":        false,
			"current_session_id": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.Conflict("slot is not held by this session")
	}

	if record != nil {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		if err := tx.Model(&Slot{}).Where("id = ?", slotID).
			UpdateColumn("total_occupancies", gorm.Expr("total_occupancies + 1")).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) MarkOccupied(ctx context.Context, slotID, sessionID uuid.UUID) error {
	return Claim(r.db.WithContext(ctx), slotID, sessionID, time.Now())
}

func (r *repository) MarkFree(ctx context.Context, slotID, sessionID uuid.UUID, record *OccupancyRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return Release(tx, slotID, sessionID, record)
	})
}

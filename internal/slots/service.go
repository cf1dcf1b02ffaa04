package slots

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/swasthikkulal/parking-backend/internal/shared/errs"
	"github.com/swasthikkulal/parking-backend/pkg/cache"
	"github.com/swasthikkulal/parking-backend/pkg/logger"
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreateSlot(ctx context.Context, req CreateSlotRequest) (*SlotResponse, error)
	GetSlotByID(ctx context.Context, id uuid.UUID) (*SlotResponse, error)
	GetSlotByNumber(ctx context.Context, slotNumber string) (*SlotResponse, error)
	UpdateSlot(ctx context.Context, id uuid.UUID, req UpdateSlotRequest) (*SlotResponse, error)
	BulkUpdateSlots(ctx context.Context, req BulkUpdateRequest) (int, error)
	ToggleSlotActive(ctx context.Context, id uuid.UUID) (*SlotResponse, error)
	DeleteSlot(ctx context.Context, id uuid.UUID) error
	DeleteAllSlots(ctx context.Context) (int64, error)
	ListSlots(ctx context.Context, query SlotListQuery) (*PaginatedSlots, error)
	GenerateSlots(ctx context.Context, req GenerateSlotsRequest) (*GenerateSlotsResult, error)

	SetEmergencyMode(ctx context.Context, id uuid.UUID, priority int) (*SlotResponse, error)
	ClearEmergencyMode(ctx context.Context, id uuid.UUID) (*SlotResponse, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) Service {
	return &service{repo: repo, log: log}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) invalidateAvailability(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, cache.PatternAvailabilityAll); err != nil {
		s.log.WithError(err).Warn("failed to invalidate availability cache")
	}
	if err := s.cacheService.DeletePattern(ctx, cache.PatternAnalyticsAll); err != nil {
		s.log.WithError(err).Warn("failed to invalidate analytics cache")
	}
}

func (s *service) CreateSlot(ctx context.Context, req CreateSlotRequest) (*SlotResponse, error) {
	if req.Class != "" && !req.Class.IsValid() {
		return nil, errs.InvalidArgument("invalid slot class: %s", req.Class)
	}
	if req.Size != "" && !req.Size.IsValid() {
		return nil, errs.InvalidArgument("invalid slot size: %s", req.Size)
	}
	if req.EntryGate != "" && !req.EntryGate.IsValid() {
		return nil, errs.InvalidArgument("invalid entry gate: %s", req.EntryGate)
	}
	if req.ExitGate != "" && !req.ExitGate.IsValid() {
		return nil, errs.InvalidArgument("invalid exit gate: %s", req.ExitGate)
	}
	for _, vc := range req.VehicleClasses {
		if !vc.IsValid() {
			return nil, errs.InvalidArgument("invalid vehicle class: %s", vc)
		}
	}

	slot := Slot{
		SlotNumber:     strings.ToUpper(strings.TrimSpace(req.SlotNumber)),
		Floor:          req.Floor,
		Section:        strings.ToUpper(strings.TrimSpace(req.Section)),
		Row:            req.Row,
		Column:         req.Column,
		Class:          req.Class,
		Size:           req.Size,
		VehicleClasses: req.VehicleClasses,
		Amenities:      req.Amenities,
		IsActive:       true,
		Sensor:         SensorOnline,
		EntryGate:      req.EntryGate,
		ExitGate:       req.ExitGate,
		Priority:       req.Priority,
		Pricing: Pricing{
			BaseRate:          req.BaseRate,
			PeakHourRate:      req.PeakHourRate,
			WeekendMultiplier: 1,
			HolidayMultiplier: 1,
		},
	}
	if slot.Floor == 0 {
		slot.Floor = 1
	}
	if slot.Row == 0 {
		slot.Row = 1
	}
	if slot.Column == 0 {
		slot.Column = 1
	}
	if slot.Class == "" {
		slot.Class = ClassNormal
	}
	if slot.Size == "" {
		slot.Size = sizeFor(slot.Class)
	}
	if slot.EntryGate == "" {
		slot.EntryGate = Gate1
	}
	if slot.ExitGate == "" {
		slot.ExitGate = slot.EntryGate
	}
	if slot.Priority == 0 {
		slot.Priority = priorityFor(slot.Class)
	}
	if len(slot.VehicleClasses) == 0 {
		slot.VehicleClasses = vehicleClassesFor(slot.Class)
	}

	if slot.Class == ClassEmergency {
		// Emergency slots are free and served from the dedicated gate.
		slot.Pricing = Pricing{WeekendMultiplier: 1, HolidayMultiplier: 1}
		slot.EntryGate = GateEmergency
		slot.ExitGate = GateEmergency
		slot.EmergencyMode = true
		slot.EmergencyPriority = 3
	}
	if req.HasCharger {
		slot.Charging = ChargingStation{
			HasCharger:   true,
			ChargerType:  req.ChargerType,
			PowerOutput:  req.PowerOutput,
			ChargerState: ChargingIdle,
		}
	}

	if err := s.repo.Create(ctx, &slot); err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx)
	resp := slot.ToResponse()
	return &resp, nil
}

func (s *service) GetSlotByID(ctx context.Context, id uuid.UUID) (*SlotResponse, error) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := slot.ToResponse()
	return &resp, nil
}

func (s *service) GetSlotByNumber(ctx context.Context, slotNumber string) (*SlotResponse, error) {
	slot, err := s.repo.GetByNumber(ctx, strings.ToUpper(strings.TrimSpace(slotNumber)))
	if err != nil {
		return nil, err
	}
	resp := slot.ToResponse()
	return &resp, nil
}

func buildUpdates(req UpdateSlotRequest) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if req.Section != nil {
		updates["section"] = strings.ToUpper(strings.TrimSpace(*req.Section))
	}
	if req.Class != nil {
		if !req.Class.IsValid() {
			return nil, errs.InvalidArgument("invalid slot class: %s", *req.Class)
		}
		updates["class"] = *req.Class
	}
	if req.Size != nil {
		if !req.Size.IsValid() {
			return nil, errs.InvalidArgument("invalid slot size: %s", *req.Size)
		}
		updates["size"] = *req.Size
	}
	if req.VehicleClasses != nil {
		for _, vc := range req.VehicleClasses {
			if !vc.IsValid() {
				return nil, errs.InvalidArgument("invalid vehicle class: %s", vc)
			}
		}
		updates["vehicle_classes"] = req.VehicleClasses
	}
	if req.Amenities != nil {
		updates["amenities"] = req.Amenities
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsReserved != nil {
		updates["is_reserved"] = *req.IsReserved
	}
	if req.Sensor != nil {
		if !req.Sensor.IsValid() {
			return nil, errs.InvalidArgument("invalid sensor status: %s", *req.Sensor)
		}
		updates["sensor"] = *req.Sensor
	}
	if req.ReservedFor != nil {
		if *req.ReservedFor == "" {
			updates["reserved_for"] = nil
		} else {
			holder, err := uuid.Parse(*req.ReservedFor)
			if err != nil {
				return nil, errs.InvalidArgument("invalid reservation holder id")
			}
			updates["reserved_for"] = holder
		}
	}
	if req.EntryGate != nil {
		if !req.EntryGate.IsValid() {
			return nil, errs.InvalidArgument("invalid entry gate: %s", *req.EntryGate)
		}
		updates["entry_gate"] = *req.EntryGate
	}
	if req.ExitGate != nil {
		if !req.ExitGate.IsValid() {
			return nil, errs.InvalidArgument("invalid exit gate: %s", *req.ExitGate)
		}
		updates["exit_gate"] = *req.ExitGate
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.BaseRate != nil {
		updates["base_rate"] = *req.BaseRate
	}
	if req.PeakHourRate != nil {
		updates["peak_hour_rate"] = *req.PeakHourRate
	}
	return updates, nil
}

func (s *service) UpdateSlot(ctx context.Context, id uuid.UUID, req UpdateSlotRequest) (*SlotResponse, error) {
	updates, err := buildUpdates(req)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, errs.InvalidArgument("no fields to update")
	}

	slot, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx)
	resp := slot.ToResponse()
	return &resp, nil
}

func (s *service) BulkUpdateSlots(ctx context.Context, req BulkUpdateRequest) (int, error) {
	updates, err := buildUpdates(req.Update)
	if err != nil {
		return 0, err
	}
	if len(updates) == 0 {
		return 0, errs.InvalidArgument("no fields to update")
	}

	updated := 0
	for _, rawID := range req.SlotIDs {
		id, err := uuid.Parse(rawID)
		if err != nil {
			return updated, errs.InvalidArgument("invalid slot id: %s", rawID)
		}
		if _, err := s.repo.Update(ctx, id, updates); err != nil {
			return updated, err
		}
		updated++
	}

	s.invalidateAvailability(ctx)
	return updated, nil
}

func (s *service) ToggleSlotActive(ctx context.Context, id uuid.UUID) (*SlotResponse, error) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slot.IsOccupied && slot.IsActive {
		return nil, errs.Conflict("slot %s has an active session", slot.SlotNumber)
	}

	updated, err := s.repo.Update(ctx, id, map[string]interface{}{"is_active": !slot.IsActive})
	if err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx)
	resp := updated.ToResponse()
	return &resp, nil
}

func (s *service) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateAvailability(ctx)
	return nil
}

func (s *service) DeleteAllSlots(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.invalidateAvailability(ctx)
	s.log.WithFields(map[string]interface{}{"deleted": deleted}).Info("all slots deleted")
	return deleted, nil
}

func (s *service) ListSlots(ctx context.Context, query SlotListQuery) (*PaginatedSlots, error) {
	results, totalCount, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 50
	}

	responses := make([]SlotResponse, len(results))
	for i := range results {
		responses[i] = results[i].ToResponse()
	}

	return &PaginatedSlots{
		Slots:      responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}, nil
}

func (s *service) GenerateSlots(ctx context.Context, req GenerateSlotsRequest) (*GenerateSlotsResult, error) {
	layout, err := BuildLayout(req)
	if err != nil {
		return nil, errs.InvalidArgument("%s", err.Error())
	}

	// Slots that already exist keep their state; only new positions are created.
	fresh := make([]Slot, 0, len(layout))
	skipped := 0
	for i := range layout {
		if _, err := s.repo.GetByNumber(ctx, layout[i].SlotNumber); err == nil {
			skipped++
			continue
		} else if !errs.IsNotFound(err) {
			return nil, err
		}
		fresh = append(fresh, layout[i])
	}

	if len(fresh) == 0 {
		return nil, errs.Conflict("all slots in this layout already exist")
	}

	if err := s.repo.CreateBatch(ctx, fresh); err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx)

	result := &GenerateSlotsResult{
		Sections:   len(parseSections(req.Sections)),
		TotalSlots: len(fresh),
		ByClass:    make(map[string]int),
		Skipped:    skipped,
	}
	for i := range fresh {
		result.ByClass[fresh[i].Class.String()]++
	}

	s.log.WithFields(map[string]interface{}{
		"created": len(fresh),
		"skipped": skipped,
	}).Info("slot layout generated")

	return result, nil
}

// SetEmergencyMode commandeers a slot: the flag and priority flip on, any
// reservation is dropped and the sensor is forced online. The slot keeps its
// class, gates, and rates so clearing the mode restores nothing by hand.
func (s *service) SetEmergencyMode(ctx context.Context, id uuid.UUID, priority int) (*SlotResponse, error) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slot.IsOccupied {
		return nil, errs.Conflict("slot %s has an active session", slot.SlotNumber)
	}

	if priority < 0 {
		priority = 0
	}
	if priority > 3 {
		priority = 3
	}

	updated, err := s.repo.Update(ctx, id, map[string]interface{}{
		"emergency_mode":     true,
		"emergency_priority": priority,
		"is_reserved":        false,
		"reserved_for":       nil,
		"sensor":             SensorOnline,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx)
	resp := updated.ToResponse()
	return &resp, nil
}

func (s *service) ClearEmergencyMode(ctx context.Context, id uuid.UUID) (*SlotResponse, error) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !slot.EmergencyMode {
		return nil, errs.FailedPrecondition("slot %s is not in emergency mode", slot.SlotNumber)
	}

	updated, err := s.repo.Update(ctx, id, map[string]interface{}{
		"emergency_mode":     false,
		"emergency_priority": 0,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx)
	resp := updated.ToResponse()
	return &resp, nil
}

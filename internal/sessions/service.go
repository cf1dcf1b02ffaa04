package sessions

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/swasthikkulal/parking-backend/internal/pricing"
	"github.com/swasthikkulal/parking-backend/internal/shared/config"
	"github.com/swasthikkulal/parking-backend/internal/shared/errs"
	"github.com/swasthikkulal/parking-backend/internal/slots"
	"github.com/swasthikkulal/parking-backend/pkg/cache"
	"github.com/swasthikkulal/parking-backend/pkg/logger"
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	SetEventPublisher(publisher EventPublisher)

	ListAvailable(ctx context.Context, vehicleClass slots.VehicleClass) ([]slots.SlotResponse, error)
	Book(ctx context.Context, req BookRequest) (*BookResult, error)
	GetSession(ctx context.Context, token string) (*SessionStatusResponse, error)
	GetSessionByID(ctx context.Context, id uuid.UUID) (*SessionResponse, error)
	Extend(ctx context.Context, token string, additionalMinutes int) (*SessionResponse, error)
	Complete(ctx context.Context, token string, paymentMethod *PaymentMethod) (*CompleteResult, error)
	ForceComplete(ctx context.Context, id uuid.UUID, paymentMethod *PaymentMethod, reason string) (*CompleteResult, error)
	Cancel(ctx context.Context, token string) (*SessionResponse, error)
	UpdatePayment(ctx context.Context, token string, req UpdatePaymentRequest) (*SessionResponse, error)
	ListSessions(ctx context.Context, query SessionListQuery) (*PaginatedSessions, error)
	SessionsByVehicle(ctx context.Context, vehicleNumber string) ([]SessionResponse, error)
	PurgeOld(ctx context.Context) (int64, error)
}

// EventPublisher pushes session lifecycle events to the message broker.
// Implementations must be safe to skip: a nil publisher disables publishing.
type EventPublisher interface {
	PublishSessionEvent(eventType, token, slotNumber string, amount float64)
}

type service struct {
	repo      Repository
	slotRepo  slots.Repository
	cfg       config.ParkingConfig
	log       *logger.Logger
	cacheService cache.Service
	publisher EventPublisher

	// now is swappable for tests.
	now func() time.Time
}

func NewService(repo Repository, slotRepo slots.Repository, cfg config.ParkingConfig, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		slotRepo: slotRepo,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// SetEventPublisher injects the broker producer dependency
func (s *service) SetEventPublisher(publisher EventPublisher) {
	s.publisher = publisher
}

// storeCtx bounds every storage round trip so a stalled store surfaces as a
// retryable Unavailable instead of a hung request.
func (s *service) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.cfg.StoreTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

func mapStoreErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.Unavailable("store timeout, please retry")
	}
	return err
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

func (s *service) publish(eventType, token, slotNumber string, amount float64) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishSessionEvent(eventType, token, slotNumber, amount)
}

func (s *service) ListAvailable(ctx context.Context, vehicleClass slots.VehicleClass) ([]slots.SlotResponse, error) {
	if vehicleClass == "" {
		vehicleClass = slots.VehicleCar
	}
	if !vehicleClass.IsValid() {
		return nil, errs.InvalidArgument("invalid vehicle class: %s", vehicleClass)
	}

	fetch := func() ([]slots.SlotResponse, error) {
		sctx, cancel := s.storeCtx(ctx)
		defer cancel()

		eligible, err := s.slotRepo.FindEligible(sctx, vehicleClass, vehicleClass.IsEmergency())
		if err != nil {
			return nil, mapStoreErr(err)
		}
		responses := make([]slots.SlotResponse, len(eligible))
		for i := range eligible {
			responses[i] = eligible[i].ToResponse()
		}
		return responses, nil
	}

	if s.cacheService == nil {
		return fetch()
	}

	var cached []slots.SlotResponse
	key := cache.KeyEligibleSlots(vehicleClass.String())
	err := s.cacheService.GetOrSet(ctx, key, 30*time.Second, func() (interface{}, error) {
		return fetch()
	}, &cached)
	if err != nil {
		// Serve from the store when the cache layer misbehaves.
		return fetch()
	}
	return cached, nil
}

func (s *service) Book(ctx context.Context, req BookRequest) (*BookResult, error) {
	if !req.VehicleClass.IsValid() {
		return nil, errs.InvalidArgument("invalid vehicle class: %s", req.VehicleClass)
	}
	if req.AllottedMinutes <= 0 {
		return nil, errs.InvalidArgument("allotted minutes must be positive")
	}
	if req.SlotID == "" && req.SlotNumber == "" {
		return nil, errs.InvalidArgument("slot_id or slot_number is required")
	}

	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	var slot *slots.Slot
	var err error
	if req.SlotID != "" {
		slotID, parseErr := uuid.Parse(req.SlotID)
		if parseErr != nil {
			return nil, errs.InvalidArgument("invalid slot id")
		}
		slot, err = s.slotRepo.GetByID(sctx, slotID)
	} else {
		slot, err = s.slotRepo.GetByNumber(sctx, strings.ToUpper(strings.TrimSpace(req.SlotNumber)))
	}
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if !slot.IsActive || slot.IsOccupied || slot.IsReserved {
		return nil, errs.Unavailable("slot %s is not available", slot.SlotNumber)
	}
	if slot.Sensor != slots.SensorOnline {
		return nil, errs.Unavailable("slot %s sensor is %s", slot.SlotNumber, slot.Sensor)
	}

	emergency := req.VehicleClass.IsEmergency() || slot.Class == slots.ClassEmergency
	if !emergency && !slot.Supports(req.VehicleClass) {
		return nil, errs.Unavailable("slot %s does not take %s vehicles", slot.SlotNumber, req.VehicleClass)
	}

	baseRate := slot.Pricing.BaseRate
	if emergency {
		baseRate = 0
	}
	amount := pricing.InitialCharge(baseRate, req.AllottedMinutes, emergency)

	token, err := NewToken()
	if err != nil {
		return nil, errs.Internal("failed to mint session token", err)
	}

	paymentStatus := PaymentPending
	if emergency {
		paymentStatus = PaymentPaid
	}

	session := &Session{
		Token:              token,
		HolderName:         strings.TrimSpace(req.HolderName),
		HolderContact:      strings.TrimSpace(req.HolderContact),
		HolderEmail:        strings.ToLower(strings.TrimSpace(req.HolderEmail)),
		VehicleNumber:      strings.ToUpper(strings.TrimSpace(req.VehicleNumber)),
		VehicleClass:       req.VehicleClass,
		SlotID:             slot.ID,
		SlotNumber:         slot.SlotNumber,
		EntryTime:          s.now(),
		AllottedMinutes:    req.AllottedMinutes,
		BaseRate:           baseRate,
		TotalAmount:        amount,
		PaymentStatus:      paymentStatus,
		IsEmergencyVehicle: emergency,
		Status:             StatusActive,
	}

	if err := s.repo.CreateWithSlotClaim(sctx, session); err != nil {
		return nil, mapStoreErr(err)
	}

	s.invalidateAvailability(ctx)
	s.publish("session.booked", session.Token, session.SlotNumber, amount)
	s.log.LogSessionBooked(ctx, session.Token, session.SlotNumber, amount, emergency)

	return &BookResult{
		Session: session.ToResponse(),
		Token:   session.Token,
		Amount:  amount,
	}, nil
}

func (s *service) GetSession(ctx context.Context, token string) (*SessionStatusResponse, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	session, err := s.repo.FindByToken(sctx, token)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	resp := &SessionStatusResponse{SessionResponse: session.ToResponse()}
	if session.Status == StatusActive {
		elapsed := int(s.now().Sub(session.EntryTime).Minutes())
		resp.ElapsedMinutes = elapsed
		resp.OvertimeMinutes = pricing.OvertimeMinutes(elapsed, session.AllottedMinutes)
		resp.IsOvertime = resp.OvertimeMinutes > 0
		if remaining := session.AllottedMinutes - elapsed; remaining > 0 {
			resp.RemainingMinutes = remaining
		}
	}
	return resp, nil
}

func (s *service) GetSessionByID(ctx context.Context, id uuid.UUID) (*SessionResponse, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	session, err := s.repo.FindByID(sctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	resp := session.ToResponse()
	return &resp, nil
}

func (s *service) Extend(ctx context.Context, token string, additionalMinutes int) (*SessionResponse, error) {
	if additionalMinutes < pricing.MinExtensionMinutes {
		return nil, errs.InvalidArgument("extension must be at least %d minutes", pricing.MinExtensionMinutes)
	}

	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	session, err := s.repo.FindActiveByToken(sctx, token)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	extra := pricing.ExtensionCharge(session.BaseRate, additionalMinutes, session.IsEmergencyVehicle)

	// The guarded write loses to a settlement that slipped in after the read.
	updated, err := s.repo.ExtendActive(sctx, session.ID, additionalMinutes, extra)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.publish("session.extended", updated.Token, updated.SlotNumber, updated.TotalAmount)
	s.log.LogSessionExtended(ctx, updated.Token, additionalMinutes, updated.TotalAmount)

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *service) Complete(ctx context.Context, token string, paymentMethod *PaymentMethod) (*CompleteResult, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	session, err := s.repo.FindActiveByToken(sctx, token)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return s.settle(ctx, sctx, session, paymentMethod, "", false)
}

func (s *service) ForceComplete(ctx context.Context, id uuid.UUID, paymentMethod *PaymentMethod, reason string) (*CompleteResult, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	session, err := s.repo.FindByID(sctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if session.Status != StatusActive || session.ExitTime != nil {
		return nil, errs.Conflict("session already %s", session.Status)
	}
	if reason == "" {
		reason = "force completed by admin"
	}
	return s.settle(ctx, sctx, session, paymentMethod, reason, true)
}

func (s *service) settle(ctx, sctx context.Context, session *Session, paymentMethod *PaymentMethod, reason string, requireMethod bool) (*CompleteResult, error) {
	if paymentMethod != nil && !paymentMethod.IsValid() {
		return nil, errs.InvalidArgument("invalid payment method: %s", *paymentMethod)
	}

	exitTime := s.now()
	actualMinutes := int(math.Floor(exitTime.Sub(session.EntryTime).Minutes()))
	overtime := pricing.OvertimeMinutes(actualMinutes, session.AllottedMinutes)
	penalty := pricing.OvertimePenalty(session.BaseRate, overtime, session.IsEmergencyVehicle)

	finalAmount := pricing.FinalAmount(session.TotalAmount, penalty)
	if session.IsEmergencyVehicle {
		finalAmount = 0
	}

	// Admin-driven settlement collects payment on the spot.
	if requireMethod && finalAmount > 0 && paymentMethod == nil {
		return nil, errs.InvalidArgument("payment method required for paid sessions")
	}

	paymentStatus := PaymentPending
	if session.IsEmergencyVehicle || paymentMethod != nil {
		paymentStatus = PaymentPaid
	}

	updates := map[string]interface{}{
		"status":         StatusCompleted,
		"exit_time":      exitTime,
		"actual_minutes": actualMinutes,
		"penalty_charge": penalty,
		"total_amount":   finalAmount,
		"payment_status": paymentStatus,
	}
	if paymentMethod != nil {
		updates["payment_method"] = *paymentMethod
	}
	if reason != "" {
		updates["completion_reason"] = reason
	}

	record := &slots.OccupancyRecord{
		SlotID:        session.SlotID,
		SessionID:     session.ID,
		VehicleNumber: session.VehicleNumber,
		VehicleClass:  session.VehicleClass,
		EntryTime:     session.EntryTime,
		ExitTime:      exitTime,
		Minutes:       actualMinutes,
		Amount:        finalAmount,
	}

	if err := s.repo.CompleteAndRelease(sctx, session.ID, updates, record); err != nil {
		return nil, mapStoreErr(err)
	}

	settled, err := s.repo.FindByID(sctx, session.ID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.invalidateAvailability(ctx)
	s.publish("session.completed", settled.Token, settled.SlotNumber, finalAmount)
	s.log.LogSessionCompleted(ctx, settled.Token, actualMinutes, penalty, finalAmount)

	return &CompleteResult{
		Session: settled.ToResponse(),
		Billing: BillingBreakdown{
			BaseAmount:      finalAmount - penalty,
			PenaltyCharge:   penalty,
			FinalAmount:     finalAmount,
			ActualMinutes:   actualMinutes,
			OvertimeMinutes: overtime,
		},
	}, nil
}

func (s *service) Cancel(ctx context.Context, token string) (*SessionResponse, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	session, err := s.repo.FindActiveByToken(sctx, token)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	now := s.now()
	if now.Sub(session.EntryTime) > s.cfg.CancelGraceWindow {
		return nil, errs.FailedPrecondition(
			"cancellation window of %d minutes has passed, complete the session for exit instead",
			int(s.cfg.CancelGraceWindow.Minutes()))
	}

	updates := map[string]interface{}{
		"status":    StatusCancelled,
		"exit_time": now,
	}
	if err := s.repo.CancelAndRelease(sctx, session.ID, updates); err != nil {
		return nil, mapStoreErr(err)
	}

	cancelled, err := s.repo.FindByID(sctx, session.ID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.invalidateAvailability(ctx)
	s.publish("session.cancelled", cancelled.Token, cancelled.SlotNumber, 0)
	s.log.LogSessionCancelled(ctx, cancelled.Token, cancelled.SlotNumber)

	resp := cancelled.ToResponse()
	return &resp, nil
}

func (s *service) UpdatePayment(ctx context.Context, token string, req UpdatePaymentRequest) (*SessionResponse, error) {
	if !req.PaymentStatus.IsValid() {
		return nil, errs.InvalidArgument("invalid payment status: %s", req.PaymentStatus)
	}
	if req.PaymentMethod != nil && !req.PaymentMethod.IsValid() {
		return nil, errs.InvalidArgument("invalid payment method: %s", *req.PaymentMethod)
	}

	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	session, err := s.repo.FindByToken(sctx, token)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if session.IsEmergencyVehicle {
		return nil, errs.FailedPrecondition("emergency sessions have no payment to update")
	}
	if session.Status == StatusCancelled {
		return nil, errs.FailedPrecondition("cancelled sessions have no payment to update")
	}

	updates := map[string]interface{}{"payment_status": req.PaymentStatus}
	if req.PaymentMethod != nil {
		updates["payment_method"] = *req.PaymentMethod
	}

	updated, err := s.repo.Update(sctx, session.ID, updates)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *service) ListSessions(ctx context.Context, query SessionListQuery) (*PaginatedSessions, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	results, totalCount, err := s.repo.List(sctx, query)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 20
	}

	responses := make([]SessionResponse, len(results))
	for i := range results {
		responses[i] = results[i].ToResponse()
	}

	return &PaginatedSessions{
		Sessions:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}, nil
}

func (s *service) SessionsByVehicle(ctx context.Context, vehicleNumber string) ([]SessionResponse, error) {
	vehicleNumber = strings.TrimSpace(vehicleNumber)
	if vehicleNumber == "" {
		return nil, errs.InvalidArgument("vehicle number is required")
	}

	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	results, err := s.repo.ListByVehicle(sctx, vehicleNumber)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	responses := make([]SessionResponse, len(results))
	for i := range results {
		responses[i] = results[i].ToResponse()
	}
	return responses, nil
}

func (s *service) PurgeOld(ctx context.Context) (int64, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	cutoff := s.now().AddDate(0, 0, -s.cfg.RetentionMinAgeDays)
	purged, err := s.repo.DeleteTerminalOlderThan(sctx, cutoff)
	if err != nil {
		return 0, mapStoreErr(err)
	}

	if purged > 0 {
		s.log.WithFields(map[string]interface{}{"purged": purged}).Info("old sessions purged")
	}
	return purged, nil
}

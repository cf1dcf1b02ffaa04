package analytics

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/swasthikkulal/parking-backend/internal/sessions"
	"github.com/swasthikkulal/parking-backend/internal/slots"
)

type Repository interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	GetPaymentAnalytics(ctx context.Context) (*PaymentAnalytics, error)
	GetSectionStats(ctx context.Context) ([]SectionStats, error)
	GetAvailabilitySummary(ctx context.Context) (*AvailabilitySummary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{GeneratedAt: time.Now()}
	db := r.db.WithContext(ctx)

	slotModel := db.Model(&slots.Slot{})
	if err := slotModel.Count(&stats.TotalSlots).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&slots.Slot{}).Where("is_occupied = ?", true).Count(&stats.OccupiedSlots).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&slots.Slot{}).
		Where("is_occupied = ? AND is_active = ? AND is_reserved = ? AND sensor = ?",
			false, true, false, slots.SensorOnline).
		Count(&stats.AvailableSlots).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&slots.Slot{}).Where("is_active = ?", false).Count(&stats.DisabledSlots).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&slots.Slot{}).Where("class = ?", slots.ClassEmergency).Count(&stats.EmergencySlots).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&slots.Slot{}).Where("class = ?", slots.ClassEV).Count(&stats.EVSlots).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&sessions.Session{}).
		Where("status = ?", sessions.StatusActive).
		Count(&stats.ActiveSessions).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&sessions.Session{}).
		Where("status = ? AND is_emergency_vehicle = ?", sessions.StatusActive, true).
		Count(&stats.EmergencySessions).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if err := db.Model(&sessions.Session{}).
		Where("status = ? AND exit_time >= ?", sessions.StatusCompleted, startOfDay).
		Count(&stats.CompletedToday).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&sessions.Session{}).
		Where("status = ? AND exit_time >= ?", sessions.StatusCancelled, startOfDay).
		Count(&stats.CancelledToday).Error; err != nil {
		return nil, err
	}

	revenue, err := r.revenueStats(ctx, now, startOfDay)
	if err != nil {
		return nil, err
	}
	stats.Revenue = *revenue

	var recent []sessions.Session
	if err := db.Model(&sessions.Session{}).
		Order("entry_time DESC").
		Limit(10).
		Find(&recent).Error; err != nil {
		return nil, err
	}
	stats.RecentSessions = make([]RecentSession, len(recent))
	for i, s := range recent {
		stats.RecentSessions[i] = RecentSession{
			Token:         s.Token,
			SlotNumber:    s.SlotNumber,
			VehicleNumber: s.VehicleNumber,
			Status:        s.Status.String(),
			TotalAmount:   s.TotalAmount,
			EntryTime:     s.EntryTime,
		}
	}

	if stats.TotalSlots > 0 {
		stats.OccupancyRate = float64(stats.OccupiedSlots) / float64(stats.TotalSlots) * 100
	}
	return stats, nil
}

func (r *repository) revenueStats(ctx context.Context, now, startOfDay time.Time) (*RevenueStats, error) {
	db := r.db.WithContext(ctx)

	startOfWeek := startOfDay.AddDate(0, 0, -int(now.Weekday()))
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type sumResult struct {
		Total   float64
		Penalty float64
	}

	sumSince := func(since *time.Time) (sumResult, error) {
		var result sumResult
		q := db.Model(&sessions.Session{}).
			Select("COALESCE(SUM(total_amount), 0) as total, COALESCE(SUM(penalty_charge), 0) as penalty").
			Where("status = ? AND payment_status = ?", sessions.StatusCompleted, sessions.PaymentPaid)
		if since != nil {
			q = q.Where("exit_time >= ?", *since)
		}
		err := q.Scan(&result).Error
		return result, err
	}

	today, err := sumSince(&startOfDay)
	if err != nil {
		return nil, err
	}
	week, err := sumSince(&startOfWeek)
	if err != nil {
		return nil, err
	}
	month, err := sumSince(&startOfMonth)
	if err != nil {
		return nil, err
	}
	total, err := sumSince(nil)
	if err != nil {
		return nil, err
	}

	return &RevenueStats{
		Today:        today.Total,
		ThisWeek:     week.Total,
		ThisMonth:    month.Total,
		Total:        total.Total,
		TotalPenalty: total.Penalty,
	}, nil
}

func (r *repository) GetPaymentAnalytics(ctx context.Context) (*PaymentAnalytics, error) {
	db := r.db.WithContext(ctx)
	analytics := &PaymentAnalytics{}

	type methodRow struct {
		Method  string
		Count   int64
		Revenue float64
	}
	var rows []methodRow
	if err := db.Model(&sessions.Session{}).
		Select("payment_method as method, COUNT(*) as count, COALESCE(SUM(total_amount), 0) as revenue").
		Where("payment_status = ? AND payment_method IS NOT NULL", sessions.PaymentPaid).
		Group("payment_method").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	analytics.ByMethod = make([]PaymentBreakdown, len(rows))
	for i, row := range rows {
		analytics.ByMethod[i] = PaymentBreakdown(row)
		analytics.PaidCount += row.Count
		analytics.CollectedTotal += row.Revenue
	}

	type pendingRow struct {
		Count  int64
		Amount float64
	}
	var pending pendingRow
	if err := db.Model(&sessions.Session{}).
		Select("COUNT(*) as count, COALESCE(SUM(total_amount), 0) as amount").
		Where("payment_status = ?", sessions.PaymentPending).
		Scan(&pending).Error; err != nil {
		return nil, err
	}
	analytics.PendingCount = pending.Count
	analytics.PendingAmount = pending.Amount

	return analytics, nil
}

func (r *repository) GetSectionStats(ctx context.Context) ([]SectionStats, error) {
	db := r.db.WithContext(ctx)

	type sectionRow struct {
		Section       string
		TotalSlots    int64
		OccupiedSlots int64
	}
	var rows []sectionRow
	if err := db.Model(&slots.Slot{}).
		Select("section, COUNT(*) as total_slots, SUM(CASE WHEN is_occupied THEN 1 ELSE 0 END) as occupied_slots").
		Group("section").
		Order("section ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := make([]SectionStats, len(rows))
	for i, row := range rows {
		stats[i] = SectionStats{
			Section:       row.Section,
			TotalSlots:    row.TotalSlots,
			OccupiedSlots: row.OccupiedSlots,
		}
		if row.TotalSlots > 0 {
			stats[i].OccupancyRate = float64(row.OccupiedSlots) / float64(row.TotalSlots) * 100
		}

		var revenue float64
		if err := db.Model(&sessions.Session{}).
			Select("COALESCE(SUM(parking_sessions.total_amount), 0)").
			Joins("JOIN slots ON slots.id = parking_sessions.slot_id").
			Where("slots.section = ? AND parking_sessions.status = ?", row.Section, sessions.StatusCompleted).
			Scan(&revenue).Error; err != nil {
			return nil, err
		}
		stats[i].TotalRevenue = revenue
	}
	return stats, nil
}

func (r *repository) GetAvailabilitySummary(ctx context.Context) (*AvailabilitySummary, error) {
	db := r.db.WithContext(ctx)
	summary := &AvailabilitySummary{
		ByClass:     make(map[string]int64),
		ByGate:      make(map[string]int64),
		GeneratedAt: time.Now(),
	}

	if err := db.Model(&slots.Slot{}).Count(&summary.TotalSlots).Error; err != nil {
		return nil, err
	}

	available := db.Model(&slots.Slot{}).
		Where("is_occupied = ? AND is_active = ? AND is_reserved = ? AND sensor = ?",
			false, true, false, slots.SensorOnline)
	if err := available.Count(&summary.AvailableSlots).Error; err != nil {
		return nil, err
	}

	type groupRow struct {
		Key   string
		Count int64
	}

	var byClass []groupRow
	if err := db.Model(&slots.Slot{}).
		Select("class as key, COUNT(*) as count").
		Where("is_occupied = ? AND is_active = ? AND is_reserved = ? AND sensor = ?",
			false, true, false, slots.SensorOnline).
		Group("class").
		Scan(&byClass).Error; err != nil {
		return nil, err
	}
	for _, row := range byClass {
		summary.ByClass[row.Key] = row.Count
	}

	var byGate []groupRow
	if err := db.Model(&slots.Slot{}).
		Select("entry_gate as key, COUNT(*) as count").
		Where("is_occupied = ? AND is_active = ? AND is_reserved = ? AND sensor = ?",
			false, true, false, slots.SensorOnline).
		Group("entry_gate").
		Scan(&byGate).Error; err != nil {
		return nil, err
	}
	for _, row := range byGate {
		summary.ByGate[row.Key] = row.Count
	}

	return summary, nil
}

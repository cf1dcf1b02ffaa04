package slots

import (
	"fmt"
	"math"
	"strings"
)

const (
	defaultEVPercent    = 15
	emergencyPerSection = 2
	disabledPerSection  = 2

	defaultNormalRate   = 25
	defaultEVRate       = 30
	defaultDisabledRate = 20
)

var sectionGates = []Gate{Gate1, Gate2, Gate3, Gate4}

// BuildLayout expands a generation request into concrete slots. Emergency and
// disabled slots sit in row 1 nearest the entrance, the EV quota fills rows 1
// and 2 before spilling into later rows, and everything else is a normal slot.
func BuildLayout(req GenerateSlotsRequest) ([]Slot, error) {
	sections := parseSections(req.Sections)
	if len(sections) == 0 {
		return nil, fmt.Errorf("no valid sections")
	}

	evPercent := req.EVPercent
	if evPercent == 0 {
		evPercent = defaultEVPercent
	}
	slotsPerSection := req.Rows * req.Columns
	evQuota := evPercent * slotsPerSection / 100

	var out []Slot
	for si, section := range sections {
		primaryGate := sectionGates[si%len(sectionGates)]
		evCount, emergencyCount, disabledCount := 0, 0, 0

		for row := 1; row <= req.Rows; row++ {
			for col := 1; col <= req.Columns; col++ {
				class := ClassNormal
				if row == 1 {
					switch {
					case col <= emergencyPerSection && emergencyCount < emergencyPerSection:
						class = ClassEmergency
						emergencyCount++
					case col <= emergencyPerSection+disabledPerSection && disabledCount < disabledPerSection:
						class = ClassDisabled
						disabledCount++
					case evCount < evQuota:
						class = ClassEV
						evCount++
					}
				} else if evCount < evQuota {
					class = ClassEV
					evCount++
				}

				gate := gateFor(class, primaryGate)
				slot := Slot{
					SlotNumber:     fmt.Sprintf("%s%d%02d", section, row, col),
					Floor:          1,
					Section:        section,
					Row:            row,
					Column:         col,
					Class:          class,
					Size:           sizeFor(class),
					VehicleClasses: vehicleClassesFor(class),
					Amenities:      amenitiesFor(section, class),
					IsActive:       true,
					Sensor:         SensorOnline,
					EntryGate:      gate,
					ExitGate:       gate,
					Priority:       priorityFor(class),
					Pricing:        pricingFor(class, req),
				}
				if class == ClassEmergency {
					// Dedicated emergency slots stand ready from day one.
					slot.EmergencyMode = true
					slot.EmergencyPriority = 3
				}
				if class == ClassEV {
					slot.Charging = ChargingStation{
						HasCharger:   true,
						ChargerType:  "Type2",
						PowerOutput:  7.4,
						ChargerState: ChargingIdle,
					}
				}
				out = append(out, slot)
			}
		}
	}
	return out, nil
}

func parseSections(raw string) []string {
	parts := strings.Split(raw, ",")
	sections := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			sections = append(sections, p)
		}
	}
	return sections
}

func sizeFor(class SlotClass) SizeClass {
	if class == ClassNormal {
		return SizeMedium
	}
	return SizeLarge
}

func vehicleClassesFor(class SlotClass) []VehicleClass {
	switch class {
	case ClassEmergency:
		return []VehicleClass{VehicleEmergency}
	case ClassEV:
		return []VehicleClass{VehicleCar, VehicleSUV}
	default:
		return []VehicleClass{VehicleCar, VehicleSUV, VehicleTwoWheeler, VehicleThreeWheeler}
	}
}

func gateFor(class SlotClass, primary Gate) Gate {
	if class == ClassEmergency {
		return GateEmergency
	}
	return primary
}

func priorityFor(class SlotClass) int {
	if class == ClassEmergency {
		return 3
	}
	return 1
}

func pricingFor(class SlotClass, req GenerateSlotsRequest) Pricing {
	if class == ClassEmergency {
		// Emergency slots never charge, the multipliers stay neutral.
		return Pricing{WeekendMultiplier: 1, HolidayMultiplier: 1}
	}

	var base float64
	switch class {
	case ClassEV:
		base = orDefault(req.EVRate, defaultEVRate)
	case ClassDisabled:
		base = orDefault(req.DisabledRate, defaultDisabledRate)
	default:
		base = orDefault(req.NormalRate, defaultNormalRate)
	}

	return Pricing{
		BaseRate:          base,
		PeakHourRate:      peakRate(base),
		WeekendMultiplier: 1.5,
		HolidayMultiplier: 2.0,
	}
}

// peakRate is the base rate plus a 50% peak surcharge, rounded to the rupee.
func peakRate(base float64) float64 {
	return math.Round(base * 1.5)
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

// RateCard is the public pricing sheet derived from the generator defaults.
type RateCard struct {
	Normal    RateEntry   `json:"normal"`
	EV        RateEntry   `json:"ev"`
	Emergency RateEntry   `json:"emergency"`
	Disabled  RateEntry   `json:"disabled"`
	Penalties PenaltyInfo `json:"penalties"`
}

type RateEntry struct {
	BaseRate     float64 `json:"base_rate"`
	PeakHourRate float64 `json:"peak_hour_rate,omitempty"`
	Description  string  `json:"description"`
}

type PenaltyInfo struct {
	OvertimeMultiplier  float64 `json:"overtime_multiplier"`
	MinExtensionMinutes int     `json:"min_extension_minutes"`
	Description         string  `json:"description"`
}

func DefaultRateCard(overtimeMultiplier float64, minExtensionMinutes int) RateCard {
	return RateCard{
		Normal: RateEntry{
			BaseRate:     defaultNormalRate,
			PeakHourRate: peakRate(defaultNormalRate),
			Description:  "Regular car parking",
		},
		EV: RateEntry{
			BaseRate:     defaultEVRate,
			PeakHourRate: peakRate(defaultEVRate),
			Description:  "Electric vehicle with charging",
		},
		Emergency: RateEntry{
			BaseRate:    0,
			Description: "Free for emergency vehicles",
		},
		Disabled: RateEntry{
			BaseRate:    defaultDisabledRate,
			Description: "Accessible parking",
		},
		Penalties: PenaltyInfo{
			OvertimeMultiplier:  overtimeMultiplier,
			MinExtensionMinutes: minExtensionMinutes,
			Description:         "50% extra charge for overtime",
		},
	}
}

func amenitiesFor(section string, class SlotClass) []string {
	amenities := []string{"CCTV"}
	if section == "A" || section == "B" {
		amenities = append(amenities, "Covered", "Security")
	}
	switch class {
	case ClassEV:
		amenities = append(amenities, "ChargingStation")
	case ClassEmergency:
		amenities = append(amenities, "QuickAccess", "NearEntrance")
	}
	return amenities
}

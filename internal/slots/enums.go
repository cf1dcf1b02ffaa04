package slots

// SlotClass classifies a physical slot.
type SlotClass string

const (
	ClassNormal    SlotClass = "Normal"
	ClassEV        SlotClass = "EV"
	ClassEmergency SlotClass = "Emergency"
	ClassDisabled  SlotClass = "Disabled"
)

// IsValid checks if the slot class is valid
func (c SlotClass) IsValid() bool {
	switch c {
	case ClassNormal, ClassEV, ClassEmergency, ClassDisabled:
		return true
	}
	return false
}

// String returns the string representation of SlotClass
func (c SlotClass) String() string {
	return string(c)
}

// IsBillable reports whether sessions on this slot class are ever charged.
func (c SlotClass) IsBillable() bool {
	return c != ClassEmergency
}

// SizeClass is the physical footprint of a slot.
type SizeClass string

const (
	SizeSmall  SizeClass = "Small"
	SizeMedium SizeClass = "Medium"
	SizeLarge  SizeClass = "Large"
)

func (s SizeClass) IsValid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// SensorHealth is the reported state of a slot's occupancy sensor.
// Only online slots are offered to the public.
type SensorHealth string

const (
	SensorOnline      SensorHealth = "online"
	SensorOffline     SensorHealth = "offline"
	SensorFaulty      SensorHealth = "faulty"
	SensorMaintenance SensorHealth = "maintenance"
)

func (s SensorHealth) IsValid() bool {
	switch s {
	case SensorOnline, SensorOffline, SensorFaulty, SensorMaintenance:
		return true
	}
	return false
}

// Gate identifies an entry/exit gate. Emergency slots are pinned to the
// dedicated emergency gate at creation.
type Gate string

const (
	Gate1         Gate = "Gate1"
	Gate2         Gate = "Gate2"
	Gate3         Gate = "Gate3"
	Gate4         Gate = "Gate4"
	GateVIP       Gate = "VIP"
	GateEmergency Gate = "Emergency"
)

func (g Gate) IsValid() bool {
	switch g {
	case Gate1, Gate2, Gate3, Gate4, GateVIP, GateEmergency:
		return true
	}
	return false
}

// VehicleClass classifies a vehicle for slot compatibility and billing.
type VehicleClass string

const (
	VehicleCar          VehicleClass = "Car"
	VehicleSUV          VehicleClass = "SUV"
	VehicleBus          VehicleClass = "Bus"
	VehicleTruck        VehicleClass = "Truck"
	VehicleTwoWheeler   VehicleClass = "TwoWheeler"
	VehicleThreeWheeler VehicleClass = "ThreeWheeler"
	VehicleEmergency    VehicleClass = "Emergency"
)

func (v VehicleClass) IsValid() bool {
	switch v {
	case VehicleCar, VehicleSUV, VehicleBus, VehicleTruck,
		VehicleTwoWheeler, VehicleThreeWheeler, VehicleEmergency:
		return true
	}
	return false
}

func (v VehicleClass) String() string {
	return string(v)
}

// IsEmergency reports whether the vehicle rides free and bypasses
// compatibility checks.
func (v VehicleClass) IsEmergency() bool {
	return v == VehicleEmergency
}

// ChargingStatus is the state of an EV slot's charging station.
type ChargingStatus string

const (
	ChargingIdle        ChargingStatus = "idle"
	ChargingActive      ChargingStatus = "charging"
	ChargingMaintenance ChargingStatus = "maintenance"
)

func (c ChargingStatus) IsValid() bool {
	switch c {
	case ChargingIdle, ChargingActive, ChargingMaintenance:
		return true
	}
	return false
}

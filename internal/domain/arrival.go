package domain

import "time"

// ArrivalConfirmation is an append-only audit row recording a technician's
// physical presence on site. It is deliberately not joined to the inquiry
// table; the work order field is free text supplied by the device.
type ArrivalConfirmation struct {
	ID           string
	TechnicianID string
	WorkOrder    string
	Code         string
	Latitude     float64
	Longitude    float64
	CreatedAt    time.Time
}

package domain

import "time"

// DiscoveryReport captures notes from a pre-sales discovery meeting.
type DiscoveryReport struct {
	ID              string
	ClientName      string
	SiteAddress     string
	MeetingDate     time.Time
	Summary         string
	Recommendations string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

package entity

import (
	"time"
)

// Event formats.
const (
	FormatOffline = "offline"
	FormatOnline  = "online"
	FormatHybrid  = "hybrid"
)

// Event belongs to the user referenced by CreatedBy; only that user may
// update or delete it. Date and Time stay loosely typed strings
// ("2006-01-02" and "15:04"), validated at the binding layer.
type Event struct {
	ID              string
	Title           string
	Description     string
	Date            string
	Time            string
	Location        string
	MaxParticipants int
	Price           float64
	Category        string
	Format          string
	CreatedBy       string
	CreatorName     string // joined from users on reads, not stored
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

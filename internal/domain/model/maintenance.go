package model

import (
	"fmt"
	"time"
)

// SuppressionWindow is a Zabbix maintenance period. Identity is ID; Name is
// presentation-only and may collide between windows.
type SuppressionWindow struct {
	ID   string
	Name string
}

// ActiveInterval is the [Since, Till] pair an activation writes to a window.
type ActiveInterval struct {
	Since time.Time
	Till  time.Time
}

// NewActiveInterval returns [now, now+duration]. Activation always overwrites
// the existing interval with this value.
func NewActiveInterval(now time.Time, durationSeconds int) (ActiveInterval, error) {
	if durationSeconds <= 0 {
		return ActiveInterval{}, fmt.Errorf("duration must be positive, got %d", durationSeconds)
	}
	now = now.Truncate(time.Second)
	return ActiveInterval{
		Since: now,
		Till:  now.Add(time.Duration(durationSeconds) * time.Second),
	}, nil
}

// Seconds returns the interval length in whole seconds.
func (i ActiveInterval) Seconds() int {
	return int(i.Till.Sub(i.Since) / time.Second)
}

// DurationOption is one entry of the fixed duration menu.
type DurationOption struct {
	Label   string
	Seconds int
}

var durationOptions = []DurationOption{
	{Label: "5 minutes", Seconds: 5 * 60},
	{Label: "15 minutes", Seconds: 15 * 60},
	{Label: "30 minutes", Seconds: 30 * 60},
	{Label: "1 hour", Seconds: 60 * 60},
	{Label: "2 hours", Seconds: 2 * 60 * 60},
	{Label: "4 hours", Seconds: 4 * 60 * 60},
}

// DurationOptions returns a copy of the duration menu in display order.
func DurationOptions() []DurationOption {
	out := make([]DurationOption, len(durationOptions))
	copy(out, durationOptions)
	return out
}

// LookupDuration finds the menu entry for the given number of seconds.
func LookupDuration(seconds int) (DurationOption, bool) {
	for _, d := range durationOptions {
		if d.Seconds == seconds {
			return d, true
		}
	}
	return DurationOption{}, false
}

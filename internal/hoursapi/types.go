package hoursapi

import (
	"strings"
	"time"
)

// Kitchen is the kitchen entry of a day's hours. The upstream management API
// sends one of three shapes: an opens/closes range, {"is_closed": true}, or
// null (no kitchen service). A nil *Kitchen covers the null case.
type Kitchen struct {
	Opens    string `json:"opens,omitempty"`  // "12:00"
	Closes   string `json:"closes,omitempty"` // "21:00"
	IsClosed bool   `json:"is_closed,omitempty"`
}

// ClosedForService reports whether no food orders are taken.
func (k *Kitchen) ClosedForService() bool {
	return k == nil || k.IsClosed
}

// HasRange reports whether the kitchen runs a narrower sub-range than the
// venue's opening hours.
func (k *Kitchen) HasRange() bool {
	return k != nil && k.Opens != "" && k.Closes != ""
}

// DayHours is one weekday entry of the regular schedule.
type DayHours struct {
	Opens    string   `json:"opens,omitempty"`  // "16:00"
	Closes   string   `json:"closes,omitempty"` // "22:00"
	Kitchen  *Kitchen `json:"kitchen,omitempty"`
	IsClosed bool     `json:"is_closed,omitempty"`
}

// Closed reports whether the venue does not open at all.
func (d DayHours) Closed() bool {
	return d.IsClosed || d.Opens == "" || d.Closes == ""
}

// SpecialDay is a date-specific override of the regular schedule.
type SpecialDay struct {
	Date     string   `json:"date"` // YYYY-MM-DD
	Opens    string   `json:"opens,omitempty"`
	Closes   string   `json:"closes,omitempty"`
	Kitchen  *Kitchen `json:"kitchen,omitempty"`
	Status   string   `json:"status,omitempty"` // "modified" or "closed"
	IsClosed bool     `json:"is_closed,omitempty"`
	Note     string   `json:"note,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

// Annotation returns the override's display note, preferring note over reason.
func (s *SpecialDay) Annotation() string {
	if s == nil {
		return ""
	}
	if s.Note != "" {
		return s.Note
	}
	return s.Reason
}

// BusinessHours is the venue schedule as served by the management API.
type BusinessHours struct {
	RegularHours map[string]DayHours `json:"regularHours"` // keyed "monday".."sunday"
	SpecialHours []SpecialDay        `json:"specialHours,omitempty"`
}

// WeekdayKey converts a Go weekday to the map key the API uses.
func WeekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// SpecialFor returns the override for a date (YYYY-MM-DD), or nil.
func (h *BusinessHours) SpecialFor(date string) *SpecialDay {
	for i := range h.SpecialHours {
		if h.SpecialHours[i].Date == date {
			return &h.SpecialHours[i]
		}
	}
	return nil
}

// EffectiveFor resolves the hours in force on a date: the special-hours
// override when present, else the regular weekday entry. An override's
// opens/closes fall back to the regular entry when omitted; its kitchen
// replaces the regular kitchen entirely, so an override without a kitchen
// means no food service that day.
func (h *BusinessHours) EffectiveFor(date string, weekday time.Weekday) (DayHours, *SpecialDay) {
	base := h.RegularHours[WeekdayKey(weekday)]

	special := h.SpecialFor(date)
	if special == nil {
		return base, nil
	}

	effective := DayHours{
		Opens:    special.Opens,
		Closes:   special.Closes,
		Kitchen:  special.Kitchen,
		IsClosed: special.IsClosed || special.Status == "closed" || base.IsClosed,
	}
	if effective.Opens == "" {
		effective.Opens = base.Opens
	}
	if effective.Closes == "" {
		effective.Closes = base.Closes
	}
	return effective, special
}

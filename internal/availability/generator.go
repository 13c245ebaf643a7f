package availability

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"anchor/internal/clock"
	"anchor/internal/hoursapi"
	"anchor/internal/londontime"
	"anchor/internal/metrics"
)

// TimeSlot is one bookable 30-minute slot start. Field names match the
// booking UI's wire format.
type TimeSlot struct {
	Time      string `json:"time"` // "HH:MM"
	Available bool   `json:"available"`
	Busy      bool   `json:"busy"` // placeholder, no live booking counts yet
	Remaining int    `json:"remaining"`
}

// DayAvailability is the derived result for a single date.
type DayAvailability struct {
	Date            string     `json:"date"` // YYYY-MM-DD
	IsClosed        bool       `json:"isClosed"`
	IsKitchenClosed bool       `json:"isKitchenClosed"`
	Times           []TimeSlot `json:"times"`
	SpecialNote     string     `json:"specialNote,omitempty"`
}

// Data is the availability window the booking UI consumes.
type Data struct {
	Days             []DayAvailability `json:"days"`
	BlockedDates     []string          `json:"blockedDates"`
	SundayRoastDates []string          `json:"sundayRoastDates"`
}

// HoursFetcher provides the venue schedule.
type HoursFetcher interface {
	GetBusinessHours(ctx context.Context) (*hoursapi.BusinessHours, error)
}

// Config tunes the generator. Zero values fall back to the defaults the
// website has always used.
type Config struct {
	HorizonDays  int // 30
	SlotMinutes  int // 30
	SlotCapacity int // 10
}

// Generator computes day-by-day booking availability over a rolling window
// of London calendar dates.
type Generator struct {
	hours HoursFetcher
	cache *Cache
	clock clock.Clock
	log   zerolog.Logger

	horizonDays  int
	slotMinutes  int
	slotCapacity int
}

// NewGenerator creates a generator. cache may be nil to disable caching.
func NewGenerator(hours HoursFetcher, cache *Cache, clk clock.Clock, logger zerolog.Logger, cfg Config) *Generator {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = 30
	}
	if cfg.SlotMinutes <= 0 {
		cfg.SlotMinutes = 30
	}
	if cfg.SlotCapacity <= 0 {
		cfg.SlotCapacity = 10
	}
	return &Generator{
		hours:        hours,
		cache:        cache,
		clock:        clk,
		log:          logger,
		horizonDays:  cfg.HorizonDays,
		slotMinutes:  cfg.SlotMinutes,
		slotCapacity: cfg.SlotCapacity,
	}
}

// Upcoming returns availability for the next horizon of London calendar
// dates, today inclusive. It never fails: an unreachable hours service is
// absorbed by a conservative fallback schedule so the booking UI keeps
// working in degraded mode.
func (g *Generator) Upcoming(ctx context.Context) *Data {
	if data, ok := g.cache.Get(); ok {
		metrics.IncAvailability("cache")
		return data
	}

	dates := g.window()

	hours, err := g.hours.GetBusinessHours(ctx)
	if err != nil {
		g.log.Error().Err(err).Msg("business hours fetch failed, using fallback schedule")
		metrics.IncAvailability("fallback")
		data := g.fallback(dates)
		g.cache.Set(data)
		return data
	}

	metrics.IncAvailability("fresh")
	data := g.compute(dates, hours)
	g.cache.Set(data)
	return data
}

// window returns the next horizon of London dates starting today.
func (g *Generator) window() []time.Time {
	today := londontime.Midnight(g.clock.Now())
	dates := make([]time.Time, 0, g.horizonDays)
	for i := 0; i < g.horizonDays; i++ {
		dates = append(dates, today.AddDate(0, 0, i))
	}
	return dates
}

func (g *Generator) compute(dates []time.Time, hours *hoursapi.BusinessHours) *Data {
	data := &Data{
		Days:             make([]DayAvailability, 0, len(dates)),
		BlockedDates:     []string{},
		SundayRoastDates: []string{},
	}

	for _, date := range dates {
		dateStr := londontime.FormatDate(date)
		weekday := date.Weekday()

		effective, special := hours.EffectiveFor(dateStr, weekday)

		isClosed := effective.Closed()

		// Mondays have no kitchen service by default; only an explicit
		// special-hours entry for that date can reopen it.
		isKitchenClosed := effective.Kitchen.ClosedForService() ||
			(weekday == time.Monday && special == nil)

		var times []TimeSlot
		if !isClosed {
			times = g.slots(effective, isKitchenClosed, dateStr)
		}

		if isClosed {
			data.BlockedDates = append(data.BlockedDates, dateStr)
		}
		if weekday == time.Sunday && !isClosed && !isKitchenClosed {
			data.SundayRoastDates = append(data.SundayRoastDates, dateStr)
		}

		data.Days = append(data.Days, DayAvailability{
			Date:            dateStr,
			IsClosed:        isClosed,
			IsKitchenClosed: isKitchenClosed,
			Times:           times,
			SpecialNote:     special.Annotation(),
		})
	}

	return data
}

// slots generates slot starts from open to close, half-open: the closing
// time itself is not a bookable start.
func (g *Generator) slots(day hoursapi.DayHours, kitchenClosed bool, dateStr string) []TimeSlot {
	openMin, err := parseClock(day.Opens)
	if err != nil {
		g.log.Warn().Str("date", dateStr).Str("opens", day.Opens).Msg("unparsable opening time, skipping slots")
		return nil
	}
	closeMin, err := parseClock(day.Closes)
	if err != nil {
		g.log.Warn().Str("date", dateStr).Str("closes", day.Closes).Msg("unparsable closing time, skipping slots")
		return nil
	}

	var kitchenOpen, kitchenClose int
	useKitchenRange := !kitchenClosed && day.Kitchen.HasRange()
	if useKitchenRange {
		kitchenOpen, err = parseClock(day.Kitchen.Opens)
		if err != nil {
			useKitchenRange = false
		} else {
			kitchenClose, err = parseClock(day.Kitchen.Closes)
			if err != nil {
				useKitchenRange = false
			}
		}
	}

	var times []TimeSlot
	for minute := openMin; minute < closeMin; minute += g.slotMinutes {
		available := !kitchenClosed
		if available && useKitchenRange {
			available = minute >= kitchenOpen && minute < kitchenClose
		}

		remaining := 0
		if available {
			remaining = g.slotCapacity
		}

		times = append(times, TimeSlot{
			Time:      formatClock(minute),
			Available: available,
			Remaining: remaining,
		})
	}
	return times
}

// fallback approximates the venue's usual week when the hours service is
// unreachable: closed all day Monday, open 12:00-21:30 otherwise.
func (g *Generator) fallback(dates []time.Time) *Data {
	data := &Data{
		Days:             make([]DayAvailability, 0, len(dates)),
		BlockedDates:     []string{},
		SundayRoastDates: []string{},
	}

	const fallbackOpen = 12 * 60
	const fallbackClose = 21*60 + 30

	for _, date := range dates {
		dateStr := londontime.FormatDate(date)
		weekday := date.Weekday()
		isMonday := weekday == time.Monday

		var times []TimeSlot
		if !isMonday {
			for minute := fallbackOpen; minute < fallbackClose; minute += g.slotMinutes {
				times = append(times, TimeSlot{
					Time:      formatClock(minute),
					Available: true,
					Remaining: g.slotCapacity,
				})
			}
		}

		if isMonday {
			data.BlockedDates = append(data.BlockedDates, dateStr)
		}
		if weekday == time.Sunday {
			data.SundayRoastDates = append(data.SundayRoastDates, dateStr)
		}

		data.Days = append(data.Days, DayAvailability{
			Date:            dateStr,
			IsClosed:        isMonday,
			IsKitchenClosed: isMonday,
			Times:           times,
		})
	}

	return data
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	hourStr, minuteStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time format: %s", s)
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, fmt.Errorf("invalid hour: %w", err)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil {
		return 0, fmt.Errorf("invalid minute: %w", err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time out of range: %s", s)
	}
	return hour*60 + minute, nil
}

// formatClock renders minutes since midnight as "HH:MM".
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

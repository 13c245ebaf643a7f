package hoursapi

import (
	"encoding/json"
	"testing"
	"time"
)

func TestKitchenTriState(t *testing.T) {
	var day DayHours
	if err := json.Unmarshal([]byte(`{"opens":"16:00","closes":"22:00","kitchen":null}`), &day); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if day.Kitchen != nil {
		t.Error("null kitchen should unmarshal to nil")
	}
	if !day.Kitchen.ClosedForService() {
		t.Error("nil kitchen must count as closed for service")
	}

	if err := json.Unmarshal([]byte(`{"opens":"16:00","closes":"22:00","kitchen":{"is_closed":true}}`), &day); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !day.Kitchen.ClosedForService() {
		t.Error("is_closed kitchen must count as closed for service")
	}
	if day.Kitchen.HasRange() {
		t.Error("closed kitchen has no range")
	}

	day = DayHours{}
	if err := json.Unmarshal([]byte(`{"opens":"16:00","closes":"22:00","kitchen":{"opens":"18:00","closes":"21:00"}}`), &day); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if day.Kitchen.ClosedForService() {
		t.Error("kitchen with a range is open")
	}
	if !day.Kitchen.HasRange() {
		t.Error("kitchen with opens/closes should report a range")
	}
}

func TestDayHoursClosed(t *testing.T) {
	tests := []struct {
		name string
		day  DayHours
		want bool
	}{
		{"explicit closed flag", DayHours{Opens: "16:00", Closes: "22:00", IsClosed: true}, true},
		{"no opening time", DayHours{}, true},
		{"missing closes", DayHours{Opens: "16:00"}, true},
		{"open day", DayHours{Opens: "16:00", Closes: "22:00"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.day.Closed(); got != tt.want {
				t.Errorf("Closed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func testHours() *BusinessHours {
	return &BusinessHours{
		RegularHours: map[string]DayHours{
			"monday":  {IsClosed: true},
			"tuesday": {Opens: "16:00", Closes: "22:00", Kitchen: &Kitchen{Opens: "18:00", Closes: "21:00"}},
			"sunday":  {Opens: "12:00", Closes: "21:00", Kitchen: &Kitchen{Opens: "12:00", Closes: "17:00"}},
		},
		SpecialHours: []SpecialDay{
			{Date: "2025-09-09", Status: "closed", Note: "Private event"},
			{Date: "2025-09-16", Opens: "18:00", Kitchen: &Kitchen{Opens: "18:00", Closes: "20:00"}, Status: "modified"},
			{Date: "2025-09-23", Status: "modified", Note: "Quiz night"},
		},
	}
}

func TestEffectiveFor_NoOverride(t *testing.T) {
	hours := testHours()

	effective, special := hours.EffectiveFor("2025-09-02", time.Tuesday)
	if special != nil {
		t.Error("expected no special day")
	}
	if effective.Opens != "16:00" || effective.Closes != "22:00" {
		t.Errorf("unexpected effective hours: %+v", effective)
	}
}

func TestEffectiveFor_ClosedOverride(t *testing.T) {
	hours := testHours()

	effective, special := hours.EffectiveFor("2025-09-09", time.Tuesday)
	if special == nil {
		t.Fatal("expected special day")
	}
	if !effective.IsClosed {
		t.Error("closed status must mark the day closed")
	}
	if special.Annotation() != "Private event" {
		t.Errorf("annotation = %q", special.Annotation())
	}
}

func TestEffectiveFor_PartialOverrideFallsBack(t *testing.T) {
	hours := testHours()

	// Override sets a late open but no close: closes falls back to the
	// regular entry, kitchen comes from the override alone.
	effective, special := hours.EffectiveFor("2025-09-16", time.Tuesday)
	if special == nil {
		t.Fatal("expected special day")
	}
	if effective.Opens != "18:00" {
		t.Errorf("opens = %q, want overridden 18:00", effective.Opens)
	}
	if effective.Closes != "22:00" {
		t.Errorf("closes = %q, want fallback 22:00", effective.Closes)
	}
	if !effective.Kitchen.HasRange() || effective.Kitchen.Closes != "20:00" {
		t.Errorf("kitchen = %+v, want override range", effective.Kitchen)
	}
}

func TestEffectiveFor_OverrideWithoutKitchenClosesIt(t *testing.T) {
	hours := testHours()

	effective, special := hours.EffectiveFor("2025-09-23", time.Tuesday)
	if special == nil {
		t.Fatal("expected special day")
	}
	if !effective.Kitchen.ClosedForService() {
		t.Error("override without a kitchen entry must close the kitchen")
	}
	if effective.Closed() {
		t.Error("venue itself stays open on a modified day")
	}
}

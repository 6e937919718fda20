package timezone_test

import (
	"testing"
	"time"

	"skynest/shared/constant"
	"skynest/shared/timezone"
)

func TestNowAndLocation(t *testing.T) {
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	if timezone.GetLocation() == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestToAppTime(t *testing.T) {
	utcTime := time.Now().UTC()
	appTime := timezone.ToAppTime(utcTime)

	if !appTime.Equal(utcTime) {
		t.Error("expected converted time to represent the same instant")
	}

	if appTime.Location() != timezone.GetLocation() {
		t.Error("expected converted time to carry the app location")
	}
}

func TestParseAndFormat(t *testing.T) {
	parsed, err := timezone.Parse(constant.DateOnlyLayout, "2026-01-10")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if parsed.IsZero() {
		t.Error("Parse() returned a zero time")
	}

	formatted := timezone.Format(parsed, constant.DateOnlyLayout)
	if formatted != "2026-01-10" {
		t.Errorf("expected 2026-01-10, got %s", formatted)
	}

	if _, err := timezone.Parse(constant.DateOnlyLayout, "not-a-date"); err == nil {
		t.Error("expected Parse() to fail for garbage input")
	}
}

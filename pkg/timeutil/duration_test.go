package timeutil

import (
	"testing"
	"time"
)

func TestParseIntervalDefault(t *testing.T) {
	dur, err := ParseInterval("", DefaultRotate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != 15*time.Second {
		t.Fatalf("expected 15s, got %v", dur)
	}
}

func TestParseIntervalComposite(t *testing.T) {
	dur, err := ParseInterval("1m30s", DefaultIdle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != 90*time.Second {
		t.Fatalf("expected 90s, got %v", dur)
	}
	if label := FormatInterval(dur); label != "1m30s" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseIntervalAcceptsGoDurations(t *testing.T) {
	// viper defaults are written with time.Duration.String.
	dur, err := ParseInterval(DefaultIdle.String(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != DefaultIdle {
		t.Fatalf("expected %v, got %v", DefaultIdle, dur)
	}
}

func TestParseIntervalInvalid(t *testing.T) {
	for _, in := range []string{"noop", "5 parsecs", "0s"} {
		if _, err := ParseInterval(in, DefaultIdle); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

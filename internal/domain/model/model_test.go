package model

import (
	"testing"
	"time"
)

// ---- Severity tests ----

func TestSeverityFromCode_KnownCodes(t *testing.T) {
	tests := []struct {
		code  string
		want  Severity
		label string
	}{
		{"0", SeverityUnclassified, "Not classified"},
		{"1", SeverityInfo, "Information"},
		{"2", SeverityWarning, "Warning"},
		{"3", SeverityAverage, "Average"},
		{"4", SeverityHigh, "High"},
		{"5", SeverityDisaster, "Disaster"},
	}

	seen := make(map[string]bool)
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, ok := SeverityFromCode(tt.code)
			if !ok {
				t.Fatalf("SeverityFromCode(%q) reported unknown", tt.code)
			}
			if got != tt.want {
				t.Errorf("SeverityFromCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
			if got.String() != tt.label {
				t.Errorf("label = %q, want %q", got.String(), tt.label)
			}
		})
		if seen[tt.label] {
			t.Errorf("label %q is not distinct", tt.label)
		}
		seen[tt.label] = true
	}
}

func TestSeverityFromCode_Unknown(t *testing.T) {
	for _, code := range []string{"6", "-1", "", "high", "10"} {
		got, ok := SeverityFromCode(code)
		if ok {
			t.Errorf("SeverityFromCode(%q) expected unknown", code)
		}
		if got != SeverityUnknown {
			t.Errorf("SeverityFromCode(%q) = %v, want Unknown", code, got)
		}
		if got.String() != "Unknown" {
			t.Errorf("label = %q, want Unknown", got.String())
		}
	}
}

func TestSeverityFromCode_Stable(t *testing.T) {
	a, _ := SeverityFromCode("4")
	b, _ := SeverityFromCode("4")
	if a != b {
		t.Error("expected repeated mapping to be identical")
	}
}

// ---- Alert tests ----

func TestAlert_Started(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	a := Alert{StartedAt: ts}
	want := ts.Local().Format("2006-01-02 15:04:05")
	if a.Started() != want {
		t.Errorf("Started() = %q, want %q", a.Started(), want)
	}
}

// ---- Maintenance tests ----

func TestNewActiveInterval(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 500, time.UTC)
	iv, err := NewActiveInterval(now, 3600)
	if err != nil {
		t.Fatalf("NewActiveInterval: %v", err)
	}
	if !iv.Since.Equal(now.Truncate(time.Second)) {
		t.Errorf("Since = %v, want %v", iv.Since, now.Truncate(time.Second))
	}
	if iv.Seconds() != 3600 {
		t.Errorf("Seconds() = %d, want 3600", iv.Seconds())
	}
}

func TestNewActiveInterval_RejectsNonPositive(t *testing.T) {
	for _, d := range []int{0, -60} {
		if _, err := NewActiveInterval(time.Now(), d); err == nil {
			t.Errorf("expected error for duration %d", d)
		}
	}
}

func TestDurationOptions(t *testing.T) {
	opts := DurationOptions()
	wantSeconds := []int{300, 900, 1800, 3600, 7200, 14400}
	if len(opts) != len(wantSeconds) {
		t.Fatalf("expected %d options, got %d", len(wantSeconds), len(opts))
	}
	for i, s := range wantSeconds {
		if opts[i].Seconds != s {
			t.Errorf("option %d seconds = %d, want %d", i, opts[i].Seconds, s)
		}
	}

	// mutating the copy must not affect the menu
	opts[0].Label = "changed"
	if DurationOptions()[0].Label != "5 minutes" {
		t.Error("DurationOptions returned shared slice")
	}
}

func TestLookupDuration(t *testing.T) {
	d, ok := LookupDuration(3600)
	if !ok || d.Label != "1 hour" {
		t.Errorf("LookupDuration(3600) = %+v, %v", d, ok)
	}
	if _, ok := LookupDuration(42); ok {
		t.Error("expected 42 seconds to be absent from the menu")
	}
}

// ---- Form stage tests ----

func TestNextFormStage(t *testing.T) {
	tests := []struct {
		action  string
		want    FormStage
		wantErr bool
	}{
		{ActionWindowSelect, FormRendered, false},
		{ActionDurationSelect, FormRendered, false},
		{ActionActivate, FormActivated, false},
		{ActionCancel, FormCancelled, false},
		{"bogus", FormRendered, true},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			got, err := NextFormStage(FormRendered, tt.action)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("stage = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNextFormStage_TerminalIsFinal(t *testing.T) {
	for _, s := range []FormStage{FormActivated, FormCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
		if _, err := NextFormStage(s, ActionActivate); err == nil {
			t.Errorf("expected error transitioning from %s", s)
		}
	}
	if FormRendered.IsTerminal() {
		t.Error("rendered should not be terminal")
	}
}

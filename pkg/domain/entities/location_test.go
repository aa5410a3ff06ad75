package entities

import (
	"errors"
	"testing"
)

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation("CC-01-05-03")
	if err != nil {
		t.Fatalf("Expected valid location to parse: %v", err)
	}

	if loc.ZonePrefix != "CC" || loc.Row != "01" || loc.Column != "05" || loc.Level != "03" {
		t.Errorf("Unexpected segments: %+v", loc)
	}
	if loc.ColumnIndex() != 5 {
		t.Errorf("Expected column 5, got %d", loc.ColumnIndex())
	}
	if loc.LevelIndex() != 3 {
		t.Errorf("Expected level 3, got %d", loc.LevelIndex())
	}
	if loc.String() != "CC-01-05-03" {
		t.Errorf("Expected raw form preserved, got %s", loc.String())
	}
}

func TestParseLocation_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"three segments", "CC-01-02"},
		{"no delimiter", "CC010201"},
		{"empty segment", "CC--02-01"},
		{"non-numeric column", "CC-01-AB-01"},
		{"non-numeric level", "CC-01-02-X"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLocation(tc.raw)
			if err == nil {
				t.Fatalf("Expected error for %q, but got none", tc.raw)
			}
			if !errors.Is(err, ErrInvalidLocation) {
				t.Errorf("Expected ErrInvalidLocation, got %v", err)
			}
		})
	}
}

func TestParseLocation_ExtraSegmentsIgnored(t *testing.T) {
	loc, err := ParseLocation(" CC-02-03-11-B ")
	if err != nil {
		t.Fatalf("Expected location with extra segment to parse: %v", err)
	}
	if loc.Raw != "CC-02-03-11-B" {
		t.Errorf("Expected trimmed raw, got %q", loc.Raw)
	}
	if loc.LevelIndex() != 11 {
		t.Errorf("Expected level 11, got %d", loc.LevelIndex())
	}
}

func TestIsEasyAccess(t *testing.T) {
	testCases := []struct {
		raw      string
		expected bool
	}{
		{"CC-01-02-01", true},
		{"CC-01-02-11", true},
		{"CC-01-02-12", true},
		{"CC-01-02-02", false},
		{"CC-01-02-03", false},
		{"CC-01-02-13", false},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			loc, err := ParseLocation(tc.raw)
			if err != nil {
				t.Fatalf("Failed to parse %s: %v", tc.raw, err)
			}
			if got := loc.IsEasyAccess(DefaultEasyAccessLevels); got != tc.expected {
				t.Errorf("IsEasyAccess(%s) = %v, expected %v", tc.raw, got, tc.expected)
			}
		})
	}

	if IsEasyAccess(1, []int{2, 3}) {
		t.Error("Expected custom level set to exclude level 1")
	}
}

func TestZoneMatches(t *testing.T) {
	if !ZoneMatches("CC-01-02-01", "CC") {
		t.Error("Expected CC prefix to match")
	}
	if ZoneMatches("cc-01-02-01", "CC") {
		t.Error("Expected prefix match to be case-sensitive")
	}
	if ZoneMatches("DC-01-02-01", "CC") {
		t.Error("Expected DC location not to match CC")
	}
	if ZoneMatches("XCC-01-02-01", "CC") {
		t.Error("Expected prefix to be anchored at position 0")
	}
}

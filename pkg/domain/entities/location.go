package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// LocationDelimiter separates the segments of a location code
const LocationDelimiter = "-"

// ErrInvalidLocation is returned when a raw location cannot be parsed
var ErrInvalidLocation = errors.New("invalid location")

// DefaultEasyAccessLevels are the shelf levels reachable without a ladder or reach truck
var DefaultEasyAccessLevels = []int{1, 11, 12}

// LocationCode is a parsed storage location in zone-row-column-level form, e.g. "CC-01-02-01"
type LocationCode struct {
	ZonePrefix string
	Row        string
	Column     string
	Level      string
	Raw        string

	column int
	level  int
}

// ParseLocation parses a raw location code. Segments beyond the fourth are ignored.
func ParseLocation(raw string) (LocationCode, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, LocationDelimiter)
	if len(parts) < 4 {
		return LocationCode{}, fmt.Errorf("%w: %q has %d segments, expected 4", ErrInvalidLocation, raw, len(parts))
	}

	for i, part := range parts[:4] {
		parts[i] = strings.TrimSpace(part)
		if parts[i] == "" {
			return LocationCode{}, fmt.Errorf("%w: %q has an empty segment", ErrInvalidLocation, raw)
		}
	}

	column, err := strconv.Atoi(parts[2])
	if err != nil {
		return LocationCode{}, fmt.Errorf("%w: %q column %q is not numeric", ErrInvalidLocation, raw, parts[2])
	}
	level, err := strconv.Atoi(parts[3])
	if err != nil {
		return LocationCode{}, fmt.Errorf("%w: %q level %q is not numeric", ErrInvalidLocation, raw, parts[3])
	}

	return LocationCode{
		ZonePrefix: parts[0],
		Row:        parts[1],
		Column:     parts[2],
		Level:      parts[3],
		Raw:        raw,
		column:     column,
		level:      level,
	}, nil
}

// ColumnIndex returns the numeric column; "05" is 5
func (l LocationCode) ColumnIndex() int {
	return l.column
}

// LevelIndex returns the numeric level
func (l LocationCode) LevelIndex() int {
	return l.level
}

// IsEasyAccess reports whether the location's level is one of easyLevels
func (l LocationCode) IsEasyAccess(easyLevels []int) bool {
	return IsEasyAccess(l.level, easyLevels)
}

// String returns the location as it appeared in the source
func (l LocationCode) String() string {
	return l.Raw
}

// IsEasyAccess reports whether level is a member of easyLevels
func IsEasyAccess(level int, easyLevels []int) bool {
	for _, easy := range easyLevels {
		if level == easy {
			return true
		}
	}
	return false
}

// ZoneMatches reports whether the raw location starts with the required prefix (case-sensitive)
func ZoneMatches(raw, requiredPrefix string) bool {
	return strings.HasPrefix(raw, requiredPrefix)
}

package slotting

import (
	"fmt"
	"strings"

	"github.com/vsinha/slotting/pkg/domain/entities"
)

// SummarizeLocations renders up to limit locations as "location(qty)" joined
// by ", ". When locations are omitted the suffix format is appended with the
// omitted count. A limit of 0 lists every location.
func SummarizeLocations(locations []entities.LocationStock, limit int, suffixFormat string) string {
	shown := locations
	if limit > 0 && len(locations) > limit {
		shown = locations[:limit]
	}

	parts := make([]string, len(shown))
	for i, stock := range shown {
		parts[i] = stock.String()
	}
	summary := strings.Join(parts, ", ")

	if omitted := len(locations) - len(shown); omitted > 0 {
		summary += fmt.Sprintf(suffixFormat, omitted)
	}
	return summary
}

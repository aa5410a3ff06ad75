package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Category is one of the slotting report lists
type Category int

const (
	MoveToFront Category = iota
	MoveFromFront
	ZeroDemandEasyAccess
	FullRanking
)

// Categories lists every category in report order
var Categories = []Category{MoveToFront, MoveFromFront, ZeroDemandEasyAccess, FullRanking}

// String method for Category enum
func (c Category) String() string {
	switch c {
	case MoveToFront:
		return "MoveToFront"
	case MoveFromFront:
		return "MoveFromFront"
	case ZeroDemandEasyAccess:
		return "ZeroDemandEasyAccess"
	case FullRanking:
		return "FullRanking"
	default:
		return "Unknown"
	}
}

// Title is the human-readable heading used for sheets and sections
func (c Category) Title() string {
	switch c {
	case MoveToFront:
		return "Move to front"
	case MoveFromFront:
		return "Move from front"
	case ZeroDemandEasyAccess:
		return "Zero demand in easy access"
	case FullRanking:
		return "Demand ranking"
	default:
		return "Unknown"
	}
}

// Reason is the fixed explanation attached to every record of the category
func (c Category) Reason() string {
	switch c {
	case MoveToFront:
		return "High demand stored far from the pick front"
	case MoveFromFront:
		return "Low demand occupying a front column"
	case ZeroDemandEasyAccess:
		return "No recent outbound but holds easy-access levels"
	case FullRanking:
		return "Reference ranking by outbound quantity"
	default:
		return ""
	}
}

// ParseCategory resolves a category from its String form (case-insensitive match on the enum name)
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(c.String(), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return 0, false
}

// RankedProduct is one line of a category list
type RankedProduct struct {
	Rank            int                 `json:"rank"`
	ProductCode     ProductCode         `json:"product_code"`
	ProductName     string              `json:"product_name"`
	SalesQuantity   decimal.Decimal     `json:"sales_quantity"`
	TotalQuantity   decimal.Decimal     `json:"total_quantity"`
	MinColumn       int                 `json:"min_column"`
	LocationCount   int                 `json:"location_count"`
	LocationSummary string              `json:"location_summary"`
	Reason          string              `json:"reason"`
	BoxWeight       decimal.NullDecimal `json:"box_weight"`
	BoxesOnHand     decimal.NullDecimal `json:"boxes_on_hand"`
}

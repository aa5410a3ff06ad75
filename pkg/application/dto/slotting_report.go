package dto

import (
	"time"

	"github.com/vsinha/slotting/pkg/domain/entities"
)

// SlottingReport contains the complete output of a slotting run
type SlottingReport struct {
	Metadata             RunMetadata              `json:"metadata"`
	MoveToFront          []entities.RankedProduct `json:"move_to_front"`
	MoveFromFront        []entities.RankedProduct `json:"move_from_front"`
	ZeroDemandEasyAccess []entities.RankedProduct `json:"zero_demand_easy_access"`
	FullRanking          []entities.RankedProduct `json:"full_ranking"`
	Diagnostics          Diagnostics              `json:"diagnostics"`
}

// Category returns the ranked list for a category
func (r *SlottingReport) Category(category entities.Category) []entities.RankedProduct {
	switch category {
	case entities.MoveToFront:
		return r.MoveToFront
	case entities.MoveFromFront:
		return r.MoveFromFront
	case entities.ZeroDemandEasyAccess:
		return r.ZeroDemandEasyAccess
	case entities.FullRanking:
		return r.FullRanking
	default:
		return nil
	}
}

// RunMetadata describes one invocation
type RunMetadata struct {
	RunID         string            `json:"run_id"`
	GeneratedAt   time.Time         `json:"generated_at"`
	Elapsed       time.Duration     `json:"elapsed"`
	ChannelFilter string            `json:"channel_filter"`
	ZonePrefix    string            `json:"zone_prefix"`
	InputFiles    map[string]string `json:"input_files,omitempty"`
}

// Diagnostics counts rows that did not take part in the classification, by reason
type Diagnostics struct {
	InventoryRows    int            `json:"inventory_rows"`
	InventoryDropped map[string]int `json:"inventory_dropped"`
	SalesRows        int            `json:"sales_rows"`
	SalesDropped     map[string]int `json:"sales_dropped"`
	Products         int            `json:"products"`
	DemandProducts   int            `json:"demand_products"`
	MasterEnriched   int            `json:"master_enriched"`
}

package advisory

import (
	"fmt"
	"strconv"
)

// ProcessingDays is added to both ends of every regional transit estimate.
const ProcessingDays = 2

type region struct {
	Name     string
	From, To int
	Min, Max int
}

var regions = []region{
	{Name: "East", From: 10000, To: 29999, Min: 1, Max: 3},
	{Name: "Central", From: 30000, To: 69999, Min: 2, Max: 4},
	{Name: "West", From: 70000, To: 99999, Min: 3, Max: 5},
}

// defaultETA applies to unknown ZIPs and already includes processing.
var defaultETA = ETA{Region: "Default", MinDays: 4, MaxDays: 7}

// ETA is a delivery estimate in days.
type ETA struct {
	ZIP     string `json:"zip,omitempty"`
	Region  string `json:"region"`
	MinDays int    `json:"min_days"`
	MaxDays int    `json:"max_days"`
}

func (e ETA) String() string {
	return fmt.Sprintf("%d-%d days", e.MinDays, e.MaxDays)
}

// EstimateETA maps zip to a shipping region. Unknown, malformed or empty ZIPs
// get the default range.
func EstimateETA(zip string) ETA {
	n, err := strconv.Atoi(zip)
	if err != nil {
		return withZIP(defaultETA, zip)
	}
	for _, r := range regions {
		if n >= r.From && n <= r.To {
			return ETA{
				ZIP:     zip,
				Region:  r.Name,
				MinDays: r.Min + ProcessingDays,
				MaxDays: r.Max + ProcessingDays,
			}
		}
	}
	return withZIP(defaultETA, zip)
}

func withZIP(e ETA, zip string) ETA {
	e.ZIP = zip
	return e
}

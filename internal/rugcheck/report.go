package rugcheck

import "sort"

// RiskFlag is a single risk finding attached to a token report
type RiskFlag struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       string `json:"level"`
	Score       int    `json:"score,omitempty"`
}

// Holder is a single entry in a report's top holder list
type Holder struct {
	Address string  `json:"address"`
	Pct     float64 `json:"pct"`
	Amount  float64 `json:"uiAmount,omitempty"`
	Insider bool    `json:"insider,omitempty"`
}

// Report is the token risk report returned by the API
type Report struct {
	Mint       string     `json:"mint,omitempty"`
	Creator    string     `json:"creator,omitempty"`
	Risks      []RiskFlag `json:"risks"`
	TopHolders []Holder   `json:"topHolders"`
	Rugged     bool       `json:"rugged,omitempty"`
	Score      int        `json:"score,omitempty"`
}

// TopHolderConcentration returns the combined percentage held by the five
// largest holders, excluding the given pool address. Returns 0 when the
// report has no holder data.
func (r *Report) TopHolderConcentration(excludeAddr string) float64 {
	if r == nil || len(r.TopHolders) == 0 {
		return 0
	}

	holders := make([]Holder, 0, len(r.TopHolders))
	for _, h := range r.TopHolders {
		if h.Address == excludeAddr {
			continue
		}
		holders = append(holders, h)
	}

	sort.Slice(holders, func(i, j int) bool {
		return holders[i].Pct > holders[j].Pct
	})

	if len(holders) > 5 {
		holders = holders[:5]
	}

	total := 0.0
	for _, h := range holders {
		total += h.Pct
	}
	return total
}

package rugcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const poolAddr = "POOLADDR11111111111111111111111111111111111"

func TestTopHolderConcentrationTakesLargestFive(t *testing.T) {
	report := &Report{
		TopHolders: []Holder{
			{Address: "a", Pct: 1},
			{Address: "b", Pct: 9},
			{Address: "c", Pct: 8},
			{Address: "d", Pct: 7},
			{Address: "e", Pct: 6},
			{Address: "f", Pct: 5},
			{Address: "g", Pct: 2},
		},
	}

	// Top five of 9+8+7+6+5, the 2% and 1% tails are dropped
	assert.InDelta(t, 35.0, report.TopHolderConcentration(poolAddr), 0.001)
}

func TestTopHolderConcentrationExcludesPool(t *testing.T) {
	report := &Report{
		TopHolders: []Holder{
			{Address: poolAddr, Pct: 80},
			{Address: "a", Pct: 10},
			{Address: "b", Pct: 5},
		},
	}

	assert.InDelta(t, 15.0, report.TopHolderConcentration(poolAddr), 0.001)
}

func TestTopHolderConcentrationEmpty(t *testing.T) {
	assert.Equal(t, 0.0, (&Report{}).TopHolderConcentration(poolAddr))

	var nilReport *Report
	assert.Equal(t, 0.0, nilReport.TopHolderConcentration(poolAddr))
}

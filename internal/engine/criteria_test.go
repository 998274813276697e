package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"coin-alert-bot-go/internal/market"
	"coin-alert-bot-go/internal/rugcheck"
	"coin-alert-bot-go/internal/store"
)

const testPoolAddress = "POOLADDR11111111111111111111111111111111111"

func defaultEvaluator() *CriteriaEvaluator {
	return NewCriteriaEvaluator(CriteriaConfig{
		MinMarketCapGrowthPct: 15,
		MinBuyers:             10,
		MaxSellerBuyerRatio:   0.50,
		MaxTopHolderPct:       30,
		PoolAddress:           testPoolAddress,
	})
}

func passingRecord() *store.CoinRecord {
	return store.NewCoinRecord("mint1", "Token", "TKN", "", &market.Snapshot{MarketCap: 1000}, time.Now())
}

func passingSnapshot() *market.Snapshot {
	return &market.Snapshot{
		MarketCap: 1200,
		Buys:      20,
		Sells:     5,
		Price:     0.01,
	}
}

func passingReport() *rugcheck.Report {
	return &rugcheck.Report{
		TopHolders: []rugcheck.Holder{
			{Address: testPoolAddress, Pct: 60},
			{Address: "h1", Pct: 8},
			{Address: "h2", Pct: 7},
			{Address: "h3", Pct: 5},
			{Address: "h4", Pct: 3},
			{Address: "h5", Pct: 2},
		},
	}
}

func TestEvaluatePasses(t *testing.T) {
	ok, failed := defaultEvaluator().Evaluate(passingRecord(), passingSnapshot(), passingReport())
	assert.True(t, ok)
	assert.Empty(t, failed)
}

func TestGrowthMustExceedThreshold(t *testing.T) {
	e := defaultEvaluator()

	// Exactly at the threshold is not enough
	snap := passingSnapshot()
	snap.MarketCap = 1150
	ok, failed := e.Evaluate(passingRecord(), snap, passingReport())
	assert.False(t, ok)
	assert.Equal(t, CriterionMarketCapGrowth, failed)

	// Just above passes
	snap.MarketCap = 1150.01
	ok, _ = e.Evaluate(passingRecord(), snap, passingReport())
	assert.True(t, ok)
}

func TestGrowthRejectsMissingInitialMarketCap(t *testing.T) {
	record := passingRecord()
	record.Initial.MarketCap = 0

	ok, failed := defaultEvaluator().Evaluate(record, passingSnapshot(), passingReport())
	assert.False(t, ok)
	assert.Equal(t, CriterionMarketCapGrowth, failed)
}

func TestParticipationRequiresBuyers(t *testing.T) {
	snap := passingSnapshot()
	snap.Buys = 9
	snap.Sells = 0

	ok, failed := defaultEvaluator().Evaluate(passingRecord(), snap, passingReport())
	assert.False(t, ok)
	assert.Equal(t, CriterionParticipation, failed)
}

func TestParticipationSellerRatioBoundary(t *testing.T) {
	e := defaultEvaluator()

	// Ratio exactly at the limit fails
	snap := passingSnapshot()
	snap.Buys = 20
	snap.Sells = 10
	ok, failed := e.Evaluate(passingRecord(), snap, passingReport())
	assert.False(t, ok)
	assert.Equal(t, CriterionParticipation, failed)

	// Just under the limit passes
	snap.Sells = 9
	ok, _ = e.Evaluate(passingRecord(), snap, passingReport())
	assert.True(t, ok)
}

func TestTopHoldersExcludesPool(t *testing.T) {
	e := defaultEvaluator()

	// 60% pool holding is ignored; remaining top five sum to 25%
	ok, _ := e.Evaluate(passingRecord(), passingSnapshot(), passingReport())
	assert.True(t, ok)

	// Without the exclusion the same report would fail
	report := passingReport()
	report.TopHolders[0].Address = "whale"
	ok, failed := e.Evaluate(passingRecord(), passingSnapshot(), report)
	assert.False(t, ok)
	assert.Equal(t, CriterionTopHolders, failed)
}

func TestTopHoldersRejectsZeroConcentration(t *testing.T) {
	report := &rugcheck.Report{TopHolders: []rugcheck.Holder{}}

	ok, failed := defaultEvaluator().Evaluate(passingRecord(), passingSnapshot(), report)
	assert.False(t, ok)
	assert.Equal(t, CriterionTopHolders, failed)
}

func TestNilReportRejects(t *testing.T) {
	ok, failed := defaultEvaluator().Evaluate(passingRecord(), passingSnapshot(), nil)
	assert.False(t, ok)
	assert.Equal(t, CriterionTopHolders, failed)
}

func TestRiskFlagsAllowSingleKnownWarning(t *testing.T) {
	e := defaultEvaluator()

	report := passingReport()
	report.Risks = []rugcheck.RiskFlag{{
		Name:        "COPYCAT TOKEN",
		Description: "this token is using a verified tokens symbol",
		Level:       "WARN",
	}}

	ok, _ := e.Evaluate(passingRecord(), passingSnapshot(), report)
	assert.True(t, ok)
}

func TestRiskFlagsRejectUnknownWarning(t *testing.T) {
	report := passingReport()
	report.Risks = []rugcheck.RiskFlag{{
		Name:        "Mutable metadata",
		Description: "Token metadata can be changed by the owner",
		Level:       "warn",
	}}

	ok, failed := defaultEvaluator().Evaluate(passingRecord(), passingSnapshot(), report)
	assert.False(t, ok)
	assert.Equal(t, CriterionRiskAnalysis, failed)
}

func TestRiskFlagsRejectMultipleEvenIfAllowed(t *testing.T) {
	report := passingReport()
	report.Risks = []rugcheck.RiskFlag{
		AllowedWarnRisks[0],
		AllowedWarnRisks[1],
	}

	ok, failed := defaultEvaluator().Evaluate(passingRecord(), passingSnapshot(), report)
	assert.False(t, ok)
	assert.Equal(t, CriterionRiskAnalysis, failed)
}

func TestMarketConditionsMet(t *testing.T) {
	e := defaultEvaluator()

	assert.True(t, e.MarketConditionsMet(passingRecord(), passingSnapshot()))

	snap := passingSnapshot()
	snap.MarketCap = 1000
	assert.False(t, e.MarketConditionsMet(passingRecord(), snap))
}

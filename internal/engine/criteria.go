package engine

import (
	"strings"

	"coin-alert-bot-go/internal/market"
	"coin-alert-bot-go/internal/rugcheck"
	"coin-alert-bot-go/internal/store"
)

// Criterion names, used for reject logging and failure counters
const (
	CriterionMarketCapGrowth = "market_cap_growth"
	CriterionParticipation   = "participation"
	CriterionTopHolders      = "top_holders"
	CriterionRiskAnalysis    = "risk_analysis"
)

// AllowedWarnRisks are the only risk findings a token may carry and still
// pass, and only one of them at a time.
var AllowedWarnRisks = []rugcheck.RiskFlag{
	{
		Name:        "Copycat token",
		Description: "This token is using a verified tokens symbol",
		Level:       "warn",
	},
	{
		Name:        "Low amount of LP Providers",
		Description: "Only a few users are providing liquidity",
		Level:       "warn",
	},
}

// CriteriaConfig contains the entry-criteria thresholds
type CriteriaConfig struct {
	MinMarketCapGrowthPct float64
	MinBuyers             int
	MaxSellerBuyerRatio   float64
	MaxTopHolderPct       float64
	PoolAddress           string
}

// CriteriaEvaluator decides whether a watched token qualifies for an alert
type CriteriaEvaluator struct {
	config CriteriaConfig
}

// NewCriteriaEvaluator creates a criteria evaluator
func NewCriteriaEvaluator(config CriteriaConfig) *CriteriaEvaluator {
	return &CriteriaEvaluator{config: config}
}

// MarketConditionsMet checks the market-only criteria (growth and
// participation). It gates the risk report fetch so the report API is only
// hit for tokens that already look viable.
func (e *CriteriaEvaluator) MarketConditionsMet(record *store.CoinRecord, current *market.Snapshot) bool {
	return e.growthOK(record, current) && e.participationOK(current)
}

// Evaluate runs all entry criteria in order and short-circuits on the first
// failure. On failure it returns the name of the criterion that failed.
func (e *CriteriaEvaluator) Evaluate(record *store.CoinRecord, current *market.Snapshot, report *rugcheck.Report) (bool, string) {
	if !e.growthOK(record, current) {
		return false, CriterionMarketCapGrowth
	}
	if !e.participationOK(current) {
		return false, CriterionParticipation
	}
	if !e.topHoldersOK(report) {
		return false, CriterionTopHolders
	}
	if !e.riskFlagsOK(report) {
		return false, CriterionRiskAnalysis
	}
	return true, ""
}

func (e *CriteriaEvaluator) growthOK(record *store.CoinRecord, current *market.Snapshot) bool {
	if record == nil || current == nil {
		return false
	}
	growth, ok := current.MarketCapChange(record.Initial)
	if !ok {
		return false
	}
	return growth > e.config.MinMarketCapGrowthPct
}

func (e *CriteriaEvaluator) participationOK(current *market.Snapshot) bool {
	if current == nil {
		return false
	}
	if current.Buys < e.config.MinBuyers {
		return false
	}
	ratio := float64(current.Sells) / float64(current.Buys)
	return ratio < e.config.MaxSellerBuyerRatio
}

func (e *CriteriaEvaluator) topHoldersOK(report *rugcheck.Report) bool {
	if report == nil {
		return false
	}
	concentration := report.TopHolderConcentration(e.config.PoolAddress)
	if concentration <= 0 {
		return false
	}
	return concentration <= e.config.MaxTopHolderPct
}

func (e *CriteriaEvaluator) riskFlagsOK(report *rugcheck.Report) bool {
	if report == nil {
		return false
	}
	switch len(report.Risks) {
	case 0:
		return true
	case 1:
		return isAllowedRisk(report.Risks[0])
	default:
		return false
	}
}

func isAllowedRisk(risk rugcheck.RiskFlag) bool {
	for _, allowed := range AllowedWarnRisks {
		if strings.EqualFold(risk.Name, allowed.Name) &&
			strings.EqualFold(risk.Description, allowed.Description) &&
			strings.EqualFold(risk.Level, allowed.Level) {
			return true
		}
	}
	return false
}

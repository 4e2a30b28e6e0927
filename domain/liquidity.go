package domain

import "time"

type LiquidityPool struct {
	ID             string     `json:"id"`
	ReserveA       int64      `json:"reserve_a"`
	ReserveB       int64      `json:"reserve_b"`
	TotalLiquidity int64      `json:"total_liquidity"`
	FeeRate        float64    `json:"fee_rate"`
	IsProtected    bool       `json:"is_protected"`
	RiskScore      float64    `json:"risk_score"`
	ProtectedAt    *time.Time `json:"protected_at"`
}

func (p LiquidityPool) IsValid() bool {
	return p.ID != "" && p.ReserveA >= 0 && p.ReserveB >= 0 && p.TotalLiquidity >= 0 && p.FeeRate >= 0 && p.FeeRate < 1
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

func RiskLevelFor(score float64) RiskLevel {
	switch {
	case score < 30:
		return RiskLow
	case score < 60:
		return RiskMedium
	}
	return RiskHigh
}

// ProtectionMechanisms are applied together whenever a pool is protected.
var ProtectionMechanisms = []string{
	"Dynamic fee adjustment",
	"Impermanent loss insurance",
	"Large withdrawal rate limiting",
	"Price oracle cross-validation",
}

// FlashLoanPatterns are the suspicious patterns checked on every monitor scan.
var FlashLoanPatterns = []string{
	"Large flash loan borrow",
	"Rapid price manipulation",
	"Oracle price deviation",
	"Sandwich attack sequence",
}

// Countermeasures are applied when a monitor scan flags any pattern.
var Countermeasures = []string{
	"Pause large trades",
	"Increase slippage protection",
	"Enable transaction delay",
	"Alert liquidity providers",
}

type DetectedPattern struct {
	Name       string    `json:"name"`
	DetectedAt time.Time `json:"detected_at"`
}

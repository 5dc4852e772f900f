// Package scoring derives a customer's trust (aitbaar) score from their
// raw ledger history. The engine is a pure function: same transactions in,
// same score out, no clock and no storage.
package scoring

import (
	"math"

	"github.com/Maheenrz/smart-khata-ai/internal/domain/transaction"
)

const (
	// NeutralScore is returned for customers with no history.
	NeutralScore = 50

	// defaultDelayDays is the pessimistic assumption when no repaid
	// transaction carries a usable delay.
	defaultDelayDays = 30.0

	maxRateScore = 60.0
)

// Score converts a customer's full transaction history into a 0-100 trust
// score. Order of the input is irrelevant.
//
// Repayment rate contributes up to 60 points; repayment speed adds a bonus
// bucketed by average delay. A transaction flagged repaid without a repaid
// date still counts toward the rate but is skipped when averaging delays,
// so it carries no speed signal.
func Score(txns []transaction.Transaction) int {
	if len(txns) == 0 {
		return NeutralScore
	}

	total := len(txns)
	repaid := 0
	delaySum := 0.0
	delayCount := 0

	for _, t := range txns {
		if !t.IsRepaid {
			continue
		}
		repaid++
		if t.DateRepaid.Valid {
			days := t.DateRepaid.Time.Sub(t.DateGiven).Hours() / 24
			delaySum += math.Floor(days)
			delayCount++
		}
	}

	repaymentRate := float64(repaid) / float64(total)

	avgDelay := defaultDelayDays
	if delayCount > 0 {
		avgDelay = delaySum / float64(delayCount)
	}

	score := repaymentRate * maxRateScore
	score += speedBonus(avgDelay)

	return int(math.Round(math.Min(math.Max(score, 0), 100)))
}

// speedBonus rewards fast repayers. Buckets are checked in ascending
// order, first match wins.
func speedBonus(avgDelay float64) float64 {
	switch {
	case avgDelay <= 7:
		return 40
	case avgDelay <= 14:
		return 30
	case avgDelay <= 30:
		return 15
	default:
		return 0
	}
}

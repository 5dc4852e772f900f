// Package cashflow turns a shop's scored customers into an outstanding /
// at-risk / forecast view. Aggregate is pure: the reference time is an
// explicit parameter so a whole aggregation shares one "now" and results
// are reproducible in tests.
package cashflow

import (
	"math"
	"sort"
	"time"
)

const (
	// defaultDelayDays mirrors the scoring engine's pessimistic default
	// but is computed independently here, on purpose.
	defaultDelayDays = 30.0

	upcomingLimit = 5

	// shortageThreshold: warn when at-risk exposure exceeds this share of
	// total outstanding.
	shortageThreshold = 0.3

	seriouslyOverdueDays = -7
	badScoreCutoff       = 40
)

// Aggregate builds the shop-wide cashflow snapshot from scored customers
// at the given reference time. Customers with nothing unpaid contribute
// nothing at all.
func Aggregate(customers []ScoredCustomer, now time.Time) *Snapshot {
	snapshot := &Snapshot{
		CustomersAtRisk:     make([]AtRiskCustomer, 0),
		UpcomingCollections: make([]UpcomingCollection, 0),
	}

	for _, c := range customers {
		var amountDue float64
		oldestIdx := -1
		for i, t := range c.Transactions {
			if t.IsRepaid {
				continue
			}
			amountDue += t.Amount
			if oldestIdx == -1 || t.DateGiven.Before(c.Transactions[oldestIdx].DateGiven) {
				oldestIdx = i
			}
		}
		if oldestIdx == -1 {
			continue
		}

		snapshot.TotalOutstanding += amountDue

		// Average repayment delay from actual paid history; rows flagged
		// repaid without a date carry no signal and are skipped.
		var delaySum float64
		delayCount := 0
		for _, t := range c.Transactions {
			if t.IsRepaid && t.DateRepaid.Valid {
				delaySum += wholeDays(t.DateRepaid.Time.Sub(t.DateGiven))
				delayCount++
			}
		}
		avgDelay := defaultDelayDays
		if delayCount > 0 {
			avgDelay = delaySum / float64(delayCount)
		}

		oldest := c.Transactions[oldestIdx]
		daysOutstanding := int(wholeDays(now.Sub(oldest.DateGiven)))

		expectedDate := oldest.DateGiven.Add(time.Duration(avgDelay * 24 * float64(time.Hour)))
		daysUntilPayment := int(wholeDays(expectedDate.Sub(now)))

		snapshot.UpcomingCollections = append(snapshot.UpcomingCollections, UpcomingCollection{
			CustomerID:      c.ID.String(),
			CustomerName:    c.Name,
			AmountDue:       amountDue,
			DaysOutstanding: daysOutstanding,
			ExpectedInDays:  max(daysUntilPayment, 0),
			ExpectedDate:    expectedDate.Format("02 Jan 2006"),
			IsOverdue:       daysUntilPayment < 0,
			OverdueByDays:   max(-daysUntilPayment, 0),
		})

		seriouslyOverdue := daysUntilPayment < seriouslyOverdueDays
		badScore := c.Score < badScoreCutoff

		if seriouslyOverdue || badScore {
			snapshot.CustomersAtRisk = append(snapshot.CustomersAtRisk, AtRiskCustomer{
				CustomerID:       c.ID.String(),
				CustomerName:     c.Name,
				AmountDue:        amountDue,
				AitbaarScore:     c.Score,
				OverdueByDays:    max(-daysUntilPayment, 0),
				AvgRepaymentDays: int(math.Round(avgDelay)),
				RiskReason:       riskReason(seriouslyOverdue, badScore),
			})
		}
	}

	// Soonest expected first; at-risk by exposure, heaviest first. Both
	// sorts are stable so equal keys keep input order.
	sort.SliceStable(snapshot.UpcomingCollections, func(i, j int) bool {
		return snapshot.UpcomingCollections[i].ExpectedInDays < snapshot.UpcomingCollections[j].ExpectedInDays
	})
	sort.SliceStable(snapshot.CustomersAtRisk, func(i, j int) bool {
		return snapshot.CustomersAtRisk[i].AmountDue > snapshot.CustomersAtRisk[j].AmountDue
	})

	// at_risk_amount always covers the FULL at-risk list; only the
	// upcoming view is truncated.
	for _, c := range snapshot.CustomersAtRisk {
		snapshot.AtRiskAmount += c.AmountDue
	}
	if len(snapshot.UpcomingCollections) > upcomingLimit {
		snapshot.UpcomingCollections = snapshot.UpcomingCollections[:upcomingLimit]
	}

	if snapshot.TotalOutstanding > 0 {
		snapshot.ShortageWarning = snapshot.AtRiskAmount > shortageThreshold*snapshot.TotalOutstanding
	}

	return snapshot
}

func riskReason(seriouslyOverdue, badScore bool) string {
	switch {
	case seriouslyOverdue && badScore:
		return ReasonOverdueAndBadScore
	case seriouslyOverdue:
		return ReasonOverdue
	default:
		return ReasonBadScore
	}
}

// wholeDays truncates a duration to whole days, flooring toward minus
// infinity so a payment half a day late already counts as overdue.
func wholeDays(d time.Duration) float64 {
	return math.Floor(d.Hours() / 24)
}

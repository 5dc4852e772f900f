package cashflow_test

import (
	"database/sql"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Maheenrz/smart-khata-ai/internal/domain/cashflow"
	"github.com/Maheenrz/smart-khata-ai/internal/domain/transaction"
)

var now = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

func unpaid(amount float64, daysAgo int) transaction.Transaction {
	return transaction.Transaction{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Amount:     amount,
		Kind:       transaction.KindCredit,
		DateGiven:  now.AddDate(0, 0, -daysAgo),
		IsRepaid:   false,
	}
}

func repaid(amount float64, daysAgo, delayDays int) transaction.Transaction {
	given := now.AddDate(0, 0, -daysAgo)
	return transaction.Transaction{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Amount:     amount,
		Kind:       transaction.KindCredit,
		DateGiven:  given,
		DateRepaid: sql.NullTime{Time: given.AddDate(0, 0, delayDays), Valid: true},
		IsRepaid:   true,
	}
}

func TestAggregateEmpty(t *testing.T) {
	snap := cashflow.Aggregate(nil, now)

	if snap.TotalOutstanding != 0 || snap.AtRiskAmount != 0 || snap.ShortageWarning {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
	if len(snap.CustomersAtRisk) != 0 || len(snap.UpcomingCollections) != 0 {
		t.Fatalf("expected empty lists, got %+v", snap)
	}
}

func TestAggregateFullyPaidCustomerExcluded(t *testing.T) {
	customers := []cashflow.ScoredCustomer{{
		ID:           uuid.New(),
		Name:         "Salman Raza",
		Score:        95,
		Transactions: []transaction.Transaction{repaid(1000, 20, 3), repaid(500, 10, 2)},
	}}

	snap := cashflow.Aggregate(customers, now)

	if snap.TotalOutstanding != 0 {
		t.Fatalf("fully paid customer leaked into outstanding: %v", snap.TotalOutstanding)
	}
	if len(snap.UpcomingCollections) != 0 || len(snap.CustomersAtRisk) != 0 {
		t.Fatalf("fully paid customer appeared in output lists")
	}
}

func TestAggregateBadScoreNoHistory(t *testing.T) {
	// One unpaid 1000 given 10 days ago, no repaid history: avg delay
	// defaults to 30, expected in 20 days, flagged only for the poor
	// score.
	customers := []cashflow.ScoredCustomer{{
		ID:           uuid.New(),
		Name:         "Kamran Iqbal",
		Score:        35,
		Transactions: []transaction.Transaction{unpaid(1000, 10)},
	}}

	snap := cashflow.Aggregate(customers, now)

	if snap.TotalOutstanding != 1000 {
		t.Fatalf("expected outstanding 1000, got %v", snap.TotalOutstanding)
	}
	if len(snap.CustomersAtRisk) != 1 {
		t.Fatalf("expected 1 at-risk customer, got %d", len(snap.CustomersAtRisk))
	}
	risk := snap.CustomersAtRisk[0]
	if risk.RiskReason != cashflow.ReasonBadScore {
		t.Fatalf("expected reason %q, got %q", cashflow.ReasonBadScore, risk.RiskReason)
	}
	if risk.OverdueByDays != 0 {
		t.Fatalf("expected not overdue, got overdue_by_days=%d", risk.OverdueByDays)
	}

	if len(snap.UpcomingCollections) != 1 {
		t.Fatalf("expected 1 upcoming collection, got %d", len(snap.UpcomingCollections))
	}
	up := snap.UpcomingCollections[0]
	if up.ExpectedInDays != 20 {
		t.Fatalf("expected expected_in_days=20, got %d", up.ExpectedInDays)
	}
	if up.IsOverdue {
		t.Fatalf("expected not overdue")
	}
	if up.DaysOutstanding != 10 {
		t.Fatalf("expected days outstanding 10, got %d", up.DaysOutstanding)
	}
}

func TestAggregateSeriouslyOverdueAndBadScore(t *testing.T) {
	// Fast history (2-day delay) but the open credit is 40 days old:
	// expected 38 days ago → seriously overdue. Score below 40 too, so
	// the combined reason wins.
	customers := []cashflow.ScoredCustomer{{
		ID:    uuid.New(),
		Name:  "Imran Butt",
		Score: 20,
		Transactions: []transaction.Transaction{
			repaid(300, 60, 2),
			unpaid(2000, 40),
		},
	}}

	snap := cashflow.Aggregate(customers, now)

	if len(snap.CustomersAtRisk) != 1 {
		t.Fatalf("expected 1 at-risk customer, got %d", len(snap.CustomersAtRisk))
	}
	risk := snap.CustomersAtRisk[0]
	if risk.RiskReason != cashflow.ReasonOverdueAndBadScore {
		t.Fatalf("expected combined reason, got %q", risk.RiskReason)
	}
	if risk.OverdueByDays != 38 {
		t.Fatalf("expected overdue_by_days=38, got %d", risk.OverdueByDays)
	}
	if risk.AvgRepaymentDays != 2 {
		t.Fatalf("expected avg_repayment_days=2, got %d", risk.AvgRepaymentDays)
	}

	up := snap.UpcomingCollections[0]
	if !up.IsOverdue || up.OverdueByDays != 38 || up.ExpectedInDays != 0 {
		t.Fatalf("unexpected upcoming record: %+v", up)
	}
}

func TestAggregateOverdueOnlyReason(t *testing.T) {
	customers := []cashflow.ScoredCustomer{{
		ID:    uuid.New(),
		Name:  "Usman Ali",
		Score: 80,
		Transactions: []transaction.Transaction{
			repaid(300, 60, 2),
			unpaid(500, 30),
		},
	}}

	snap := cashflow.Aggregate(customers, now)

	if len(snap.CustomersAtRisk) != 1 {
		t.Fatalf("expected 1 at-risk customer, got %d", len(snap.CustomersAtRisk))
	}
	if got := snap.CustomersAtRisk[0].RiskReason; got != cashflow.ReasonOverdue {
		t.Fatalf("expected reason %q, got %q", cashflow.ReasonOverdue, got)
	}
}

func TestAggregateTopFiveTruncationKeepsFullRiskAmount(t *testing.T) {
	// Seven customers, all with bad scores. The upcoming view keeps the
	// five soonest; at_risk_amount still covers all seven.
	customers := make([]cashflow.ScoredCustomer, 0, 7)
	for i := 0; i < 7; i++ {
		customers = append(customers, cashflow.ScoredCustomer{
			ID:           uuid.New(),
			Name:         fmt.Sprintf("Customer %d", i),
			Score:        10,
			Transactions: []transaction.Transaction{unpaid(100, i+1)},
		})
	}

	snap := cashflow.Aggregate(customers, now)

	if len(snap.UpcomingCollections) != 5 {
		t.Fatalf("expected 5 upcoming collections, got %d", len(snap.UpcomingCollections))
	}
	if len(snap.CustomersAtRisk) != 7 {
		t.Fatalf("expected all 7 at risk, got %d", len(snap.CustomersAtRisk))
	}
	if snap.AtRiskAmount != 700 {
		t.Fatalf("truncation leaked into at_risk_amount: %v", snap.AtRiskAmount)
	}
	if snap.TotalOutstanding != 700 {
		t.Fatalf("expected outstanding 700, got %v", snap.TotalOutstanding)
	}
}

func TestAggregateUpcomingSortedSoonestFirst(t *testing.T) {
	mk := func(name string, daysAgo int) cashflow.ScoredCustomer {
		return cashflow.ScoredCustomer{
			ID:           uuid.New(),
			Name:         name,
			Score:        90,
			Transactions: []transaction.Transaction{unpaid(100, daysAgo)},
		}
	}
	// Default 30-day delay: expected_in_days = 30 - daysAgo.
	customers := []cashflow.ScoredCustomer{mk("late", 5), mk("soon", 25), mk("middle", 15)}

	snap := cashflow.Aggregate(customers, now)

	var names []string
	for _, u := range snap.UpcomingCollections {
		names = append(names, u.CustomerName)
	}
	if !reflect.DeepEqual(names, []string{"soon", "middle", "late"}) {
		t.Fatalf("unexpected upcoming order: %v", names)
	}
}

func TestAggregateAtRiskSortedByAmount(t *testing.T) {
	mk := func(name string, amount float64) cashflow.ScoredCustomer {
		return cashflow.ScoredCustomer{
			ID:           uuid.New(),
			Name:         name,
			Score:        10,
			Transactions: []transaction.Transaction{unpaid(amount, 1)},
		}
	}
	customers := []cashflow.ScoredCustomer{mk("small", 100), mk("big", 5000), mk("medium", 700)}

	snap := cashflow.Aggregate(customers, now)

	var names []string
	for _, c := range snap.CustomersAtRisk {
		names = append(names, c.CustomerName)
	}
	if !reflect.DeepEqual(names, []string{"big", "medium", "small"}) {
		t.Fatalf("unexpected at-risk order: %v", names)
	}
}

func TestAggregateShortageWarningBoundary(t *testing.T) {
	// at-risk must be strictly greater than 30% of outstanding.
	mk := func(score int, amount float64) cashflow.ScoredCustomer {
		return cashflow.ScoredCustomer{
			ID:           uuid.New(),
			Name:         "c",
			Score:        score,
			Transactions: []transaction.Transaction{unpaid(amount, 1)},
		}
	}

	exactly := cashflow.Aggregate([]cashflow.ScoredCustomer{mk(10, 300), mk(90, 700)}, now)
	if exactly.ShortageWarning {
		t.Fatalf("300 of 1000 is not strictly above 30%%, warning must be off")
	}

	above := cashflow.Aggregate([]cashflow.ScoredCustomer{mk(10, 301), mk(90, 699)}, now)
	if !above.ShortageWarning {
		t.Fatalf("301 of 1000 must trigger the shortage warning")
	}
}

func TestAggregateDeterministic(t *testing.T) {
	customers := []cashflow.ScoredCustomer{{
		ID:    uuid.New(),
		Name:  "Bilal Sheikh",
		Score: 55,
		Transactions: []transaction.Transaction{
			repaid(200, 30, 10),
			unpaid(900, 12),
		},
	}}

	first := cashflow.Aggregate(customers, now)
	second := cashflow.Aggregate(customers, now)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different snapshots")
	}
}

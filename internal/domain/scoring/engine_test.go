package scoring_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Maheenrz/smart-khata-ai/internal/domain/scoring"
	"github.com/Maheenrz/smart-khata-ai/internal/domain/transaction"
)

var baseDate = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func txn(delayDays int, repaid bool) transaction.Transaction {
	t := transaction.Transaction{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Amount:     500,
		Kind:       transaction.KindCredit,
		DateGiven:  baseDate,
		IsRepaid:   repaid,
	}
	if repaid {
		t.DateRepaid = sql.NullTime{Time: baseDate.AddDate(0, 0, delayDays), Valid: true}
	}
	return t
}

func TestScoreEmptyHistoryIsNeutral(t *testing.T) {
	if got := scoring.Score(nil); got != 50 {
		t.Fatalf("expected neutral score 50, got %d", got)
	}
	if got := scoring.Score([]transaction.Transaction{}); got != 50 {
		t.Fatalf("expected neutral score 50, got %d", got)
	}
}

func TestScorePerfectFastRepayer(t *testing.T) {
	txns := []transaction.Transaction{txn(2, true), txn(5, true), txn(7, true)}
	if got := scoring.Score(txns); got != 100 {
		t.Fatalf("expected 100 for full repayment within 7 days, got %d", got)
	}
}

func TestScoreAllUnpaid(t *testing.T) {
	// 4 unpaid, 0 repaid: base = 0. avg_delay defaults to 30, which lands
	// in the <=30 bucket, so the bonus is the only contribution.
	txns := []transaction.Transaction{txn(0, false), txn(0, false), txn(0, false), txn(0, false)}
	got := scoring.Score(txns)
	want := 15
	if got != want {
		t.Fatalf("expected %d for all-unpaid history, got %d", want, got)
	}
}

func TestScoreBuckets(t *testing.T) {
	tests := []struct {
		name  string
		delay int
		want  int
	}{
		{"within a week", 7, 100},
		{"within two weeks", 14, 90},
		{"within a month", 30, 75},
		{"slower than a month", 45, 60},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := scoring.Score([]transaction.Transaction{txn(tc.delay, true)})
			if got != tc.want {
				t.Fatalf("delay %d days: expected %d, got %d", tc.delay, tc.want, got)
			}
		})
	}
}

func TestScoreMonotonicInDelay(t *testing.T) {
	fast := []transaction.Transaction{txn(3, true), txn(0, false)}
	slow := []transaction.Transaction{txn(20, true), txn(0, false)}

	if scoring.Score(fast) < scoring.Score(slow) {
		t.Fatalf("faster repayer scored lower: fast=%d slow=%d",
			scoring.Score(fast), scoring.Score(slow))
	}
}

func TestScoreRepaidWithoutDateSkippedForDelay(t *testing.T) {
	// Malformed row: flagged repaid but no repaid date. It counts toward
	// the repayment rate but contributes no delay sample, so the delay
	// falls back to the pessimistic 30-day default.
	malformed := transaction.Transaction{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Amount:     500,
		Kind:       transaction.KindCredit,
		DateGiven:  baseDate,
		IsRepaid:   true,
	}

	got := scoring.Score([]transaction.Transaction{malformed})
	// rate 1.0 → 60 points; default 30-day delay → +15
	if got != 75 {
		t.Fatalf("expected 75 for repaid-without-date, got %d", got)
	}
}

func TestScoreBounds(t *testing.T) {
	histories := [][]transaction.Transaction{
		nil,
		{txn(0, true)},
		{txn(400, true)},
		{txn(1, true), txn(2, true), txn(3, false), txn(200, false)},
		{txn(0, false)},
	}

	for _, h := range histories {
		got := scoring.Score(h)
		if got < 0 || got > 100 {
			t.Fatalf("score out of bounds: %d", got)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	txns := []transaction.Transaction{txn(4, true), txn(12, true), txn(0, false)}
	first := scoring.Score(txns)
	for i := 0; i < 10; i++ {
		if got := scoring.Score(txns); got != first {
			t.Fatalf("score changed between identical calls: %d vs %d", first, got)
		}
	}
}

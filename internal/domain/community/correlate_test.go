package community_test

import (
	"reflect"
	"testing"

	"github.com/Maheenrz/smart-khata-ai/internal/domain/community"
)

func TestCorrelateSingleShopNeverFlagged(t *testing.T) {
	records := community.Correlate([]community.Report{
		{Phone: "0300-1111111", Name: "Tariq", Area: "Anarkali", Score: 5, TotalDue: 9000},
	})

	if len(records) != 0 {
		t.Fatalf("single-shop phone must never be flagged, got %+v", records)
	}
}

func TestCorrelateGoodMeanExcluded(t *testing.T) {
	records := community.Correlate([]community.Report{
		{Phone: "0300-1111111", Name: "Tariq", Area: "Anarkali", Score: 45, TotalDue: 500},
		{Phone: "0300-1111111", Name: "Tariq A.", Area: "Anarkali", Score: 60, TotalDue: 300},
	})

	// Mean 52.5 is not below 50.
	if len(records) != 0 {
		t.Fatalf("mean score above cutoff must not be flagged, got %+v", records)
	}
}

func TestCorrelateHighRiskUsesUnroundedMean(t *testing.T) {
	records := community.Correlate([]community.Report{
		{Phone: "0300-1111111", Name: "Tariq", Area: "Anarkali", Score: 20, TotalDue: 2000},
		{Phone: "0300-1111111", Name: "Tariq Mehmood", Area: "Anarkali", Score: 35, TotalDue: 1500},
	})

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	// Mean 27.5 rounds to 28 for display but grades High on the raw value.
	if r.AverageAitbaarScore != 28 {
		t.Fatalf("expected average 28, got %d", r.AverageAitbaarScore)
	}
	if r.RiskLevel != community.RiskHigh {
		t.Fatalf("expected High, got %q", r.RiskLevel)
	}
	if r.TotalDueAcrossShops != 3500 {
		t.Fatalf("expected total due 3500, got %v", r.TotalDueAcrossShops)
	}
	if r.ReportedByShops != 2 {
		t.Fatalf("expected 2 shops, got %d", r.ReportedByShops)
	}
	if r.Name != "Tariq" || r.Area != "Anarkali" {
		t.Fatalf("name and area must come from the first report, got %q / %q", r.Name, r.Area)
	}
}

func TestCorrelateMeanExactlyThirtyIsMedium(t *testing.T) {
	records := community.Correlate([]community.Report{
		{Phone: "0300-2222222", Name: "Rashid", Area: "Ichhra", Score: 20, TotalDue: 100},
		{Phone: "0300-2222222", Name: "Rashid", Area: "Ichhra", Score: 40, TotalDue: 100},
	})

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].RiskLevel != community.RiskMedium {
		t.Fatalf("mean of exactly 30 must grade Medium, got %q", records[0].RiskLevel)
	}
}

func TestCorrelateSortedByShopCount(t *testing.T) {
	records := community.Correlate([]community.Report{
		{Phone: "0300-1111111", Name: "Two Shops", Area: "Anarkali", Score: 10, TotalDue: 100},
		{Phone: "0300-1111111", Name: "Two Shops", Area: "Anarkali", Score: 10, TotalDue: 100},
		{Phone: "0300-3333333", Name: "Three Shops", Area: "Anarkali", Score: 10, TotalDue: 100},
		{Phone: "0300-3333333", Name: "Three Shops", Area: "Anarkali", Score: 10, TotalDue: 100},
		{Phone: "0300-3333333", Name: "Three Shops", Area: "Anarkali", Score: 10, TotalDue: 100},
	})

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Phone != "0300-3333333" || records[1].Phone != "0300-1111111" {
		t.Fatalf("most corroborated must come first, got %q then %q", records[0].Phone, records[1].Phone)
	}
}

func TestCorrelateEqualCountsKeepFirstSeenOrder(t *testing.T) {
	reports := []community.Report{
		{Phone: "0300-1111111", Name: "First", Area: "A", Score: 10, TotalDue: 1},
		{Phone: "0300-2222222", Name: "Second", Area: "A", Score: 10, TotalDue: 1},
		{Phone: "0300-1111111", Name: "First", Area: "A", Score: 10, TotalDue: 1},
		{Phone: "0300-2222222", Name: "Second", Area: "A", Score: 10, TotalDue: 1},
	}

	records := community.Correlate(reports)

	var phones []string
	for _, r := range records {
		phones = append(phones, r.Phone)
	}
	if !reflect.DeepEqual(phones, []string{"0300-1111111", "0300-2222222"}) {
		t.Fatalf("ties must keep first-seen order, got %v", phones)
	}
}

func TestCorrelateDeterministic(t *testing.T) {
	reports := []community.Report{
		{Phone: "0300-1111111", Name: "A", Area: "X", Score: 12, TotalDue: 700},
		{Phone: "0300-2222222", Name: "B", Area: "X", Score: 44, TotalDue: 200},
		{Phone: "0300-1111111", Name: "A", Area: "X", Score: 30, TotalDue: 300},
		{Phone: "0300-2222222", Name: "B", Area: "X", Score: 48, TotalDue: 150},
	}

	first := community.Correlate(reports)
	second := community.Correlate(reports)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different output")
	}
}

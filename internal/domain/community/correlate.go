// Package community flags customers who owe money at several shops in
// the same locality. Reports are grouped by phone number, the only
// identity shared between shops. Exact string match on purpose: there
// is no identity resolution, a different number is a different person.
package community

import (
	"math"
	"sort"
)

const (
	minShops       = 2
	riskyMeanScore = 50
	highMeanScore  = 30

	// RiskHigh and RiskMedium grade a flagged phone by its mean score.
	RiskHigh   = "High"
	RiskMedium = "Medium"
)

// Report is one shop's view of a customer, scored and summed.
type Report struct {
	Phone    string
	Name     string
	Area     string
	Score    int
	TotalDue float64
}

// RiskRecord is one phone flagged across shops.
type RiskRecord struct {
	Phone               string  `json:"phone"`
	Name                string  `json:"name"`
	Area                string  `json:"area"`
	ReportedByShops     int     `json:"reported_by_shops"`
	AverageAitbaarScore int     `json:"average_aitbaar_score"`
	TotalDueAcrossShops float64 `json:"total_due_across_shops"`
	RiskLevel           string  `json:"risk_level"`
}

// Correlate groups reports by phone and flags phones reported by at
// least two shops whose mean score falls below 50. Name and area come
// from the first report of the group; shops may spell the same person
// differently and neither version is more authoritative. Output is
// ordered most-corroborated first, ties keep first-seen order.
func Correlate(reports []Report) []RiskRecord {
	groups := make(map[string][]Report)
	order := make([]string, 0)
	for _, r := range reports {
		if _, seen := groups[r.Phone]; !seen {
			order = append(order, r.Phone)
		}
		groups[r.Phone] = append(groups[r.Phone], r)
	}

	records := make([]RiskRecord, 0)
	for _, phone := range order {
		group := groups[phone]
		if len(group) < minShops {
			continue
		}

		var scoreSum int
		var dueSum float64
		for _, r := range group {
			scoreSum += r.Score
			dueSum += r.TotalDue
		}
		mean := float64(scoreSum) / float64(len(group))
		if mean >= riskyMeanScore {
			continue
		}

		level := RiskMedium
		if mean < highMeanScore {
			level = RiskHigh
		}

		records = append(records, RiskRecord{
			Phone:               phone,
			Name:                group[0].Name,
			Area:                group[0].Area,
			ReportedByShops:     len(group),
			AverageAitbaarScore: int(math.Round(mean)),
			TotalDueAcrossShops: dueSum,
			RiskLevel:           level,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ReportedByShops > records[j].ReportedByShops
	})

	return records
}

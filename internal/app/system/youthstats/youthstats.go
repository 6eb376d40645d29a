// Package youthstats computes the admin dashboard figures from survey records.
package youthstats

import (
	"strings"
	"time"

	"github.com/dalemusser/youthportal/internal/domain/models"
)

// NotSpecified is the bucket for a blank classification answer.
const NotSpecified = "Not Specified"

// HistogramMonths is the number of calendar months in the submission histogram.
const HistogramMonths = 6

// MonthBucket counts the surveys created in one calendar month.
type MonthBucket struct {
	Month   string    `json:"month"` // e.g. "Jan 2026"
	Start   time.Time `json:"start"`
	Surveys int       `json:"surveys"`
}

// Summary is everything the admin dashboard charts.
type Summary struct {
	TotalSurveys           int            `json:"total_surveys"`
	YouthAgeGroups         map[string]int `json:"youth_age_groups"`
	EducationalBackgrounds map[string]int `json:"educational_backgrounds"`
	WorkStatuses           map[string]int `json:"work_statuses"`
	YouthClassifications   map[string]int `json:"youth_classifications"`
	Monthly                []MonthBucket  `json:"monthly_distribution"`
}

// Compute walks surveys once and fills every count. The histogram covers the
// month containing now and the five before it, oldest first, in now's location.
func Compute(surveys []models.Survey, now time.Time) Summary {
	s := Summary{
		TotalSurveys:           len(surveys),
		YouthAgeGroups:         map[string]int{},
		EducationalBackgrounds: map[string]int{},
		WorkStatuses:           map[string]int{},
		YouthClassifications:   map[string]int{},
		Monthly:                Months(now),
	}

	first := s.Monthly[0].Start
	loc := now.Location()

	for _, sv := range surveys {
		s.YouthAgeGroups[label(sv.YouthAgeGroup)]++
		s.EducationalBackgrounds[label(sv.EducationalBackground)]++
		s.WorkStatuses[label(sv.WorkStatus)]++
		s.YouthClassifications[label(sv.YouthClassification)]++

		if sv.CreatedAt.IsZero() {
			continue
		}
		created := sv.CreatedAt.In(loc)
		idx := monthsBetween(first, created)
		if idx >= 0 && idx < len(s.Monthly) {
			s.Monthly[idx].Surveys++
		}
	}
	return s
}

// Months returns the empty histogram buckets ending with now's month.
func Months(now time.Time) []MonthBucket {
	loc := now.Location()
	y, m, _ := now.Date()
	out := make([]MonthBucket, HistogramMonths)
	for i := 0; i < HistogramMonths; i++ {
		start := time.Date(y, m-time.Month(HistogramMonths-1-i), 1, 0, 0, 0, 0, loc)
		out[i] = MonthBucket{Month: start.Format("Jan 2006"), Start: start}
	}
	return out
}

func monthsBetween(from, t time.Time) int {
	fy, fm, _ := from.Date()
	ty, tm, _ := t.Date()
	return (ty-fy)*12 + int(tm) - int(fm)
}

func label(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return NotSpecified
	}
	return v
}

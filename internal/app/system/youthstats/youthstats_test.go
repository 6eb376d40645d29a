package youthstats

import (
	"testing"
	"time"

	"github.com/dalemusser/youthportal/internal/domain/models"
)

func survey(created time.Time, ageGroup, education, work, class string) models.Survey {
	return models.Survey{
		Answers: models.Answers{
			YouthAgeGroup:         ageGroup,
			EducationalBackground: education,
			WorkStatus:            work,
			YouthClassification:   class,
		},
		CreatedAt: created,
	}
}

func TestMonths_SixBucketsOldestFirst(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	got := Months(now)

	want := []string{"Oct 2025", "Nov 2025", "Dec 2025", "Jan 2026", "Feb 2026", "Mar 2026"}
	if len(got) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(got))
	}
	for i, b := range got {
		if b.Month != want[i] {
			t.Errorf("bucket %d: got %q, want %q", i, b.Month, want[i])
		}
		if b.Start.Day() != 1 || b.Start.Hour() != 0 {
			t.Errorf("bucket %d should start at midnight on the 1st, got %v", i, b.Start)
		}
	}
}

func TestCompute_HistogramOverEightMonths(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	at := func(y int, m time.Month, d, h int) time.Time {
		return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
	}

	surveys := []models.Survey{
		// outside the window (Jan, Feb)
		survey(at(2026, 1, 10, 0), "", "", "", ""),
		survey(at(2026, 2, 28, 23), "", "", "", ""),
		// March: first instant and last day
		survey(at(2026, 3, 1, 0), "", "", "", ""),
		survey(at(2026, 3, 31, 23), "", "", "", ""),
		// May
		survey(at(2026, 5, 5, 0), "", "", "", ""),
		// July x3
		survey(at(2026, 7, 1, 0), "", "", "", ""),
		survey(at(2026, 7, 15, 0), "", "", "", ""),
		survey(at(2026, 7, 31, 23), "", "", "", ""),
		// August (current month)
		survey(at(2026, 8, 19, 0), "", "", "", ""),
	}

	s := Compute(surveys, now)
	if s.TotalSurveys != len(surveys) {
		t.Errorf("TotalSurveys: got %d, want %d", s.TotalSurveys, len(surveys))
	}

	want := []struct {
		month string
		count int
	}{
		{"Mar 2026", 2},
		{"Apr 2026", 0},
		{"May 2026", 1},
		{"Jun 2026", 0},
		{"Jul 2026", 3},
		{"Aug 2026", 1},
	}
	if len(s.Monthly) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(s.Monthly))
	}
	for i, w := range want {
		if s.Monthly[i].Month != w.month || s.Monthly[i].Surveys != w.count {
			t.Errorf("bucket %d: got %s=%d, want %s=%d",
				i, s.Monthly[i].Month, s.Monthly[i].Surveys, w.month, w.count)
		}
	}
}

func TestCompute_YearBoundary(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	surveys := []models.Survey{
		survey(time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC), "", "", "", ""), // first bucket
		survey(time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), "", "", "", ""),
		survey(time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC), "", "", "", ""), // outside
	}
	s := Compute(surveys, now)
	if s.Monthly[0].Month != "Sep 2025" || s.Monthly[0].Surveys != 1 {
		t.Errorf("first bucket: got %+v", s.Monthly[0])
	}
	if s.Monthly[3].Month != "Dec 2025" || s.Monthly[3].Surveys != 1 {
		t.Errorf("December bucket: got %+v", s.Monthly[3])
	}
}

func TestCompute_GroupCounts(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	surveys := []models.Survey{
		survey(now, "Core Youth (18-24 yrs.old)", "College Level", "Unemployed", "In School Youth"),
		survey(now, "Core Youth (18-24 yrs.old)", "College Graduate", "Employed", "Working Youth"),
		survey(now, "Child Youth (15-17 yrs.old)", "", "  ", "In School Youth"),
	}

	s := Compute(surveys, now)

	if got := s.YouthAgeGroups["Core Youth (18-24 yrs.old)"]; got != 2 {
		t.Errorf("core youth: got %d, want 2", got)
	}
	if got := s.EducationalBackgrounds[NotSpecified]; got != 1 {
		t.Errorf("blank education should count as %q: got %d", NotSpecified, got)
	}
	if got := s.WorkStatuses[NotSpecified]; got != 1 {
		t.Errorf("whitespace work status should count as %q: got %d", NotSpecified, got)
	}
	if got := s.YouthClassifications["In School Youth"]; got != 2 {
		t.Errorf("in school youth: got %d, want 2", got)
	}
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, time.Now())
	if s.TotalSurveys != 0 || len(s.Monthly) != 6 {
		t.Errorf("unexpected summary for no surveys: %+v", s)
	}
	if s.YouthAgeGroups == nil {
		t.Error("maps should be non-nil so they encode as {}")
	}
}

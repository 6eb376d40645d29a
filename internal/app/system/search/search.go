// internal/app/system/search/search.go
package search

import (
	"sort"
	"strings"

	"github.com/dalemusser/youthportal/internal/app/system/display"
	"github.com/dalemusser/youthportal/internal/app/system/normalize"
	"github.com/dalemusser/youthportal/internal/domain/models"
)

// Views that only ever list approved accounts, whatever the status filter says.
const (
	ViewAccounts  = "accounts"
	ViewRecords   = "records"
	ViewYouthData = "youth-data"
)

// Row is one account as the admin list shows it.
type Row struct {
	models.Account
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Criteria selects rows from an admin list.
//
//	View:   "records" and "youth-data" force approved-only
//	Status: "", "all", "pending", "approved" or "rejected"
//	Query:  free text, matched case-insensitively as a substring
type Criteria struct {
	View   string
	Status string
	Query  string
}

// Rows builds the admin list from raw accounts: admins are dropped, display
// fields are derived, and the result is ordered pending first, then newest
// first by creation time.
func Rows(accounts []models.Account) []Row {
	rows := make([]Row, 0, len(accounts))
	for _, a := range accounts {
		if a.IsAdmin() {
			continue
		}
		if a.Status == "" {
			a.Status = models.StatusPending
		}
		rows = append(rows, Row{
			Account:  a,
			Name:     display.Name(a),
			Location: display.Location(a),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		pi := rows[i].Status == models.StatusPending
		pj := rows[j].Status == models.StatusPending
		if pi != pj {
			return pi
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows
}

// Filter returns the rows matching c, in their original order.
// An empty Criteria returns the input unchanged.
func Filter(rows []Row, c Criteria) []Row {
	status := normalize.StatusFilter(c.Status)
	if forcesApproved(c.View) {
		status = models.StatusApproved
	}
	// blank queries match everything; others match as typed, spaces included
	blank := normalize.QueryParam(c.Query) == ""
	q := strings.ToLower(c.Query)

	if status == "" && blank {
		return rows
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if status != "" && r.Status != status {
			continue
		}
		if !blank && !Matches(r, q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Matches reports whether the lowercase query q is a substring of any
// searchable field of r.
func Matches(r Row, q string) bool {
	return containsAnyFold(q,
		r.Name,
		r.Email,
		r.Location,
		r.FirstName,
		r.LastName,
		r.Username,
		r.Barangay,
		r.CityMunicipality,
		r.Province,
	)
}

// Counts tallies rows per status.
type Counts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// CountByStatus tallies rows by status.
func CountByStatus(rows []Row) Counts {
	var c Counts
	for _, r := range rows {
		c.Total++
		switch r.Status {
		case models.StatusPending:
			c.Pending++
		case models.StatusApproved:
			c.Approved++
		case models.StatusRejected:
			c.Rejected++
		}
	}
	return c
}

func forcesApproved(view string) bool {
	return equalsAnyFold(view, ViewRecords, ViewYouthData, "youthdata")
}

func containsAnyFold(q string, vals ...string) bool {
	for _, v := range vals {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

func equalsAnyFold(s string, vals ...string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, v := range vals {
		if s == strings.ToLower(v) {
			return true
		}
	}
	return false
}

// internal/app/system/access/access.go
package access

import (
	"strings"

	"github.com/dalemusser/youthportal/internal/domain/models"
)

// Destination is where a signed-in account is sent next.
type Destination string

const (
	Login          Destination = "/login"
	Pending        Destination = "/pending-approval"
	Rejected       Destination = "/rejected-user"
	UserDashboard  Destination = "/dashboard"
	AdminDashboard Destination = "/admin/dashboard"
)

// Route maps an account's status and user type to its destination.
// It is evaluated at login and on every status change. An unknown status
// sends the caller back to login.
func Route(status, userType string) Destination {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case models.StatusPending:
		return Pending
	case models.StatusRejected:
		return Rejected
	case models.StatusApproved:
		if strings.EqualFold(strings.TrimSpace(userType), models.UserTypeAdmin) {
			return AdminDashboard
		}
		return UserDashboard
	default:
		return Login
	}
}

// RouteAccount is Route applied to a loaded account.
func RouteAccount(a models.Account) Destination {
	return Route(a.Status, a.UserType)
}

// IsDashboard reports whether d is one of the two dashboards.
func (d Destination) IsDashboard() bool {
	return d == UserDashboard || d == AdminDashboard
}

// CanEnterDashboard gates the dashboards. Both the status recorded in the
// session at login and the current stored status must be approved, so an
// account approved while signed in has to sign in again.
func CanEnterDashboard(sessionStatus, currentStatus string) bool {
	return sessionStatus == models.StatusApproved && currentStatus == models.StatusApproved
}

// CanTransition reports whether actorType may move an account to status.
// Only admins change status, and only to approved or rejected.
func CanTransition(actorType, status string) bool {
	if actorType != models.UserTypeAdmin {
		return false
	}
	return status == models.StatusApproved || status == models.StatusRejected
}

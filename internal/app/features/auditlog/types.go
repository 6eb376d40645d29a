// internal/app/features/auditlog/types.go
package auditlog

import (
	"time"

	"github.com/dalemusser/youthportal/internal/app/store/audit"
	"github.com/dalemusser/youthportal/internal/app/system/paging"
)

// listItem is one audit event with account ids resolved to emails.
type listItem struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Category  string            `json:"category"`
	EventType string            `json:"event_type"`
	Actor     string            `json:"actor,omitempty"`
	Target    string            `json:"target,omitempty"`
	IP        string            `json:"ip"`
	Success   bool              `json:"success"`
	Reason    string            `json:"failure_reason,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

type listResponse struct {
	Items []listItem `json:"items"`

	// Filters
	Category  string `json:"category"`
	EventType string `json:"event_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	// Filter options
	Categories []categoryOption `json:"categories"`
	EventTypes []string         `json:"event_types"`

	Total int64        `json:"total"`
	Range paging.Range `json:"range"`
}

// categoryOption represents a category for the filter dropdown.
type categoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func allCategories() []categoryOption {
	return []categoryOption{
		{Value: audit.CategoryAuth, Label: "Authentication"},
		{Value: audit.CategoryAdmin, Label: "Administration"},
	}
}

// eventTypesForCategory returns the event types for a given category.
// If category is empty, returns all event types.
func eventTypesForCategory(category string) []string {
	authEvents := []string{
		audit.EventRegistered,
		audit.EventRegisterFailed,
		audit.EventLoginSuccess,
		audit.EventLoginFailedUserNotFound,
		audit.EventLoginFailedWrongPassword,
		audit.EventLoginFailedUserDisabled,
		audit.EventLoginFailedRateLimit,
		audit.EventLoginFailedNoAccount,
		audit.EventLogout,
		audit.EventPasswordResetRequested,
		audit.EventPasswordChanged,
	}
	adminEvents := []string{
		audit.EventAccountApproved,
		audit.EventAccountRejected,
		audit.EventAccountDeleted,
		audit.EventAdminBootstrap,
	}

	switch category {
	case audit.CategoryAuth:
		return authEvents
	case audit.CategoryAdmin:
		return adminEvents
	default:
		return append(authEvents, adminEvents...)
	}
}

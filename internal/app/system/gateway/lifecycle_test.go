package gateway

import (
	"context"
	"testing"

	surveystore "github.com/dalemusser/youthportal/internal/app/store/surveys"
	userstore "github.com/dalemusser/youthportal/internal/app/store/users"
	"github.com/dalemusser/youthportal/internal/app/system/access"
	"github.com/dalemusser/youthportal/internal/app/system/approval"
	"github.com/dalemusser/youthportal/internal/app/system/statuswatch"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"go.uber.org/zap"
)

func (m *memAccounts) SetStatus(_ context.Context, id, status string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return nil, userstore.ErrNotFound
	}
	a.Status = status
	m.byID[id] = a
	return &a, nil
}

func (m *memAccounts) Delete(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return 0, nil
	}
	delete(m.byID, id)
	return 1, nil
}

type noSurveys struct{}

func (noSurveys) GetFirstByUser(context.Context, string) (*models.Survey, error) {
	return nil, surveystore.ErrNotFound
}

func (noSurveys) DeleteByUser(context.Context, string) (int64, error) { return 0, nil }

func TestRegisterApproveLogin(t *testing.T) {
	g, _, acc, _ := newGateway()
	ctx := context.Background()

	reg, err := g.Register(ctx, origin, validInput("17"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.Status != models.StatusPending || reg.UserType != models.UserTypeUser {
		t.Fatalf("new account: status %q, user_type %q", reg.Status, reg.UserType)
	}
	if dest := access.RouteAccount(reg); dest != access.Pending {
		t.Errorf("after register: got %s, want %s", dest, access.Pending)
	}

	acc.byID["admin-1"] = models.Account{ID: "admin-1", Email: "admin@example.com",
		Status: models.StatusApproved, UserType: models.UserTypeAdmin}
	approvals := &approval.Service{
		Accounts: acc,
		Surveys:  noSurveys{},
		Hub:      statuswatch.NewLocalHub(),
		Log:      zap.NewNop(),
	}
	admin := approval.Actor{ID: "admin-1", UserType: models.UserTypeAdmin, Origin: origin}
	if _, err := approvals.Approve(ctx, admin, reg.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	a, err := g.Login(ctx, origin, "juan@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if a.Status != models.StatusApproved {
		t.Errorf("status after approve: got %q", a.Status)
	}
	if dest := access.RouteAccount(a); dest != access.UserDashboard {
		t.Errorf("after approve and login: got %s, want %s", dest, access.UserDashboard)
	}
}

// internal/app/system/identity/fake.go
package identity

import (
	"context"
	"sync"

	"github.com/dalemusser/youthportal/internal/app/system/apperr"
	"github.com/dalemusser/youthportal/internal/app/system/normalize"
	"github.com/google/uuid"
)

// Memory is an in-process Provider for tests and local development.
// Passwords are kept in clear text; never use it in production.
type Memory struct {
	mu       sync.Mutex
	byEmail  map[string]memIdentity
	disabled map[string]bool
	tokens   map[string]string // token -> id

	// Calls counts every method invocation, keyed by method name.
	Calls map[string]int
	// Fail, when set, is returned by every call.
	Fail error
}

type memIdentity struct {
	id       string
	password string
}

var _ Provider = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		byEmail:  map[string]memIdentity{},
		disabled: map[string]bool{},
		tokens:   map[string]string{},
		Calls:    map[string]int{},
	}
}

// Disable marks the identity for email as disabled.
func (m *Memory) Disable(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disabled[normalize.Email(email)] = true
}

// Has reports whether an identity exists for email.
func (m *Memory) Has(email string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byEmail[normalize.Email(email)]
	return ok
}

func (m *Memory) enter(name string) error {
	m.Calls[name]++
	return m.Fail
}

func (m *Memory) Create(_ context.Context, email, password, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("Create"); err != nil {
		return "", err
	}
	email = normalize.Email(email)
	if _, ok := m.byEmail[email]; ok {
		return "", apperr.Provider(apperr.CodeEmailInUse, nil)
	}
	id := uuid.NewString()
	m.byEmail[email] = memIdentity{id: id, password: password}
	return id, nil
}

func (m *Memory) Verify(_ context.Context, email, password string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("Verify"); err != nil {
		return "", err
	}
	email = normalize.Email(email)
	ident, ok := m.byEmail[email]
	if !ok {
		return "", apperr.Provider(apperr.CodeUserNotFound, nil)
	}
	if ident.password != password {
		return "", apperr.Provider(apperr.CodeWrongPassword, nil)
	}
	if m.disabled[email] {
		return "", apperr.Provider(apperr.CodeUserDisabled, nil)
	}
	return ident.id, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("Delete"); err != nil {
		return err
	}
	for email, ident := range m.byEmail {
		if ident.id == id {
			delete(m.byEmail, email)
		}
	}
	return nil
}

func (m *Memory) ResetToken(_ context.Context, email string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ResetToken"); err != nil {
		return "", err
	}
	ident, ok := m.byEmail[normalize.Email(email)]
	if !ok {
		return "", apperr.Provider(apperr.CodeUserNotFound, nil)
	}
	tok := uuid.NewString()
	m.tokens[tok] = ident.id
	return tok, nil
}

func (m *Memory) ResetPassword(_ context.Context, token, newPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ResetPassword"); err != nil {
		return err
	}
	id, ok := m.tokens[token]
	if !ok {
		return apperr.Provider(apperr.CodeInvalidResetToken, nil)
	}
	delete(m.tokens, token)
	for email, ident := range m.byEmail {
		if ident.id == id {
			ident.password = newPassword
			m.byEmail[email] = ident
		}
	}
	return nil
}

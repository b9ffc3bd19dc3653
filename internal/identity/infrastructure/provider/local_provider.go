package provider

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/halcyonapp/halcyon/internal/identity/domain"
)

// LocalProvider is an in-memory identity provider for development and
// tests. Accounts live for the process lifetime only.
type LocalProvider struct {
	device domain.DeviceMetadata

	mu       sync.Mutex
	accounts map[string]localAccount
	current  *domain.Principal

	notifier notifier
}

type localAccount struct {
	password  string
	principal domain.Principal
}

// NewLocalProvider creates an empty in-memory provider.
func NewLocalProvider(device domain.DeviceMetadata) *LocalProvider {
	return &LocalProvider{
		device:   device,
		accounts: make(map[string]localAccount),
	}
}

// SignIn authenticates against the in-memory account table.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*domain.Principal, error) {
	p.mu.Lock()
	account, ok := p.accounts[email]
	if !ok {
		p.mu.Unlock()
		return nil, domain.NewAuthError(domain.CodeUserNotFound, "")
	}
	if account.password != password {
		p.mu.Unlock()
		return nil, domain.NewAuthError(domain.CodeWrongPassword, "")
	}

	principal := account.principal
	principal.LastLoginAt = time.Now()
	account.principal = principal
	p.accounts[email] = account
	p.current = &principal
	p.mu.Unlock()

	p.notifier.notify(&principal)
	return principal.Clone(), nil
}

// SignUp registers a new in-memory account and signs it in.
func (p *LocalProvider) SignUp(ctx context.Context, email, password string) (*domain.Principal, error) {
	p.mu.Lock()
	if _, exists := p.accounts[email]; exists {
		p.mu.Unlock()
		return nil, domain.NewAuthError(domain.CodeEmailInUse, "")
	}

	now := time.Now()
	principal := domain.Principal{
		ID:          uuid.New().String(),
		Email:       email,
		Provider:    domain.ProviderPassword,
		CreatedAt:   now,
		LastLoginAt: now,
		Device:      p.device,
	}
	p.accounts[email] = localAccount{password: password, principal: principal}
	p.current = &principal
	p.mu.Unlock()

	p.notifier.notify(&principal)
	return principal.Clone(), nil
}

// SignOut clears the current session.
func (p *LocalProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()

	p.notifier.notify(nil)
	return nil
}

// SendPasswordReset succeeds when the account exists.
func (p *LocalProvider) SendPasswordReset(ctx context.Context, email string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.accounts[email]; !ok {
		return domain.NewAuthError(domain.CodeUserNotFound, "")
	}
	return nil
}

// OnChange subscribes to identity change notifications. The current
// session state is replayed immediately.
func (p *LocalProvider) OnChange(cb domain.ChangeCallback) func() {
	unsubscribe := p.notifier.subscribe(cb)

	p.mu.Lock()
	current := p.current.Clone()
	p.mu.Unlock()
	cb(current)

	return unsubscribe
}

// RefreshToken mints a throwaway token while a session is live.
func (p *LocalProvider) RefreshToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return "", domain.NewAuthError(domain.CodeNoSession, "")
	}
	return uuid.New().String(), nil
}

var _ domain.Provider = (*LocalProvider)(nil)
var _ domain.Provider = (*HTTPProvider)(nil)

package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/domain"
	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/gateway"
	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/store"
)

// Persisted state keys. The cart ledger owns its own key; the two never
// interleave writes.
const (
	tokenKey = "cf_token"
	userKey  = "cf_user"
)

// AuthAPI is the slice of the gateway the manager needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password, email string) error
}

// Manager owns the authenticated identity: login, registration, logout
// and the offline demo fallback. State is persisted through the store
// so a restart restores the previous session.
type Manager struct {
	mu      sync.Mutex
	store   store.KV
	api     AuthAPI
	log     *slog.Logger
	session *domain.Session
	lastErr string
	subs    []func()
}

func NewManager(kv store.KV, api AuthAPI, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	m := &Manager{store: kv, api: api, log: log}
	m.restore()
	return m
}

// restore rebuilds the session from persisted state. A token without a
// readable user record still yields a full session: username and role
// are re-derived from the token claims.
func (m *Manager) restore() {
	ctx := context.Background()
	token, err := m.store.Get(ctx, tokenKey)
	if err != nil || token == "" {
		return
	}

	var user domain.User
	raw, err := m.store.Get(ctx, userKey)
	if err != nil || json.Unmarshal([]byte(raw), &user) != nil || user.Username == "" {
		user = domain.User{Username: subjectFromToken(token), Role: RoleFromToken(token)}
	}
	if user.Role == "" {
		user.Role = RoleFromToken(token)
	}

	kind := domain.SessionBacked
	if isDemoToken(token) {
		kind = domain.SessionDemo
	}
	m.session = &domain.Session{User: user, Token: token, Kind: kind}
}

// Login authenticates against the gateway. A transport failure
// (unreachable host, timeout) falls back to a fabricated demo session
// and still counts as success; an application rejection records a
// readable error and fails.
func (m *Manager) Login(ctx context.Context, username, password string) bool {
	m.setError("")

	token, err := m.api.Login(ctx, username, password)
	if err == nil && token == "" {
		err = errors.New("no token received")
	}
	if err == nil {
		user := domain.User{Username: username, Role: RoleFromToken(token)}
		m.setSession(ctx, domain.Session{User: user, Token: token, Kind: domain.SessionBacked})
		return true
	}

	if gateway.IsTransport(err) {
		m.log.Info("gateway unreachable, starting demo session", "username", username)
		m.startDemoSession(ctx, username, domain.DemoRoleFor(username))
		return true
	}

	m.setError(readableError(err, "Invalid credentials"))
	return false
}

// Register creates an account and logs in with the same credentials.
// The demo fallback after a failed registration always assigns USER,
// regardless of username.
func (m *Manager) Register(ctx context.Context, username, password, email string) bool {
	m.setError("")

	err := m.api.Register(ctx, username, password, email)
	if err == nil {
		return m.Login(ctx, username, password)
	}

	if gateway.IsTransport(err) {
		m.log.Info("gateway unreachable, starting demo session", "username", username)
		m.startDemoSession(ctx, username, domain.RoleUser)
		return true
	}

	m.setError(readableError(err, "Registration failed"))
	return false
}

// Logout clears persisted and in-memory session state. It cannot fail:
// store errors are already absorbed by the fallback store.
func (m *Manager) Logout() {
	ctx := context.Background()
	_ = m.store.Delete(ctx, tokenKey)
	_ = m.store.Delete(ctx, userKey)

	m.mu.Lock()
	m.session = nil
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session != nil && m.session.Token != ""
}

func (m *Manager) IsAdmin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session != nil && m.session.IsAdmin()
}

// CurrentUser returns the logged-in user, if any.
func (m *Manager) CurrentUser() (domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return domain.User{}, false
	}
	return m.session.User, true
}

// Current returns a copy of the whole session.
func (m *Manager) Current() (domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return domain.Session{}, false
	}
	return *m.session, true
}

// Token yields the session token for outgoing requests, or "".
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return ""
	}
	return m.session.Token
}

// Err returns the last authentication error message, or "".
func (m *Manager) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// ClearError resets the last error without touching the session.
func (m *Manager) ClearError() {
	m.setError("")
}

// Subscribe registers a callback invoked after every session change.
func (m *Manager) Subscribe(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

func (m *Manager) startDemoSession(ctx context.Context, username string, role domain.Role) {
	token := fabricateDemoToken(username, role)
	user := domain.User{Username: username, Role: role}
	m.setSession(ctx, domain.Session{User: user, Token: token, Kind: domain.SessionDemo})
}

func (m *Manager) setSession(ctx context.Context, s domain.Session) {
	raw, err := json.Marshal(s.User)
	if err != nil {
		m.log.Warn("failed to encode user record", "error", err)
		raw = []byte("{}")
	}
	_ = m.store.Set(ctx, tokenKey, s.Token)
	_ = m.store.Set(ctx, userKey, string(raw))

	m.mu.Lock()
	copied := s
	m.session = &copied
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) setError(msg string) {
	m.mu.Lock()
	m.lastErr = msg
	m.mu.Unlock()
}

func (m *Manager) notify() {
	m.mu.Lock()
	subs := make([]func(), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// readableError prefers the backend's message for application-level
// rejections and falls back to a generic label otherwise.
func readableError(err error, fallback string) string {
	var se *gateway.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/barcrafted/bar-system/internal/core/domain"
)

// In-memory repository stand-ins. All of them are mutex-guarded so the
// concurrency tests exercise the same atomicity contract the real Mongo
// adapters provide.

type stubUsers struct {
	mu     sync.Mutex
	byID   map[int64]*domain.User
	nextID int64
}

func newStubUsers() *stubUsers {
	return &stubUsers{byID: make(map[int64]*domain.User), nextID: 1}
}

func (r *stubUsers) add(u *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == 0 {
		u.ID = r.nextID
	}
	if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	clone := *u
	r.byID[u.ID] = &clone
	return u
}

func (r *stubUsers) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == identifier || u.Login == identifier || u.Name == identifier {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email || u.Login == user.Login || u.Name == user.Name {
			return nil, domain.ErrUserExists
		}
	}
	clone := *user
	clone.ID = r.nextID
	r.nextID++
	stored := clone
	r.byID[clone.ID] = &stored
	return &clone, nil
}

func (r *stubUsers) Save(_ context.Context, user *domain.User) error {
	if err := domain.ValidateRoleConstraints(user.Roles, user.HasPassword(), user.HasWorkplace()); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

type stubTokens struct {
	mu     sync.Mutex
	byID   map[string]*domain.PasswordToken
	nextID int
}

func newStubTokens() *stubTokens {
	return &stubTokens{byID: make(map[string]*domain.PasswordToken)}
}

func (r *stubTokens) Create(_ context.Context, t *domain.PasswordToken) (*domain.PasswordToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *t
	clone.ID = fmt.Sprintf("tok_%d", r.nextID)
	stored := clone
	r.byID[clone.ID] = &stored
	return &clone, nil
}

func (r *stubTokens) FindByID(_ context.Context, id string, purpose domain.TokenPurpose) (*domain.PasswordToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok || t.Purpose != purpose {
		return nil, domain.ErrTokenInvalid
	}
	clone := *t
	return &clone, nil
}

func (r *stubTokens) FindByHash(_ context.Context, tokenHash string, purpose domain.TokenPurpose) (*domain.PasswordToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.byID {
		if t.TokenHash == tokenHash && t.Purpose == purpose {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTokenInvalid
}

func (r *stubTokens) FindByUserAndHash(_ context.Context, userID int64, tokenHash string, purpose domain.TokenPurpose) (*domain.PasswordToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.byID {
		if t.UserID == userID && t.TokenHash == tokenHash && t.Purpose == purpose {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTokenInvalid
}

func (r *stubTokens) MarkUsed(_ context.Context, id string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok || t.UsedAt != nil {
		return false, nil
	}
	used := now
	t.UsedAt = &used
	return true, nil
}

func (r *stubTokens) MarkAllUnused(_ context.Context, userID int64, purpose domain.TokenPurpose, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.byID {
		if t.UserID == userID && t.Purpose == purpose && t.UsedAt == nil {
			used := now
			t.UsedAt = &used
		}
	}
	return nil
}

func (r *stubTokens) get(id string) *domain.PasswordToken {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil
	}
	clone := *t
	return &clone
}

type stubBars struct {
	byKey     map[string]*domain.Bar
	favorites map[int64][]domain.Cocktail
}

func newStubBars() *stubBars {
	return &stubBars{
		byKey:     make(map[string]*domain.Bar),
		favorites: make(map[int64][]domain.Cocktail),
	}
}

func (r *stubBars) FindByKey(_ context.Context, key string) (*domain.Bar, error) {
	b, ok := r.byKey[key]
	if !ok {
		return nil, domain.ErrBarNotFound
	}
	return b, nil
}

func (r *stubBars) FindByID(_ context.Context, id int64) (*domain.Bar, error) {
	for _, b := range r.byKey {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, domain.ErrBarNotFound
}

func (r *stubBars) ListFavorites(_ context.Context, barID int64) ([]domain.Cocktail, error) {
	return r.favorites[barID], nil
}

type sentMail struct {
	to      string
	name    string
	payload string
}

type recordMailer struct {
	mu      sync.Mutex
	invites []sentMail
	codes   []sentMail
}

func (m *recordMailer) SendInvite(_ context.Context, to, name, rawToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invites = append(m.invites, sentMail{to: to, name: name, payload: rawToken})
	return nil
}

func (m *recordMailer) SendResetCode(_ context.Context, to, name, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes = append(m.codes, sentMail{to: to, name: name, payload: code})
	return nil
}

func (m *recordMailer) lastInvite() *sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.invites) == 0 {
		return nil
	}
	s := m.invites[len(m.invites)-1]
	return &s
}

func (m *recordMailer) lastCode() *sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.codes) == 0 {
		return nil
	}
	s := m.codes[len(m.codes)-1]
	return &s
}

type recordNotifier struct {
	mu     sync.Mutex
	joined []string
}

func (n *recordNotifier) StaffJoined(_ context.Context, _ *int64, name string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.joined = append(n.joined, name)
	return nil
}

func (n *recordNotifier) joinedNames() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.joined...)
}

package shell

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
)

const tokenIssuer = "healthmap"

var (
	ErrInvalidToken    = eris.New("shell: invalid session token")
	ErrSessionNotFound = eris.New("shell: session not found")
)

// Manager issues sessions and keeps them in an expiring in-memory store.
// Clients hold a signed token carrying the session id.
type Manager struct {
	sessions *cache.Cache
	secret   []byte
	ttl      time.Duration
	defaults map[string]bool
	now      func() time.Time
}

// NewManager creates a manager whose sessions and tokens expire after ttl
func NewManager(secret []byte, ttl time.Duration, layerDefaults map[string]bool) *Manager {
	return &Manager{
		sessions: cache.New(ttl, 2*ttl),
		secret:   secret,
		ttl:      ttl,
		defaults: layerDefaults,
		now:      time.Now,
	}
}

// Create opens a session mounted on the summary view and returns its token
func (m *Manager) Create() (*Session, string, error) {
	s := NewSession(uuid.NewString(), m.defaults)
	token, err := m.sign(s.ID)
	if err != nil {
		return nil, "", err
	}
	m.sessions.Set(s.ID, s, cache.DefaultExpiration)
	return s, token, nil
}

// Get returns a live session by id
func (m *Manager) Get(id string) (*Session, bool) {
	v, ok := m.sessions.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

// Resolve verifies a token and returns the session it names
func (m *Manager) Resolve(token string) (*Session, error) {
	id, err := m.parse(token)
	if err != nil {
		return nil, err
	}
	s, ok := m.Get(id)
	if !ok {
		return nil, eris.Wrapf(ErrSessionNotFound, "id %s", id)
	}
	return s, nil
}

// Delete ends a session
func (m *Manager) Delete(id string) {
	m.sessions.Delete(id)
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	return m.sessions.ItemCount()
}

func (m *Manager) sign(id string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		ID:        id,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", eris.Wrap(err, "shell: sign session token")
	}
	return token, nil
}

func (m *Manager) parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", eris.Wrap(ErrInvalidToken, err.Error())
	}
	if claims.ID == "" {
		return "", eris.Wrap(ErrInvalidToken, "missing session id")
	}
	return claims.ID, nil
}

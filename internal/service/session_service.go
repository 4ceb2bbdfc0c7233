package service

import (
	"bytes"

	"github.com/rotisserie/eris"

	"github.com/jengzang/health-insights-go/internal/charts"
	"github.com/jengzang/health-insights-go/internal/models"
	"github.com/jengzang/health-insights-go/internal/shell"
	"github.com/jengzang/health-insights-go/internal/view"
)

// SessionService drives the dashboard sessions and composes their views
type SessionService struct {
	sessions *shell.Manager
	composer *view.Composer
}

// NewSessionService creates a new session service
func NewSessionService(sessions *shell.Manager, composer *view.Composer) *SessionService {
	return &SessionService{sessions: sessions, composer: composer}
}

// Create opens a session and returns its token with the initial snapshot
func (s *SessionService) Create() (string, *shell.Session, view.Snapshot, error) {
	sess, token, err := s.sessions.Create()
	if err != nil {
		return "", nil, view.Snapshot{}, err
	}
	return token, sess, s.composer.Compose(sess.State()), nil
}

// Resolve returns the session named by a token
func (s *SessionService) Resolve(token string) (*shell.Session, error) {
	return s.sessions.Resolve(token)
}

// Close ends a session
func (s *SessionService) Close(sess *shell.Session) {
	s.sessions.Delete(sess.ID)
}

// Snapshot composes the mounted view of a session
func (s *SessionService) Snapshot(sess *shell.Session) view.Snapshot {
	return s.composer.Compose(sess.State())
}

// SwitchView mounts another view
func (s *SessionService) SwitchView(sess *shell.Session, v models.View) view.Snapshot {
	sess.Switch(v)
	return s.Snapshot(sess)
}

// Apply handles one interaction and returns the recomposed view
func (s *SessionService) Apply(sess *shell.Session, ev shell.Event) (view.Snapshot, error) {
	if err := sess.Apply(s.composer.Store(), ev); err != nil {
		return view.Snapshot{}, err
	}
	return s.Snapshot(sess), nil
}

// Chart renders one chart of the mounted view as PNG
func (s *SessionService) Chart(sess *shell.Session, id string, width, height int) ([]byte, error) {
	ch, ok := s.Snapshot(sess).Chart(id)
	if !ok {
		return nil, eris.Wrapf(ErrNotFound, "chart %q", id)
	}
	var buf bytes.Buffer
	if err := charts.RenderPNG(&buf, ch, width, height); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

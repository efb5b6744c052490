// Package shell is the navigation layer: a fixed set of named routes, most
// of them reachable only with an authenticated session. Each view renders
// into a writer and gets a context that is cancelled when the user
// navigates away, so a late response never touches a view that is gone.
package shell

import (
	"context"
	"errors"
	"io"

	"github.com/Carma123/Mental-Health-Support-System/internal"
	"github.com/Carma123/Mental-Health-Support-System/internal/session"
)

// ErrRouteNotFound covers both unknown routes and protected routes without
// a session: an unauthenticated navigation does not resolve the route at
// all, it does not merely hide it.
var ErrRouteNotFound = errors.New("route not found")

// View is one screen of the app.
type View interface {
	// Render draws the view. The context is cancelled when the user
	// navigates away.
	Render(ctx context.Context, w io.Writer) error
}

// ViewFunc adapts a function to the View interface.
type ViewFunc func(ctx context.Context, w io.Writer) error

func (f ViewFunc) Render(ctx context.Context, w io.Writer) error {
	return f(ctx, w)
}

type route struct {
	view         View
	authRequired bool
}

type Shell struct {
	session *session.Session
	logger  internal.Logger
	out     io.Writer

	routes map[string]route
	order  []string
	active string
	cancel context.CancelFunc
}

func New(sess *session.Session, logger internal.Logger, out io.Writer) *Shell {
	return &Shell{
		session: sess,
		logger:  logger,
		out:     out,
		routes:  make(map[string]route),
	}
}

// Handle registers a route. authRequired routes only resolve while a
// session is present.
func (s *Shell) Handle(name string, v View, authRequired bool) {
	if _, exists := s.routes[name]; !exists {
		s.order = append(s.order, name)
	}
	s.routes[name] = route{view: v, authRequired: authRequired}
}

// Routes lists the routes that currently resolve, in registration order.
func (s *Shell) Routes() []string {
	authed := s.session.IsAuthenticated()
	out := make([]string, 0, len(s.order))
	for _, name := range s.order {
		if s.routes[name].authRequired && !authed {
			continue
		}
		out = append(out, name)
	}
	return out
}

// Navigate tears down the active view and renders the named one. A
// protected route without a session behaves exactly like a missing route.
func (s *Shell) Navigate(name string) error {
	r, ok := s.routes[name]
	if !ok {
		return ErrRouteNotFound
	}
	if r.authRequired && !s.session.IsAuthenticated() {
		s.logger.Debugf("shell: refusing %q without a session", name)
		return ErrRouteNotFound
	}

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.active = name

	if err := r.view.Render(ctx, s.out); err != nil {
		s.logger.Warnf("shell: view %q: %v", name, err)
		return err
	}
	return nil
}

// Active names the currently mounted view.
func (s *Shell) Active() string {
	return s.active
}

// Logout clears the session and lands on the login view when one is
// registered.
func (s *Shell) Logout() error {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if err := s.session.Logout(); err != nil {
		return err
	}
	s.active = ""
	if _, ok := s.routes["login"]; ok {
		return s.Navigate("login")
	}
	return nil
}

// Close cancels the active view's context.
func (s *Shell) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

package shell

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Carma123/Mental-Health-Support-System/internal"
	"github.com/Carma123/Mental-Health-Support-System/internal/api"
	"github.com/Carma123/Mental-Health-Support-System/internal/service"
	"github.com/Carma123/Mental-Health-Support-System/internal/session"
)

func newTestShell(t *testing.T) (*Shell, *session.Session, *bytes.Buffer) {
	t.Helper()
	store := session.NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	sess := session.New(store, internal.NopLogger{})
	var buf bytes.Buffer
	return New(sess, internal.NopLogger{}, &buf), sess, &buf
}

func staticView(text string) View {
	return ViewFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	})
}

func TestShell_ProtectedRouteDoesNotResolveWithoutSession(t *testing.T) {
	sh, _, buf := newTestShell(t)
	sh.Handle("bookings", staticView("Your Bookings"), true)

	err := sh.Navigate("bookings")
	assert.ErrorIs(t, err, ErrRouteNotFound)
	assert.Empty(t, buf.String(), "nothing rendered for an unresolved route")
	assert.Empty(t, sh.Active())
}

func TestShell_ProtectedRouteResolvesWithSession(t *testing.T) {
	sh, sess, buf := newTestShell(t)
	sh.Handle("bookings", staticView("Your Bookings"), true)

	assert.NoError(t, sess.Login("MOCK-TOKEN"))
	assert.NoError(t, sh.Navigate("bookings"))
	assert.Contains(t, buf.String(), "Your Bookings")
	assert.Equal(t, "bookings", sh.Active())
}

func TestShell_UnknownRoute(t *testing.T) {
	sh, _, _ := newTestShell(t)
	assert.ErrorIs(t, sh.Navigate("nope"), ErrRouteNotFound)
}

func TestShell_PublicRoutesAlwaysResolve(t *testing.T) {
	sh, sess, _ := newTestShell(t)
	sh.Handle("home", staticView("Welcome"), false)
	sh.Handle("login", staticView("Login"), false)
	sh.Handle("bookings", staticView("Your Bookings"), true)

	assert.Equal(t, []string{"home", "login"}, sh.Routes())

	assert.NoError(t, sess.Login("MOCK-TOKEN"))
	assert.Equal(t, []string{"home", "login", "bookings"}, sh.Routes())
}

func TestShell_LogoutLandsOnLogin(t *testing.T) {
	sh, sess, buf := newTestShell(t)
	sh.Handle("login", staticView("Login"), false)
	sh.Handle("bookings", staticView("Your Bookings"), true)

	assert.NoError(t, sess.Login("MOCK-TOKEN"))
	assert.NoError(t, sh.Navigate("bookings"))

	buf.Reset()
	assert.NoError(t, sh.Logout())
	assert.False(t, sess.IsAuthenticated())
	assert.Equal(t, "login", sh.Active())
	assert.Contains(t, buf.String(), "Login")

	// The protected route stops resolving again.
	assert.ErrorIs(t, sh.Navigate("bookings"), ErrRouteNotFound)
}

func TestShell_MoodLogViewIsSessionGated(t *testing.T) {
	srv := httptest.NewServer(http.NewServeMux())
	t.Cleanup(srv.Close)

	store := session.NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	sess := session.New(store, internal.NopLogger{})
	client, err := api.NewClient(srv.URL, time.Second, sess, internal.NopLogger{}, nil)
	assert.NoError(t, err)
	moods := service.NewMoodList(client, internal.NopLogger{})

	var buf bytes.Buffer
	sh := New(sess, internal.NopLogger{}, &buf)
	sh.Handle("mood-log", MoodLogView(moods), true)

	assert.ErrorIs(t, sh.Navigate("mood-log"), ErrRouteNotFound)
	assert.Empty(t, buf.String(), "nothing rendered without a session")

	assert.NoError(t, sess.Login("MOCK-TOKEN"))
	assert.NoError(t, sh.Navigate("mood-log"))
	assert.Contains(t, buf.String(), "How are you feeling today?")
}

func TestShell_NavigationCancelsPreviousView(t *testing.T) {
	sh, sess, _ := newTestShell(t)
	assert.NoError(t, sess.Login("MOCK-TOKEN"))

	var firstCtx context.Context
	sh.Handle("first", ViewFunc(func(ctx context.Context, w io.Writer) error {
		firstCtx = ctx
		return nil
	}), true)
	sh.Handle("second", staticView("second"), true)

	assert.NoError(t, sh.Navigate("first"))
	assert.NoError(t, firstCtx.Err())

	assert.NoError(t, sh.Navigate("second"))
	assert.ErrorIs(t, firstCtx.Err(), context.Canceled, "leaving a view cancels its context")
}

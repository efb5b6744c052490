package service

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Carma123/Mental-Health-Support-System/internal"
	"github.com/Carma123/Mental-Health-Support-System/internal/api"
	"github.com/Carma123/Mental-Health-Support-System/internal/session"
)

// newTestClient points an API client at a stub backend with a logged-in
// session.
func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	sess := session.New(store, internal.NopLogger{})
	assert.NoError(t, sess.Login("MOCK-TOKEN"))

	client, err := api.NewClient(srv.URL, 5*time.Second, sess, internal.NopLogger{}, nil)
	assert.NoError(t, err)
	return client
}

func yes(string) bool { return true }
func no(string) bool  { return false }

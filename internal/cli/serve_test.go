package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeHandler(t *testing.T) {
	dbPath := tempDB(t)
	seedUsers(t, dbPath, seededUsers...)

	reg := prometheus.NewRegistry()
	opts := &RootOptions{Format: "text", Database: dbPath}
	sess, err := openSession(t.Context(), opts, &testWriter{t}, reg)
	require.NoError(t, err)
	defer sess.Close()

	h := sess.handler(reg)

	t.Run("healthz", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok\n", rec.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "chatstore_model_users_restored_total 3")
	})
}

func TestServeHealthzAfterClose(t *testing.T) {
	reg := prometheus.NewRegistry()
	opts := &RootOptions{Format: "text", Database: tempDB(t)}
	sess, err := openSession(t.Context(), opts, &testWriter{t}, reg)
	require.NoError(t, err)
	require.NoError(t, sess.Close())

	rec := httptest.NewRecorder()
	sess.handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServeStopsOnContextCancel(t *testing.T) {
	dbPath := tempDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	cmd := NewServeCommand(&RootOptions{Format: "text", Database: dbPath})
	cmd.SetContext(ctx)
	out, _, err := execute(t, cmd, "--metrics-addr", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Contains(t, out, "Serving metrics on 127.0.0.1:")
}

func TestServeBadAddress(t *testing.T) {
	cmd := NewServeCommand(&RootOptions{Format: "text", Database: tempDB(t)})
	_, _, err := execute(t, cmd, "--metrics-addr", "not-an-address")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

// testWriter routes log output through t.Log.
type testWriter struct {
	t *testing.T
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

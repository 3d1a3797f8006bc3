package observability

import (
	"io"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer(t *testing.T) {
	s := NewServer("127.0.0.1:0", zerolog.Nop())
	require.NoError(t, s.Start())
	defer s.Stop()

	RecordSessionOpened()

	resp, err := http.Get("http://" + s.Addr() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "plotpipe_sessions_opened_total")

	resp, err = http.Get("http://" + s.Addr() + "/health")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), `"status":"ok"`)

	resp, err = http.Post("http://"+s.Addr()+"/health", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_StopBeforeStart(t *testing.T) {
	assert.NoError(t, NewServer(":0", zerolog.Nop()).Stop())
}

func TestServer_BadAddr(t *testing.T) {
	s := NewServer("not-an-addr", zerolog.Nop())
	assert.Error(t, s.Start())
}

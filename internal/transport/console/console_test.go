package console_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyang/agent-console/internal/adapter/fixture"
	"github.com/alanyang/agent-console/internal/state"
	transportconsole "github.com/alanyang/agent-console/internal/transport/console"
)

func init() { gin.SetMode(gin.TestMode) }

type consoleBody struct {
	ID      string           `json:"id"`
	AgentID string           `json:"agentId"`
	View    state.DetailView `json:"view"`
}

func newRouter() (*gin.Engine, *state.Consoles) {
	consoles := state.NewConsoles(fixture.New(0), nil)
	r := gin.New()
	transportconsole.Register(r.Group("/consoles"), consoles)
	return r, consoles
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, consoleBody) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequestWithContext(context.Background(), method, path, nil)
	} else {
		req, _ = http.NewRequestWithContext(context.Background(), method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var got consoleBody
	if w.Code < 300 && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	}
	return w, got
}

// ── POST / (openConsole) ─────────────────────────────────────────────────────

func TestOpenConsole(t *testing.T) {
	r, consoles := newRouter()

	w, got := do(t, r, http.MethodPost, "/consoles", `{"agentId":"1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "1", got.AgentID)
	require.NotNil(t, got.View.Agent)
	assert.Equal(t, "Customer Support Bot", got.View.Agent.Name)
	assert.Equal(t, 1, consoles.Len())
}

func TestOpenConsole_Variants(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantDraft bool
		wantError string
	}{
		{"draft flag", `{"draft":true}`, true, ""},
		{"draft id", `{"agentId":"new123"}`, true, ""},
		{"missing id", `{}`, false, state.MsgMissingID},
		{"unknown id", `{"agentId":"99"}`, false, state.MsgDetailLoadFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newRouter()

			w, got := do(t, r, http.MethodPost, "/consoles", tt.body)
			require.Equal(t, http.StatusCreated, w.Code)
			assert.Equal(t, tt.wantDraft, got.View.IsDraft)
			assert.Equal(t, tt.wantError, got.View.Error)
		})
	}
}

func TestOpenConsole_BadJSON(t *testing.T) {
	r, _ := newRouter()

	w, _ := do(t, r, http.MethodPost, "/consoles", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ── Console actions ──────────────────────────────────────────────────────────

func TestConsoleActions(t *testing.T) {
	r, _ := newRouter()
	_, opened := do(t, r, http.MethodPost, "/consoles", `{"agentId":"2"}`)
	base := "/consoles/" + opened.ID

	w, got := do(t, r, http.MethodPost, base+"/roleplay", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, got.View.RolePlayOpen)

	w, got = do(t, r, http.MethodPost, base+"/call",
		`{"phoneNumber":"+1 (555) 010-2000","microphoneId":"mic","speakerId":"spk"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, got.View.RolePlayOpen)
	require.NotNil(t, got.View.Call)
	assert.Equal(t, "+1 (555) 010-2000", got.View.Call.PhoneNumber)
	assert.Equal(t, state.DeviceSettings{MicrophoneID: "mic", SpeakerID: "spk"}, got.View.Call.Devices)

	w, got = do(t, r, http.MethodDelete, base+"/call", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, got.View.Call)

	w, got = do(t, r, http.MethodPost, base+"/roleplay", "")
	require.Equal(t, http.StatusOK, w.Code)
	w, got = do(t, r, http.MethodDelete, base+"/roleplay", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, got.View.RolePlayOpen)

	w, got = do(t, r, http.MethodPost, base+"/reload", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sales Assistant", got.View.Agent.Name)

	w, got = do(t, r, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, opened.ID, got.ID)
}

func TestStartCall_RequiresPhoneNumber(t *testing.T) {
	r, _ := newRouter()
	_, opened := do(t, r, http.MethodPost, "/consoles", `{"agentId":"2"}`)

	w, _ := do(t, r, http.MethodPost, "/consoles/"+opened.ID+"/call", `{"microphoneId":"mic"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ── DELETE /:cid (closeConsole) ──────────────────────────────────────────────

func TestCloseConsole(t *testing.T) {
	r, consoles := newRouter()
	_, opened := do(t, r, http.MethodPost, "/consoles", `{"agentId":"5"}`)

	w, _ := do(t, r, http.MethodDelete, "/consoles/"+opened.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, consoles.Len())

	w, _ = do(t, r, http.MethodDelete, "/consoles/"+opened.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodGet, "/consoles/"+opened.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ── idle tracking ────────────────────────────────────────────────────────────

func TestRequestsKeepConsoleInUse(t *testing.T) {
	r, consoles := newRouter()
	_, used := do(t, r, http.MethodPost, "/consoles", `{"agentId":"1"}`)
	_, idle := do(t, r, http.MethodPost, "/consoles", `{"agentId":"2"}`)

	time.Sleep(5 * time.Millisecond)
	cutoff := time.Now()
	w, _ := do(t, r, http.MethodPost, "/consoles/"+used.ID+"/roleplay", "")
	require.Equal(t, http.StatusOK, w.Code)

	closed := consoles.CloseIdle(cutoff, nil)

	assert.Equal(t, []string{idle.ID}, closed)
	w, _ = do(t, r, http.MethodGet, "/consoles/"+used.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, http.MethodGet, "/consoles/"+idle.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

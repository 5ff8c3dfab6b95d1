package config

import (
	"encoding/json"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"business_consultant/pkg/core/agent"
)

func newTestHandler() *Handler {
	mgr := agent.NewManager(agent.Config{ActiveProvider: "gemini"})
	return NewHandler(mgr)
}

func TestHandleConfig(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest("GET", "/api/config", nil)
	w := httptest.NewRecorder()
	h.HandleConfig(w, req)

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ActiveProvider != "gemini" {
		t.Errorf("ActiveProvider = %q, want gemini", resp.ActiveProvider)
	}
	want := []string{"deepseek", "gemini", "ollama", "openai"}
	if !reflect.DeepEqual(resp.Available, want) {
		t.Errorf("Available = %v, want %v", resp.Available, want)
	}
}

func TestHandleSwitch(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest("POST", "/api/config/switch", strings.NewReader(`{"provider": "ollama"}`))
	w := httptest.NewRecorder()
	h.HandleSwitch(w, req)
	if w.Code != 200 {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Switched to ollama") {
		t.Errorf("body = %q", w.Body.String())
	}
	if got := h.AgentMgr.ActiveProvider(); got != "ollama" {
		t.Errorf("active provider = %q after switch", got)
	}
}

func TestHandleSwitchUnknownProvider(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest("POST", "/api/config/switch", strings.NewReader(`{"provider": "skynet"}`))
	w := httptest.NewRecorder()
	h.HandleSwitch(w, req)
	if w.Code != 400 {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if got := h.AgentMgr.ActiveProvider(); got != "gemini" {
		t.Errorf("active provider changed to %q on failed switch", got)
	}
}

package consult

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"business_consultant/pkg/core/agent"
	"business_consultant/pkg/core/consult"
	"business_consultant/pkg/core/scenario"
)

// fakeOllama emulates the local generate endpoint so sessions run
// without a real backend.
type fakeOllama struct {
	mu      sync.Mutex
	prompts []string
	fail    bool
}

func (f *fakeOllama) server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			Prompt string `json:"prompt"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		f.prompts = append(f.prompts, req.Prompt)
		n := len(f.prompts)
		f.mu.Unlock()

		if f.fail {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "model exploded"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"response": fmt.Sprintf("NARRATIVE %d", n)})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func (f *fakeOllama) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

func newTestHandler(t *testing.T, fake *fakeOllama) *Handler {
	t.Helper()
	srv := fake.server(t)
	t.Setenv("OLLAMA_HOST", srv.URL)
	mgr := agent.NewManager(agent.Config{
		ActiveProvider: "ollama",
		Models:         map[string]string{"ollama": "mistral"},
	})
	return NewHandler(mgr, nil)
}

func postJSON(t *testing.T, handle http.HandlerFunc, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest("POST", target, bytes.NewReader(data))
	w := httptest.NewRecorder()
	handle(w, req)
	return w
}

func TestHandleBusiness(t *testing.T) {
	fake := &fakeOllama{}
	h := newTestHandler(t, fake)
	s := scenario.Sample()

	w := postJSON(t, h.HandleBusiness, "/api/consult/business", BusinessRequest{
		Financial: s.Financial,
		Marketing: s.Marketing,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var review consult.BusinessReview
	if err := json.Unmarshal(w.Body.Bytes(), &review); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if review.ID == "" {
		t.Error("review ID not assigned")
	}
	if review.FinancialMetrics.Liquidity.Current != 6.18 {
		t.Errorf("Current = %v, want 6.18", review.FinancialMetrics.Liquidity.Current)
	}
	if review.FinancialNarrative != "NARRATIVE 1" || review.MarketingNarrative != "NARRATIVE 2" || review.CEONarrative != "NARRATIVE 3" {
		t.Errorf("narratives out of order: %q %q %q",
			review.FinancialNarrative, review.MarketingNarrative, review.CEONarrative)
	}

	if len(fake.recorded()) != 3 {
		t.Fatalf("backend calls = %d, want 3", len(fake.recorded()))
	}
	if !strings.Contains(fake.recorded()[2], "CFO DATA (Financials): NARRATIVE 1") {
		t.Error("synthesis prompt missing the CFO narrative")
	}
}

func TestHandleBusinessBadBody(t *testing.T) {
	fake := &fakeOllama{}
	h := newTestHandler(t, fake)

	req := httptest.NewRequest("POST", "/api/consult/business", strings.NewReader(`{"financial": {`))
	w := httptest.NewRecorder()
	h.HandleBusiness(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if len(fake.recorded()) != 0 {
		t.Errorf("backend consulted despite bad body: %d calls", len(fake.recorded()))
	}
}

func TestHandleBusinessMethodCheck(t *testing.T) {
	h := newTestHandler(t, &fakeOllama{})
	req := httptest.NewRequest("GET", "/api/consult/business", nil)
	w := httptest.NewRecorder()
	h.HandleBusiness(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestHandleBusinessUpstreamFailure(t *testing.T) {
	fake := &fakeOllama{fail: true}
	h := newTestHandler(t, fake)
	s := scenario.Sample()

	w := postJSON(t, h.HandleBusiness, "/api/consult/business", BusinessRequest{
		Financial: s.Financial,
		Marketing: s.Marketing,
	})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "cfo review") {
		t.Errorf("body missing failure context: %s", w.Body.String())
	}
	// The session aborts on the first failed advisor.
	if len(fake.recorded()) != 1 {
		t.Errorf("backend calls = %d, want 1", len(fake.recorded()))
	}
}

func TestHandleFinancialReview(t *testing.T) {
	fake := &fakeOllama{}
	h := newTestHandler(t, fake)

	w := postJSON(t, h.HandleFinancial, "/api/consult/financial", scenario.Sample().Financial)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var review consult.FinancialReview
	if err := json.Unmarshal(w.Body.Bytes(), &review); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if review.Metrics.Solvency.TIE != 22.5 {
		t.Errorf("TIE = %v, want 22.5", review.Metrics.Solvency.TIE)
	}
	if review.Narrative != "NARRATIVE 1" {
		t.Errorf("narrative = %q", review.Narrative)
	}
	if len(fake.recorded()) != 1 || !strings.Contains(fake.recorded()[0], "Fractional CFO") {
		t.Errorf("CFO briefing not sent: %v", fake.recorded())
	}
}

func TestHandleMarketingReview(t *testing.T) {
	fake := &fakeOllama{}
	h := newTestHandler(t, fake)

	w := postJSON(t, h.HandleMarketing, "/api/consult/marketing", scenario.Sample().Marketing)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var review consult.MarketingReview
	if err := json.Unmarshal(w.Body.Bytes(), &review); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if review.Metrics.UnitEconomics.Status != "Healthy" {
		t.Errorf("Status = %q, want Healthy", review.Metrics.UnitEconomics.Status)
	}
}

func TestHandleFinancialMetrics(t *testing.T) {
	h := newTestHandler(t, &fakeOllama{})

	// No shares_outstanding key: the decode boundary keeps the default
	// of 1 so per-share math still works.
	req := httptest.NewRequest("POST", "/api/metrics/financial",
		strings.NewReader(`{"net_income": 100, "stock_price": 45}`))
	w := httptest.NewRecorder()
	h.HandleFinancialMetrics(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var rep struct {
		Market struct {
			PE float64 `json:"P/E"`
		} `json:"Market"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rep.Market.PE != 0.45 {
		t.Errorf("P/E = %v, want 0.45", rep.Market.PE)
	}
}

func TestHandleMarketingMetrics(t *testing.T) {
	h := newTestHandler(t, &fakeOllama{})

	w := postJSON(t, h.HandleMarketingMetrics, "/api/metrics/marketing", scenario.Sample().Marketing)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var rep struct {
		Acquisition struct {
			CAC float64 `json:"CAC"`
		} `json:"Acquisition"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rep.Acquisition.CAC != 250 {
		t.Errorf("CAC = %v, want 250", rep.Acquisition.CAC)
	}
}

func TestHandleSampleScenario(t *testing.T) {
	h := newTestHandler(t, &fakeOllama{})

	req := httptest.NewRequest("GET", "/api/scenario/sample", nil)
	w := httptest.NewRecorder()
	h.HandleSampleScenario(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var s scenario.Scenario
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if s.Name != "SaaS Baseline" {
		t.Errorf("Name = %q", s.Name)
	}
	if s.Financial.Revenue != 1200000 || s.Marketing.MarketingSpend != 75000 {
		t.Errorf("sample values wrong: revenue=%v spend=%v", s.Financial.Revenue, s.Marketing.MarketingSpend)
	}
}

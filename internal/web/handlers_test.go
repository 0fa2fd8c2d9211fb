package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"mission-board/internal/board"
	"mission-board/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	st, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	engine := board.NewEngine(st, board.DefaultCatalog(), st, nil, board.Options{})
	srv, err := NewServer(engine, st, "test-secret")
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return ts, &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func login(t *testing.T, client *http.Client, baseURL, username string) {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/login", map[string]string{"username": username})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status=%d", resp.StatusCode)
	}
}

func TestAuthRequired(t *testing.T) {
	ts, client := newTestServer(t)

	resp, err := client.Get(ts.URL + "/api/board")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", resp.StatusCode)
	}
}

func TestBoardFlow(t *testing.T) {
	ts, client := newTestServer(t)
	login(t, client, ts.URL, "sam")

	resp, err := client.Get(ts.URL + "/api/board")
	if err != nil {
		t.Fatalf("GET board: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("board status=%d", resp.StatusCode)
	}
	var snap board.BoardSnapshot
	decode(t, resp, &snap)
	if len(snap.Slots) != 3 {
		t.Fatalf("slots=%d, want 3", len(snap.Slots))
	}

	var huntProposal string
	for _, ss := range snap.Slots {
		if ss.Slot == board.SlotHunt {
			huntProposal = ss.Proposals[0].ID
		}
	}

	resp = postJSON(t, client, ts.URL+"/api/board/slots/hunt/select", map[string]string{"proposal_id": huntProposal})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select status=%d", resp.StatusCode)
	}
	decode(t, resp, &snap)

	// Selecting a consumed proposal again is a 404.
	resp = postJSON(t, client, ts.URL+"/api/board/slots/hunt/select", map[string]string{"proposal_id": huntProposal})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("re-select status=%d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	// Link and submit a boosted day.
	resp = postJSON(t, client, ts.URL+"/api/missions/"+huntProposal+"/link", map[string]int64{"daily_task_id": 42})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("link status=%d", resp.StatusCode)
	}
	resp.Body.Close()

	submit := map[string]interface{}{
		"date":               "2024-01-01",
		"completed_task_ids": []int64{42},
		"base_xp_delta":      10,
		"xp_total_today":     10,
	}
	resp = postJSON(t, client, ts.URL+"/api/daily/submit", submit)
	var boost board.BoostResult
	decode(t, resp, &boost)
	if !boost.BoosterApplied {
		t.Fatalf("booster not applied: %+v", boost)
	}
	if boost.XPDelta <= 10 {
		t.Fatalf("xp_delta=%d, want boosted", boost.XPDelta)
	}

	// Replay converges.
	resp = postJSON(t, client, ts.URL+"/api/daily/submit", submit)
	decode(t, resp, &boost)
	if boost.BoosterApplied || boost.XPDelta != 10 {
		t.Fatalf("replay not idempotent: %+v", boost)
	}
}

func TestRerollConflict(t *testing.T) {
	ts, client := newTestServer(t)
	login(t, client, ts.URL, "pippin")

	resp := postJSON(t, client, ts.URL+"/api/board/slots/main/reroll", struct{}{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reroll status=%d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, client, ts.URL+"/api/board/slots/main/reroll", struct{}{})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second reroll status=%d, want 409", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, client, ts.URL+"/api/board/slots/bogus/reroll", struct{}{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bogus slot status=%d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestGameModeEndpoint(t *testing.T) {
	ts, client := newTestServer(t)
	login(t, client, ts.URL, "merry")

	resp := postJSON(t, client, ts.URL+"/api/profile/mode", map[string]string{"game_mode": "flow"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set mode status=%d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, client, ts.URL+"/api/profile/mode", map[string]string{"game_mode": "TURBO"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid mode status=%d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err := client.Get(ts.URL + "/api/profile")
	if err != nil {
		t.Fatalf("GET profile: %v", err)
	}
	var profile struct {
		GameMode string `json:"game_mode"`
	}
	decode(t, resp, &profile)
	if profile.GameMode != "FLOW" {
		t.Fatalf("game_mode=%q, want FLOW", profile.GameMode)
	}
}

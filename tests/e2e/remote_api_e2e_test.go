//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRemoteAPI_MainEndpoints(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "http://localhost:8080"), "/")
	playerID := envOr("E2E_PLAYER_ID", "e2e-player-"+time.Now().UTC().Format("20060102150405"))
	adminToken := strings.TrimSpace(os.Getenv("E2E_ADMIN_TOKEN"))
	client := &http.Client{Timeout: 20 * time.Second}

	t.Run("hunt requires player header", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/hunt", "", "", map[string]any{})
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", status, string(body))
		}
	})

	t.Run("weather snapshot", func(t *testing.T) {
		status, body, err := doRequest(client, http.MethodGet, baseURL+"/api/game/weather", "", "", nil)
		if err != nil {
			t.Fatalf("weather request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("weather status=%d body=%s", status, string(body))
		}
		var snap map[string]any
		if err := json.Unmarshal(body, &snap); err != nil {
			t.Fatalf("unmarshal weather: %v body=%s", err, string(body))
		}
		if kind, _ := snap["kind"].(string); strings.TrimSpace(kind) == "" {
			t.Fatalf("expected kind in weather response, got=%v", snap)
		}
	})

	t.Run("hunt stats and wallet", func(t *testing.T) {
		status, huntBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/hunt", playerID, "", map[string]any{})
		if status != http.StatusOK && status != http.StatusConflict {
			t.Fatalf("hunt status=%d body=%s", status, string(huntBody))
		}

		status, statsBody, err := doRequest(client, http.MethodGet, baseURL+"/api/players/"+playerID, playerID, "", nil)
		if err != nil {
			t.Fatalf("stats request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("stats status=%d body=%s", status, string(statsBody))
		}
		var stats map[string]any
		if err := json.Unmarshal(statsBody, &stats); err != nil {
			t.Fatalf("unmarshal stats: %v body=%s", err, string(statsBody))
		}
		if stats["id"] != playerID {
			t.Fatalf("stats id=%v want %s", stats["id"], playerID)
		}

		status, topBody, err := doRequest(client, http.MethodGet, baseURL+"/api/wallet/top?n=5", "", "", nil)
		if err != nil {
			t.Fatalf("leaderboard request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("leaderboard status=%d body=%s", status, string(topBody))
		}
	})

	t.Run("admin coin grant and shop buy", func(t *testing.T) {
		if adminToken == "" {
			t.Skip("E2E_ADMIN_TOKEN not set")
		}

		grantReq := map[string]any{"player_id": playerID, "amount": 100}
		status, grantBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/admin/coins/grant", "", adminToken, grantReq)
		if status != http.StatusOK {
			t.Fatalf("grant status=%d body=%s", status, string(grantBody))
		}

		buyReq := map[string]any{"item_id": "ammo", "quantity": 1}
		status, buyBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/shop/buy", playerID, "", buyReq)
		if status != http.StatusOK {
			t.Fatalf("buy status=%d body=%s", status, string(buyBody))
		}
		var buy map[string]any
		if err := json.Unmarshal(buyBody, &buy); err != nil {
			t.Fatalf("unmarshal buy: %v body=%s", err, string(buyBody))
		}
		if buy["item"] != "Ammo box" {
			t.Fatalf("bought item=%v want Ammo box", buy["item"])
		}
	})

	t.Run("kpi", func(t *testing.T) {
		status, kpiBody, err := doRequest(client, http.MethodGet, baseURL+"/ops/kpi", "", "", nil)
		if err != nil {
			t.Fatalf("kpi request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(kpiBody))
		}
		var kpi map[string]any
		if err := json.Unmarshal(kpiBody, &kpi); err != nil {
			t.Fatalf("unmarshal kpi: %v body=%s", err, string(kpiBody))
		}
		if _, ok := kpi["hunt_total"]; !ok {
			t.Fatalf("expected hunt_total in kpi response, got=%v", kpi)
		}
	})
}

func mustJSON(t *testing.T, client *http.Client, method, url, playerID, adminToken string, body map[string]any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, playerID, adminToken, body)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url, playerID, adminToken string, body map[string]any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		payloadBytes = b
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if strings.TrimSpace(playerID) != "" {
			req.Header.Set("X-Player-ID", playerID)
		}
		if strings.TrimSpace(adminToken) != "" {
			req.Header.Set("X-Admin-Token", adminToken)
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

package commands

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mihret/tmscli/internal/tms"
)

func TestRefuelingEstimateSendsDistanceAndPriceOnly(t *testing.T) {
	var estimateBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/refueling_requests/list/":
			io.WriteString(w, `{"results":[{"id":4,"requester":"Sara Tesfaye","requesters_car":"Toyota Hilux","status":"pending"}]}`)
		case "/refueling_requests/4/estimate/":
			if err := json.NewDecoder(r.Body).Decode(&estimateBody); err != nil {
				t.Errorf("decode estimate body: %v", err)
			}
			io.WriteString(w, `{"fuel_needed_liters":15.0,"total_cost":"1068.75"}`)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	setupEnv(t, server.URL)
	saveTestSession(t, tms.RoleTransportManager)

	out := captureOutput(t, func() {
		cmd := NewRefuelingCmd()
		cmd.SetArgs([]string{"estimate", "4", "--distance", "180", "--fuel-price", "71.25"})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("refueling estimate execute: %v", err)
		}
	})

	if estimateBody["estimated_distance_km"] != "180" {
		t.Fatalf("unexpected distance: %v", estimateBody["estimated_distance_km"])
	}
	if estimateBody["fuel_price_per_liter"] != "71.25" {
		t.Fatalf("unexpected fuel price: %v", estimateBody["fuel_price_per_liter"])
	}
	if _, present := estimateBody["estimated_vehicle_id"]; present {
		t.Fatalf("estimate body carries a vehicle id: %v", estimateBody)
	}
	if !strings.Contains(out, "estimated successfully") {
		t.Fatalf("expected estimate confirmation, got: %s", out)
	}
}

package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mihret/tmscli/internal/config"
	"github.com/mihret/tmscli/internal/notify"
	"github.com/mihret/tmscli/internal/tms"
)

type mutateCall struct {
	method  string
	path    string
	payload any
}

type fakeGateway struct {
	mu          sync.Mutex
	mutateCalls []mutateCall
	listCalls   int

	mutateBody []byte
	mutateErr  error
	listBody   []tms.TransportRequest
	listErr    error

	release chan struct{} // when set, Mutate blocks until closed
}

func (g *fakeGateway) Mutate(ctx context.Context, method, path string, payload any) ([]byte, error) {
	g.mu.Lock()
	g.mutateCalls = append(g.mutateCalls, mutateCall{method: method, path: path, payload: payload})
	release := g.release
	g.mu.Unlock()

	if release != nil {
		<-release
	}
	return g.mutateBody, g.mutateErr
}

func (g *fakeGateway) FetchListInto(ctx context.Context, path string, out any) error {
	g.mu.Lock()
	g.listCalls++
	g.mu.Unlock()

	if g.listErr != nil {
		return g.listErr
	}
	records, ok := out.(*[]tms.TransportRequest)
	if !ok {
		return fmt.Errorf("unexpected list target %T", out)
	}
	*records = append([]tms.TransportRequest(nil), g.listBody...)
	return nil
}

func (g *fakeGateway) calls() []mutateCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]mutateCall(nil), g.mutateCalls...)
}

func transportRecords(n int) []tms.TransportRequest {
	records := make([]tms.TransportRequest, n)
	for i := range records {
		records[i] = tms.TransportRequest{
			ID:          i + 1,
			Requester:   fmt.Sprintf("user-%d", i+1),
			Destination: fmt.Sprintf("site-%d", i+1),
			Status:      tms.StatusPending,
		}
	}
	return records
}

func newTestDispatcher(gw *fakeGateway, strategy string) (*Dispatcher[tms.TransportRequest], *notify.Feed) {
	feed := notify.NewFeed(time.Minute)
	return NewDispatcher[tms.TransportRequest](gw, Transport(), strategy, feed), feed
}

func noticesOf(feed *notify.Feed, kind notify.Kind) int {
	count := 0
	for _, n := range feed.Active() {
		if n.Kind == kind {
			count++
		}
	}
	return count
}

func TestDispatch_RejectEmptyReasonIsLocal(t *testing.T) {
	for _, reason := range []string{"", "   ", "\t\n"} {
		gw := &fakeGateway{}
		disp, feed := newTestDispatcher(gw, config.RefreshPatch)
		pager := NewPager[tms.TransportRequest](5)
		pager.SetRecords(transportRecords(3))

		_, err := disp.Dispatch(context.Background(), pager, pager.Records()[0], Intent{
			Kind:             IntentReject,
			RejectionMessage: reason,
		})
		if !IsValidation(err) {
			t.Fatalf("reason %q: expected validation error, got %v", reason, err)
		}
		if calls := gw.calls(); len(calls) != 0 {
			t.Fatalf("reason %q: expected no network call, saw %d", reason, len(calls))
		}
		if got := len(feed.Active()); got != 0 {
			t.Fatalf("reason %q: validation failure produced %d notices", reason, got)
		}
	}
}

func TestDispatch_EstimateRequiresAllInputs(t *testing.T) {
	cases := []struct {
		name   string
		intent Intent
	}{
		{"missing fuel price", Intent{Kind: IntentEstimate, VehicleID: 2, EstimatedKM: decimal.NewFromInt(120)}},
		{"missing vehicle", Intent{Kind: IntentEstimate, EstimatedKM: decimal.NewFromInt(120), FuelPricePerL: decimal.NewFromInt(80)}},
		{"missing distance", Intent{Kind: IntentEstimate, VehicleID: 2, FuelPricePerL: decimal.NewFromInt(80)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := &fakeGateway{}
			feed := notify.NewFeed(time.Minute)
			disp := NewDispatcher[tms.HighCostRequest](gw, HighCost(), config.RefreshPatch, feed)
			pager := NewPager[tms.HighCostRequest](5)
			pager.SetRecords([]tms.HighCostRequest{{ID: 1, Status: tms.StatusForwarded}})

			_, err := disp.Dispatch(context.Background(), pager, pager.Records()[0], tc.intent)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Message != "Please provide all required inputs." {
				t.Fatalf("unexpected message: %q", verr.Message)
			}
			if calls := gw.calls(); len(calls) != 0 {
				t.Fatalf("expected no network call, saw %d", len(calls))
			}
		})
	}
}

func TestDispatch_RejectFlowPatchesRecord(t *testing.T) {
	records := transportRecords(3)
	updated := records[1]
	updated.Status = tms.StatusRejected
	updated.RejectionNote = "missing driver license"
	body, _ := json.Marshal(updated)

	gw := &fakeGateway{mutateBody: body}
	disp, feed := newTestDispatcher(gw, config.RefreshPatch)
	pager := NewPager[tms.TransportRequest](5)
	pager.SetRecords(records)
	before := append([]tms.TransportRequest(nil), pager.Records()...)

	got, err := disp.Dispatch(context.Background(), pager, records[1], Intent{
		Kind:             IntentReject,
		RejectionMessage: "missing driver license",
	})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if got.Status != tms.StatusRejected {
		t.Fatalf("returned status = %q, want rejected", got.Status)
	}

	calls := gw.calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 mutation, got %d", len(calls))
	}
	if calls[0].path != "transport-requests/2/action/" {
		t.Fatalf("unexpected path: %s", calls[0].path)
	}
	payload, ok := calls[0].payload.(actionPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", calls[0].payload)
	}
	if payload.Action != "reject" || payload.RejectionMessage != "missing driver license" {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	after := pager.Records()
	for i := range after {
		if i == 1 {
			if after[i].Status != tms.StatusRejected {
				t.Fatalf("record 2 status = %q, want rejected", after[i].Status)
			}
			continue
		}
		if !reflect.DeepEqual(after[i], before[i]) {
			t.Fatalf("record %d changed: %+v -> %+v", i+1, before[i], after[i])
		}
	}

	if got := noticesOf(feed, notify.Success); got != 1 {
		t.Fatalf("expected 1 success notice, got %d", got)
	}
	if gw.listCalls != 0 {
		t.Fatalf("patch strategy refetched the list %d times", gw.listCalls)
	}
}

func TestDispatch_FailureLeavesCollectionUntouched(t *testing.T) {
	records := transportRecords(3)
	gw := &fakeGateway{mutateErr: errors.New("boom")}
	disp, feed := newTestDispatcher(gw, config.RefreshPatch)
	pager := NewPager[tms.TransportRequest](5)
	pager.SetRecords(records)
	before := append([]tms.TransportRequest(nil), pager.Records()...)

	_, err := disp.Dispatch(context.Background(), pager, records[0], Intent{Kind: IntentForward})
	if err == nil {
		t.Fatal("expected dispatch error")
	}

	after := pager.Records()
	for i := range after {
		if !reflect.DeepEqual(after[i], before[i]) {
			t.Fatalf("record %d changed after failed dispatch", i+1)
		}
	}
	if got := noticesOf(feed, notify.Error); got != 1 {
		t.Fatalf("expected exactly 1 error notice, got %d", got)
	}
	if got := noticesOf(feed, notify.Success); got != 0 {
		t.Fatalf("expected no success notice, got %d", got)
	}
}

func TestDispatch_SecondSubmitRejectedWhileInFlight(t *testing.T) {
	records := transportRecords(1)
	release := make(chan struct{})
	body, _ := json.Marshal(records[0])
	gw := &fakeGateway{mutateBody: body, release: release}
	disp, _ := newTestDispatcher(gw, config.RefreshPatch)
	pager := NewPager[tms.TransportRequest](5)
	pager.SetRecords(records)

	firstDone := make(chan error, 1)
	go func() {
		_, err := disp.Dispatch(context.Background(), pager, records[0], Intent{Kind: IntentForward})
		firstDone <- err
	}()

	// Wait for the first dispatch to reach the gateway.
	deadline := time.After(2 * time.Second)
	for {
		if len(gw.calls()) == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first dispatch never reached the gateway")
		case <-time.After(time.Millisecond):
		}
	}

	_, err := disp.Dispatch(context.Background(), pager, records[0], Intent{Kind: IntentForward})
	if !errors.Is(err, ErrActionInFlight) {
		t.Fatalf("expected ErrActionInFlight, got %v", err)
	}
	if len(gw.calls()) != 1 {
		t.Fatalf("second submit produced a network call; total calls %d", len(gw.calls()))
	}

	close(release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first dispatch error: %v", err)
	}
	if disp.Busy() {
		t.Fatal("dispatcher still busy after completion")
	}
}

func TestDispatch_RefetchStrategyReloadsList(t *testing.T) {
	records := transportRecords(2)
	updatedList := transportRecords(2)
	updatedList[0].Status = tms.StatusForwarded

	body, _ := json.Marshal(updatedList[0])
	gw := &fakeGateway{mutateBody: body, listBody: updatedList}
	disp, _ := newTestDispatcher(gw, config.RefreshRefetch)
	pager := NewPager[tms.TransportRequest](5)
	pager.SetRecords(records)

	got, err := disp.Dispatch(context.Background(), pager, records[0], Intent{Kind: IntentForward})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if gw.listCalls != 1 {
		t.Fatalf("expected 1 list refetch, got %d", gw.listCalls)
	}
	if got.Status != tms.StatusForwarded {
		t.Fatalf("returned status = %q, want forwarded", got.Status)
	}
	if pager.Records()[0].Status != tms.StatusForwarded {
		t.Fatalf("collection not refreshed: %+v", pager.Records()[0])
	}
}

func TestDispatch_AckResponseFallsBackToRefetch(t *testing.T) {
	records := transportRecords(1)
	refreshed := transportRecords(1)
	refreshed[0].Status = tms.StatusForwarded

	gw := &fakeGateway{mutateBody: []byte(`{"message":"Request forwarded successfully."}`), listBody: refreshed}
	disp, _ := newTestDispatcher(gw, config.RefreshPatch)
	pager := NewPager[tms.TransportRequest](5)
	pager.SetRecords(records)

	got, err := disp.Dispatch(context.Background(), pager, records[0], Intent{Kind: IntentForward})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if gw.listCalls != 1 {
		t.Fatalf("ack response should trigger one refetch, got %d", gw.listCalls)
	}
	if got.Status != tms.StatusForwarded {
		t.Fatalf("returned status = %q, want forwarded", got.Status)
	}
}

func TestDispatch_EstimatePayloadShape(t *testing.T) {
	gw := &fakeGateway{mutateBody: []byte(`{"id":7,"status":"forwarded"}`)}
	feed := notify.NewFeed(time.Minute)
	disp := NewDispatcher[tms.HighCostRequest](gw, HighCost(), config.RefreshPatch, feed)
	pager := NewPager[tms.HighCostRequest](5)
	pager.SetRecords([]tms.HighCostRequest{{ID: 7, Status: tms.StatusForwarded}})

	_, err := disp.Dispatch(context.Background(), pager, pager.Records()[0], Intent{
		Kind:          IntentEstimate,
		VehicleID:     3,
		EstimatedKM:   decimal.NewFromInt(250),
		FuelPricePerL: decimal.RequireFromString("112.50"),
	})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}

	calls := gw.calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 mutation, got %d", len(calls))
	}
	if calls[0].path != "highcost-requests/7/estimate/" {
		t.Fatalf("unexpected path: %s", calls[0].path)
	}
	payload, ok := calls[0].payload.(estimatePayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", calls[0].payload)
	}
	if payload.EstimatedVehicleID != 3 || !payload.EstimatedDistanceKM.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestDispatch_TransportApproveRequiresVehicle(t *testing.T) {
	gw := &fakeGateway{}
	disp, feed := newTestDispatcher(gw, config.RefreshPatch)
	pager := NewPager[tms.TransportRequest](5)
	records := transportRecords(1)
	records[0].Status = tms.StatusForwarded
	pager.SetRecords(records)

	_, err := disp.Dispatch(context.Background(), pager, pager.Records()[0], Intent{Kind: IntentApprove})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(gw.calls()) != 0 {
		t.Fatal("approve without a vehicle reached the network")
	}
	if got := len(feed.Active()); got != 0 {
		t.Fatalf("validation failure produced %d notices", got)
	}

	gw.mutateBody = []byte(`{"id":1,"status":"approved"}`)
	_, err = disp.Dispatch(context.Background(), pager, pager.Records()[0], Intent{Kind: IntentApprove, VehicleID: 3})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	calls := gw.calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 mutation, got %d", len(calls))
	}
	payload, ok := calls[0].payload.(actionPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", calls[0].payload)
	}
	if payload.Action != "approve" || payload.VehicleID != 3 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestDispatch_RefuelingEstimateOmitsVehicle(t *testing.T) {
	gw := &fakeGateway{mutateBody: []byte(`{"id":4,"status":"pending"}`)}
	feed := notify.NewFeed(time.Minute)
	disp := NewDispatcher[tms.RefuelingRequest](gw, Refueling(), config.RefreshPatch, feed)
	pager := NewPager[tms.RefuelingRequest](5)
	pager.SetRecords([]tms.RefuelingRequest{{ID: 4, Status: tms.StatusPending}})

	_, err := disp.Dispatch(context.Background(), pager, pager.Records()[0], Intent{
		Kind:          IntentEstimate,
		EstimatedKM:   decimal.NewFromInt(180),
		FuelPricePerL: decimal.RequireFromString("71.25"),
	})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}

	calls := gw.calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 mutation, got %d", len(calls))
	}
	if calls[0].path != "refueling_requests/4/estimate/" {
		t.Fatalf("unexpected path: %s", calls[0].path)
	}
	body, err := json.Marshal(calls[0].payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if strings.Contains(string(body), "estimated_vehicle_id") {
		t.Fatalf("refueling estimate payload carries a vehicle id: %s", body)
	}
}

func TestDispatch_EstimateUnavailableForTransport(t *testing.T) {
	gw := &fakeGateway{}
	disp, _ := newTestDispatcher(gw, config.RefreshPatch)
	pager := NewPager[tms.TransportRequest](5)
	pager.SetRecords(transportRecords(1))

	_, err := disp.Dispatch(context.Background(), pager, pager.Records()[0], Intent{
		Kind:          IntentEstimate,
		VehicleID:     1,
		EstimatedKM:   decimal.NewFromInt(10),
		FuelPricePerL: decimal.NewFromInt(10),
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(gw.calls()) != 0 {
		t.Fatal("unsupported action reached the network")
	}
}

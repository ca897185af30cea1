package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mihret/tmscli/internal/config"
	"github.com/mihret/tmscli/internal/notify"
)

// Gateway is the slice of the API client the dispatcher needs.
type Gateway interface {
	FetchListInto(ctx context.Context, path string, out any) error
	Mutate(ctx context.Context, method, path string, payload any) ([]byte, error)
}

// Dispatcher turns intents into gateway mutations and reconciles the list
// collection with the result. One instance serves one workflow screen; at
// most one action is in flight at a time.
type Dispatcher[T Record] struct {
	gw       Gateway
	desc     Descriptor
	strategy string
	feed     *notify.Feed

	mu   sync.Mutex
	busy bool
}

// NewDispatcher creates a dispatcher for one workflow instantiation.
// strategy is config.RefreshPatch or config.RefreshRefetch and is applied
// uniformly to every successful mutation on this screen.
func NewDispatcher[T Record](gw Gateway, desc Descriptor, strategy string, feed *notify.Feed) *Dispatcher[T] {
	if strategy != config.RefreshRefetch {
		strategy = config.RefreshPatch
	}
	return &Dispatcher[T]{gw: gw, desc: desc, strategy: strategy, feed: feed}
}

// Descriptor returns the workflow configuration this dispatcher serves.
func (d *Dispatcher[T]) Descriptor() Descriptor { return d.desc }

// Busy reports whether an action is currently outstanding.
func (d *Dispatcher[T]) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

// Refresh replaces the pager's collection from the list endpoint. Page state
// persists (clamped) across the refresh.
func (d *Dispatcher[T]) Refresh(ctx context.Context, pager *Pager[T]) error {
	var records []T
	if err := d.gw.FetchListInto(ctx, d.desc.Endpoints.List, &records); err != nil {
		return err
	}
	pager.SetRecords(records)
	return nil
}

// Dispatch validates the intent locally, issues exactly one mutation, and on
// success reconciles the collection per the configured strategy. On failure
// the collection is untouched and one error notice is pushed to the feed.
func (d *Dispatcher[T]) Dispatch(ctx context.Context, pager *Pager[T], record T, intent Intent) (T, error) {
	var zero T

	if err := d.desc.ValidateIntent(intent); err != nil {
		return zero, err
	}
	path, payload, err := d.route(record.RecordID(), intent)
	if err != nil {
		return zero, err
	}

	if !d.tryBegin() {
		return zero, ErrActionInFlight
	}
	defer d.end()

	body, err := d.gw.Mutate(ctx, http.MethodPost, path, payload)
	if err != nil {
		slog.Warn("workflow action failed",
			"workflow", string(d.desc.Kind), "action", string(intent.Kind),
			"record_id", record.RecordID(), "error", err)
		d.feed.Push(notify.Error, failureMessage(intent.Kind))
		return zero, err
	}

	updated, decoded := decodeRecord[T](body)
	if d.strategy == config.RefreshRefetch || !decoded {
		var records []T
		if err := d.gw.FetchListInto(ctx, d.desc.Endpoints.List, &records); err == nil {
			pager.SetRecords(records)
			for _, rec := range records {
				if rec.RecordID() == record.RecordID() {
					updated = rec
					decoded = true
					break
				}
			}
		}
	} else {
		id := updated.RecordID()
		pager.Replace(func(rec T) bool { return rec.RecordID() == id }, updated)
	}
	if !decoded {
		updated = record
	}

	d.feed.Push(notify.Success, successMessage(intent.Kind))
	return updated, nil
}

func (d *Dispatcher[T]) route(id int, intent Intent) (string, any, error) {
	eps := d.desc.Endpoints
	switch intent.Kind {
	case IntentEstimate:
		if eps.Estimate == nil {
			return "", nil, &ValidationError{Message: "Cost estimation is not part of this workflow."}
		}
		return eps.Estimate(id), estimatePayload{
			EstimatedDistanceKM: intent.EstimatedKM,
			FuelPricePerLiter:   intent.FuelPricePerL,
			EstimatedVehicleID:  intent.VehicleID,
		}, nil
	case IntentAssignVehicle:
		if eps.AssignVehicle == nil {
			return "", nil, &ValidationError{Message: "Vehicle assignment is not part of this workflow."}
		}
		return eps.AssignVehicle(id), struct{}{}, nil
	case IntentComplete:
		if eps.CompleteTrip != nil {
			return eps.CompleteTrip(id), struct{}{}, nil
		}
		fallthrough
	default:
		if eps.Action == nil {
			return "", nil, &ValidationError{Message: "This workflow accepts no actions."}
		}
		payload := actionPayload{Action: string(intent.Kind)}
		if intent.Kind == IntentReject {
			payload.RejectionMessage = intent.RejectionMessage
		}
		if intent.Kind == IntentApprove {
			payload.VehicleID = intent.VehicleID
			payload.DriverID = intent.DriverID
		}
		return eps.Action(id), payload, nil
	}
}

func (d *Dispatcher[T]) tryBegin() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.busy {
		return false
	}
	d.busy = true
	return true
}

func (d *Dispatcher[T]) end() {
	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()
}

type actionPayload struct {
	Action           string `json:"action"`
	RejectionMessage string `json:"rejection_message,omitempty"`
	VehicleID        int    `json:"vehicle_id,omitempty"`
	DriverID         int    `json:"driver_id,omitempty"`
}

// estimatePayload keeps the vehicle id out of the body for workflows that do
// not pick one; the refueling estimate sends distance and price only.
type estimatePayload struct {
	EstimatedDistanceKM decimal.Decimal `json:"estimated_distance_km"`
	FuelPricePerLiter   decimal.Decimal `json:"fuel_price_per_liter"`
	EstimatedVehicleID  int             `json:"estimated_vehicle_id,omitempty"`
}

// decodeRecord parses an action response as the updated record. Some action
// endpoints answer with a bare ack instead; those fall back to a refetch.
func decodeRecord[T Record](body []byte) (T, bool) {
	var updated T
	if len(body) == 0 {
		return updated, false
	}
	if err := json.Unmarshal(body, &updated); err != nil {
		return updated, false
	}
	return updated, updated.RecordID() != 0
}

func successMessage(kind IntentKind) string {
	switch kind {
	case IntentApprove:
		return "Request approved successfully!"
	case IntentForward:
		return "Request forwarded successfully!"
	case IntentReject:
		return "Request rejected successfully!"
	case IntentEstimate:
		return "Cost estimated successfully!"
	case IntentAssignVehicle:
		return "Vehicle assigned successfully!"
	case IntentComplete:
		return "Trip completed successfully!"
	default:
		return "Action completed successfully!"
	}
}

// failureMessage keeps the toast generic; the original detail goes to the
// log, not the user.
func failureMessage(kind IntentKind) string {
	return fmt.Sprintf("Failed to %s request.", actionVerb(kind))
}

func actionVerb(kind IntentKind) string {
	switch kind {
	case IntentApprove:
		return "approve"
	case IntentForward:
		return "forward"
	case IntentReject:
		return "reject"
	case IntentEstimate:
		return "estimate"
	case IntentAssignVehicle:
		return "assign vehicle for"
	case IntentComplete:
		return "complete"
	default:
		return "act on"
	}
}

// Package workflow implements the generic request-review flow shared by all
// request types: a paginated list, a detail/action panel, and a dispatcher
// that turns user intents into gateway mutations. Status transitions are
// decided server-side; the client only sends intents and adopts the status
// the server returns.
package workflow

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// IntentKind names a user-initiated transition.
type IntentKind string

const (
	IntentApprove       IntentKind = "approve"
	IntentForward       IntentKind = "forward"
	IntentReject        IntentKind = "reject"
	IntentEstimate      IntentKind = "estimate"
	IntentAssignVehicle IntentKind = "assign_vehicle"
	IntentComplete      IntentKind = "complete"
)

// Intent carries one action plus its auxiliary input.
type Intent struct {
	Kind             IntentKind
	RejectionMessage string
	VehicleID        int
	DriverID         int
	EstimatedKM      decimal.Decimal
	FuelPricePerL    decimal.Decimal
}

// ValidationError is a client-side precondition failure. It is raised before
// any network call and surfaced inline rather than as a toast.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidation reports whether err is a local precondition failure.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// ErrActionInFlight is returned when a submit arrives while a previous one is
// still outstanding on the same panel. The second attempt is rejected, not
// queued.
var ErrActionInFlight = errors.New("another action is already in flight")

// Validate checks the intent's workflow-independent preconditions. Vehicle
// requirements vary per workflow and live on the Descriptor.
func (i Intent) Validate() error {
	switch i.Kind {
	case IntentReject:
		if strings.TrimSpace(i.RejectionMessage) == "" {
			return &ValidationError{Message: "Rejection reason is required."}
		}
	case IntentEstimate:
		if !i.EstimatedKM.IsPositive() || !i.FuelPricePerL.IsPositive() {
			return &ValidationError{Message: "Please provide all required inputs."}
		}
	case IntentApprove, IntentForward, IntentAssignVehicle, IntentComplete:
	default:
		return &ValidationError{Message: "Unknown action."}
	}
	return nil
}

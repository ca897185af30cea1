package workflow

import (
	"github.com/mihret/tmscli/internal/gateway"
	"github.com/mihret/tmscli/internal/tms"
)

// Record is the common surface the workflow needs from a request variant.
type Record interface {
	RecordID() int
	RecordStatus() tms.Status
}

// Endpoints binds one workflow to its gateway paths. Optional path builders
// are nil for workflows without the corresponding step.
type Endpoints struct {
	List          string
	Action        func(id int) string
	Estimate      func(id int) string
	AssignVehicle func(id int) string
	CompleteTrip  func(id int) string
}

// Descriptor configures one workflow instantiation: which endpoints it talks
// to, which actions each role sees per status, and which extra fields the
// detail panel shows. This replaces the per-role screen duplication of the
// web client with a single table.
type Descriptor struct {
	Kind        tms.Kind
	Title       string
	Endpoints   Endpoints
	Actions     map[tms.Role]map[tms.Status][]IntentKind
	ExtraFields []string

	// ApproveVehicle marks workflows where approve assigns a vehicle and the
	// server rejects the action without a vehicle id.
	ApproveVehicle bool
	// EstimateVehicle marks workflows whose estimate picks a vehicle. The
	// refueling estimate uses the requester's own car and takes none.
	EstimateVehicle bool
}

// ValidateIntent checks the intent's local preconditions for this workflow,
// including its vehicle requirements.
func (d Descriptor) ValidateIntent(i Intent) error {
	if err := i.Validate(); err != nil {
		return err
	}
	switch i.Kind {
	case IntentEstimate:
		if d.EstimateVehicle && i.VehicleID <= 0 {
			return &ValidationError{Message: "Please provide all required inputs."}
		}
	case IntentApprove:
		if d.ApproveVehicle && i.VehicleID <= 0 {
			return &ValidationError{Message: "A vehicle is required to approve this request."}
		}
	}
	return nil
}

// ActionsFor returns the intents a role may submit for a record in the given
// status. Unknown role/status pairs yield nothing: the panel goes read-only.
func (d Descriptor) ActionsFor(role tms.Role, status tms.Status) []IntentKind {
	byStatus, ok := d.Actions[role]
	if !ok {
		return nil
	}
	return byStatus[status]
}

// Transport describes the standard trip-request workflow. Forwarding walks
// department manager -> transport manager -> CEO -> finance manager -> back
// to the transport manager, who alone approves by assigning a vehicle.
func Transport() Descriptor {
	return Descriptor{
		Kind:  tms.KindTransport,
		Title: "Transport Requests",
		Endpoints: Endpoints{
			List:   gateway.EndpointTransportList,
			Action: gateway.TransportAction,
		},
		ApproveVehicle: true,
		Actions: map[tms.Role]map[tms.Status][]IntentKind{
			tms.RoleDepartmentManager: {
				tms.StatusPending: {IntentForward, IntentReject},
			},
			tms.RoleTransportManager: {
				tms.StatusForwarded: {IntentApprove, IntentForward, IntentReject},
			},
			tms.RoleCEO: {
				tms.StatusForwarded: {IntentForward, IntentReject},
			},
			tms.RoleFinanceManager: {
				tms.StatusForwarded: {IntentForward, IntentReject},
			},
		},
		ExtraFields: []string{"start_day", "return_day", "start_time", "destination", "reason"},
	}
}

// HighCost describes the high-cost trip workflow. Chain: CEO -> general
// service -> transport manager (estimate + assign vehicle) -> budget manager.
func HighCost() Descriptor {
	return Descriptor{
		Kind:  tms.KindHighCost,
		Title: "High-Cost Requests",
		Endpoints: Endpoints{
			List:          gateway.EndpointHighCostList,
			Action:        gateway.HighCostAction,
			Estimate:      gateway.HighCostEstimate,
			AssignVehicle: gateway.HighCostAssignVehicle,
			CompleteTrip:  gateway.HighCostCompleteTrip,
		},
		EstimateVehicle: true,
		Actions: map[tms.Role]map[tms.Status][]IntentKind{
			tms.RoleCEO: {
				tms.StatusPending: {IntentForward, IntentReject},
			},
			tms.RoleGeneralService: {
				tms.StatusForwarded: {IntentForward, IntentReject},
			},
			tms.RoleTransportManager: {
				tms.StatusForwarded: {IntentEstimate, IntentForward, IntentReject},
				tms.StatusApproved:  {IntentAssignVehicle, IntentComplete},
			},
			tms.RoleBudgetManager: {
				tms.StatusForwarded: {IntentApprove, IntentReject},
			},
		},
		ExtraFields: []string{
			"start_day", "return_day", "destination", "reason",
			"estimated_vehicle", "estimated_distance_km", "fuel_price_per_liter",
			"fuel_needed_liters", "total_cost",
		},
	}
}

// Refueling describes the refueling workflow. Chain: transport manager
// (estimate first) -> general service -> CEO -> budget manager.
func Refueling() Descriptor {
	return Descriptor{
		Kind:  tms.KindRefueling,
		Title: "Refueling Requests",
		Endpoints: Endpoints{
			List:     gateway.EndpointRefuelingList,
			Action:   gateway.RefuelingAction,
			Estimate: gateway.RefuelingEstimate,
		},
		Actions: map[tms.Role]map[tms.Status][]IntentKind{
			tms.RoleTransportManager: {
				tms.StatusPending: {IntentEstimate, IntentForward, IntentReject},
			},
			tms.RoleGeneralService: {
				tms.StatusForwarded: {IntentForward, IntentReject},
			},
			tms.RoleCEO: {
				tms.StatusForwarded: {IntentForward, IntentReject},
			},
			tms.RoleBudgetManager: {
				tms.StatusForwarded: {IntentApprove, IntentReject},
			},
		},
		ExtraFields: []string{
			"requesters_car", "destination", "estimated_distance_km",
			"fuel_needed_liters", "fuel_price_per_liter", "total_cost",
		},
	}
}

// Maintenance describes the maintenance workflow. Chain: transport manager ->
// general service (files + cost) -> CEO -> budget manager.
func Maintenance() Descriptor {
	return Descriptor{
		Kind:  tms.KindMaintenance,
		Title: "Maintenance Requests",
		Endpoints: Endpoints{
			List:   gateway.EndpointMaintenanceList,
			Action: gateway.MaintenanceAction,
		},
		Actions: map[tms.Role]map[tms.Status][]IntentKind{
			tms.RoleTransportManager: {
				tms.StatusPending: {IntentForward, IntentReject},
			},
			tms.RoleGeneralService: {
				tms.StatusForwarded: {IntentForward, IntentReject},
			},
			tms.RoleCEO: {
				tms.StatusForwarded: {IntentForward, IntentReject},
			},
			tms.RoleBudgetManager: {
				tms.StatusForwarded: {IntentApprove, IntentReject},
			},
		},
		ExtraFields: []string{"requesters_car", "reason", "date", "maintenance_total_cost"},
	}
}

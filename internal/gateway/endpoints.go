package gateway

import "fmt"

// Endpoint paths, relative to the configured base URL. The catalog mirrors
// the server's URL layout; path parameters are filled by the helper funcs.
const (
	EndpointLogin       = "api/token/"
	EndpointCurrentUser = "api/users/me/"

	EndpointUserList    = "users-list/"
	EndpointDepartments = "departments/"

	EndpointVehicles          = "vehicles/"
	EndpointAvailableVehicles = "available-vehicles/"
	EndpointAvailableDrivers  = "available-drivers/"
	EndpointMyVehicle         = "my-vehicle/"

	EndpointTransportList   = "transport-requests/list/"
	EndpointTransportCreate = "transport-requests/create/"

	EndpointNotifications = "transport-requests/notifications/"
	EndpointUnreadCount   = "transport-requests/notifications/unread-count/"
	EndpointMarkAllRead   = "transport-requests/notifications/mark-all-read/"

	EndpointHighCostList   = "highcost-requests/list/"
	EndpointHighCostCreate = "highcost-requests/create/"

	EndpointRefuelingList   = "refueling_requests/list/"
	EndpointRefuelingMine   = "refueling_requests/my/"
	EndpointRefuelingCreate = "refueling_requests/create/"

	EndpointMaintenanceList   = "maintenance-requests/list/"
	EndpointMaintenanceMine   = "maintenance-requests/my/"
	EndpointMaintenanceCreate = "maintenance-requests/create/"
)

func TransportAction(id int) string {
	return fmt.Sprintf("transport-requests/%d/action/", id)
}

func HighCostAction(id int) string {
	return fmt.Sprintf("highcost-requests/%d/action/", id)
}

func HighCostEstimate(id int) string {
	return fmt.Sprintf("highcost-requests/%d/estimate/", id)
}

func HighCostAssignVehicle(id int) string {
	return fmt.Sprintf("highcost-requests/%d/assign-vehicle/", id)
}

func HighCostCompleteTrip(id int) string {
	return fmt.Sprintf("highcost-requests/%d/complete-trip/", id)
}

func RefuelingAction(id int) string {
	return fmt.Sprintf("refueling_requests/%d/action/", id)
}

func RefuelingEstimate(id int) string {
	return fmt.Sprintf("refueling_requests/%d/estimate/", id)
}

func MaintenanceAction(id int) string {
	return fmt.Sprintf("maintenance-requests/%d/action/", id)
}

func MaintenanceSubmitFiles(id int) string {
	return fmt.Sprintf("maintenance-requests/%d/submit-files/", id)
}

func UserApprove(id int) string {
	return fmt.Sprintf("approve/%d/", id)
}

func UserActivate(id int) string {
	return fmt.Sprintf("activate/%d/", id)
}

func UserDeactivate(id int) string {
	return fmt.Sprintf("deactivate/%d/", id)
}

func UserUpdateRole(id int) string {
	return fmt.Sprintf("update-role/%d/", id)
}

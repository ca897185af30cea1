package tms

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a request as reported by the server.
// The client never computes transitions; it adopts whatever the server returns.
type Status string

const (
	StatusPending   Status = "pending"
	StatusForwarded Status = "forwarded"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// Kind identifies which request family a record belongs to.
type Kind string

const (
	KindTransport   Kind = "transport"
	KindRefueling   Kind = "refueling"
	KindMaintenance Kind = "maintenance"
	KindHighCost    Kind = "highcost"
)

// TransportRequest is a standard vehicle trip request.
type TransportRequest struct {
	ID            int       `json:"id"`
	Requester     string    `json:"requester"`
	StartDay      string    `json:"start_day"`
	ReturnDay     string    `json:"return_day"`
	StartTime     string    `json:"start_time"`
	Destination   string    `json:"destination"`
	Reason        string    `json:"reason"`
	Employees     []int     `json:"employees,omitempty"`
	Vehicle       string    `json:"vehicle,omitempty"`
	Driver        string    `json:"driver,omitempty"`
	Status        Status    `json:"status"`
	RejectionNote string    `json:"rejection_message,omitempty"`
	TripCompleted bool      `json:"trip_completed"`
	CreatedAt     time.Time `json:"created_at"`
}

// HighCostRequest is a trip request whose estimated cost exceeds the
// organization threshold; it carries an extra cost-estimation and
// vehicle-assignment step before approval.
type HighCostRequest struct {
	ID               int             `json:"id"`
	Requester        string          `json:"requester"`
	StartDay         string          `json:"start_day"`
	ReturnDay        string          `json:"return_day"`
	StartTime        string          `json:"start_time"`
	Destination      string          `json:"destination"`
	Reason           string          `json:"reason"`
	Employees        []int           `json:"employees,omitempty"`
	Status           Status          `json:"status"`
	RejectionNote    string          `json:"rejection_message,omitempty"`
	EstimatedVehicle string          `json:"estimated_vehicle,omitempty"`
	VehicleAssigned  bool            `json:"vehicle_assigned"`
	EstimatedKM      decimal.Decimal `json:"estimated_distance_km"`
	FuelPricePerL    decimal.Decimal `json:"fuel_price_per_liter"`
	FuelNeededLiters decimal.Decimal `json:"fuel_needed_liters"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	TripCompleted    bool            `json:"trip_completed"`
	CreatedAt        time.Time       `json:"created_at"`
}

// RefuelingRequest asks for fuel for an assigned vehicle.
type RefuelingRequest struct {
	ID               int             `json:"id"`
	Requester        string          `json:"requester"`
	RequestersCar    string          `json:"requesters_car,omitempty"`
	Destination      string          `json:"destination"`
	Status           Status          `json:"status"`
	RejectionNote    string          `json:"rejection_message,omitempty"`
	EstimatedKM      decimal.Decimal `json:"estimated_distance_km"`
	FuelNeededLiters decimal.Decimal `json:"fuel_needed_liters"`
	FuelPricePerL    decimal.Decimal `json:"fuel_price_per_liter"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	CreatedAt        time.Time       `json:"created_at"`
}

// MaintenanceRequest asks for service on an assigned vehicle.
type MaintenanceRequest struct {
	ID            int             `json:"id"`
	Requester     string          `json:"requester"`
	RequestersCar string          `json:"requesters_car,omitempty"`
	Reason        string          `json:"reason"`
	Date          string          `json:"date"`
	Status        Status          `json:"status"`
	RejectionNote string          `json:"rejection_message,omitempty"`
	TotalCost     decimal.Decimal `json:"maintenance_total_cost"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Vehicle is a fleet vehicle reference.
type Vehicle struct {
	ID           int    `json:"id"`
	LicensePlate string `json:"license_plate"`
	Model        string `json:"model"`
	Capacity     int    `json:"capacity"`
	Status       string `json:"status"`
	FuelType     string `json:"fuel_type"`
	Driver       string `json:"driver_name,omitempty"`
}

// User is an account record.
type User struct {
	ID          int    `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        Role   `json:"role"`
	Department  string `json:"department,omitempty"`
	IsActive    bool   `json:"is_active"`
	IsPending   bool   `json:"is_pending"`
}

// Department groups employees under one department manager.
type Department struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Notification is an in-app notification record.
type Notification struct {
	ID        int       `json:"id"`
	Type      string    `json:"notification_type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

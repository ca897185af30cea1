package tui

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/mihret/tmscli/internal/config"
	"github.com/mihret/tmscli/internal/notify"
	"github.com/mihret/tmscli/internal/tms"
	"github.com/mihret/tmscli/internal/workflow"
)

func newTransportScreen(tab int, gw workflow.Gateway, cfg *config.Config, feed *notify.Feed, role tms.Role) *screen[tms.TransportRequest] {
	return newScreen(tab, gw, workflow.Transport(), cfg, feed, role,
		[]column{{"ID", 4}, {"REQUESTER", 18}, {"DESTINATION", 16}, {"START", 11}, {"STATUS", 10}},
		func(r tms.TransportRequest) []string {
			return []string{strconv.Itoa(r.ID), r.Requester, r.Destination, r.StartDay, string(r.Status)}
		},
		func(r tms.TransportRequest) [][2]string {
			pairs := [][2]string{
				{"Requester", r.Requester},
				{"Start day", r.StartDay},
				{"Return day", r.ReturnDay},
				{"Start time", r.StartTime},
				{"Destination", r.Destination},
				{"Reason", r.Reason},
				{"Status", string(r.Status)},
			}
			if r.Vehicle != "" {
				pairs = append(pairs, [2]string{"Vehicle", r.Vehicle})
			}
			if r.Driver != "" {
				pairs = append(pairs, [2]string{"Driver", r.Driver})
			}
			if r.RejectionNote != "" {
				pairs = append(pairs, [2]string{"Rejection note", r.RejectionNote})
			}
			return pairs
		})
}

func newHighCostScreen(tab int, gw workflow.Gateway, cfg *config.Config, feed *notify.Feed, role tms.Role) *screen[tms.HighCostRequest] {
	return newScreen(tab, gw, workflow.HighCost(), cfg, feed, role,
		[]column{{"ID", 4}, {"REQUESTER", 18}, {"DESTINATION", 16}, {"TOTAL COST", 12}, {"STATUS", 10}},
		func(r tms.HighCostRequest) []string {
			return []string{strconv.Itoa(r.ID), r.Requester, r.Destination, money(r.TotalCost), string(r.Status)}
		},
		func(r tms.HighCostRequest) [][2]string {
			pairs := [][2]string{
				{"Requester", r.Requester},
				{"Start day", r.StartDay},
				{"Return day", r.ReturnDay},
				{"Destination", r.Destination},
				{"Reason", r.Reason},
				{"Status", string(r.Status)},
				{"Distance (km)", amount(r.EstimatedKM)},
				{"Fuel price / liter", money(r.FuelPricePerL)},
				{"Fuel needed (l)", amount(r.FuelNeededLiters)},
				{"Total cost", money(r.TotalCost)},
			}
			if r.EstimatedVehicle != "" {
				pairs = append(pairs, [2]string{"Vehicle", r.EstimatedVehicle})
			}
			if r.TripCompleted {
				pairs = append(pairs, [2]string{"Trip", "completed"})
			}
			if r.RejectionNote != "" {
				pairs = append(pairs, [2]string{"Rejection note", r.RejectionNote})
			}
			return pairs
		})
}

func newRefuelingScreen(tab int, gw workflow.Gateway, cfg *config.Config, feed *notify.Feed, role tms.Role) *screen[tms.RefuelingRequest] {
	return newScreen(tab, gw, workflow.Refueling(), cfg, feed, role,
		[]column{{"ID", 4}, {"REQUESTER", 18}, {"VEHICLE", 14}, {"TOTAL COST", 12}, {"STATUS", 10}},
		func(r tms.RefuelingRequest) []string {
			return []string{strconv.Itoa(r.ID), r.Requester, r.RequestersCar, money(r.TotalCost), string(r.Status)}
		},
		func(r tms.RefuelingRequest) [][2]string {
			pairs := [][2]string{
				{"Requester", r.Requester},
				{"Vehicle", r.RequestersCar},
				{"Destination", r.Destination},
				{"Status", string(r.Status)},
				{"Distance (km)", amount(r.EstimatedKM)},
				{"Fuel needed (l)", amount(r.FuelNeededLiters)},
				{"Fuel price / liter", money(r.FuelPricePerL)},
				{"Total cost", money(r.TotalCost)},
			}
			if r.RejectionNote != "" {
				pairs = append(pairs, [2]string{"Rejection note", r.RejectionNote})
			}
			return pairs
		})
}

func newMaintenanceScreen(tab int, gw workflow.Gateway, cfg *config.Config, feed *notify.Feed, role tms.Role) *screen[tms.MaintenanceRequest] {
	return newScreen(tab, gw, workflow.Maintenance(), cfg, feed, role,
		[]column{{"ID", 4}, {"REQUESTER", 18}, {"VEHICLE", 14}, {"DATE", 11}, {"COST", 12}, {"STATUS", 10}},
		func(r tms.MaintenanceRequest) []string {
			return []string{strconv.Itoa(r.ID), r.Requester, r.RequestersCar, r.Date, money(r.TotalCost), string(r.Status)}
		},
		func(r tms.MaintenanceRequest) [][2]string {
			pairs := [][2]string{
				{"Requester", r.Requester},
				{"Vehicle", r.RequestersCar},
				{"Reason", r.Reason},
				{"Date", r.Date},
				{"Status", string(r.Status)},
				{"Total cost", money(r.TotalCost)},
			}
			if r.RejectionNote != "" {
				pairs = append(pairs, [2]string{"Rejection note", r.RejectionNote})
			}
			return pairs
		})
}

func money(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	return d.StringFixed(2) + " ETB"
}

func amount(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	return d.String()
}

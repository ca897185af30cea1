package commands

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mihret/tmscli/internal/gateway"
	"github.com/mihret/tmscli/internal/tms"
	"github.com/mihret/tmscli/internal/workflow"
)

func NewHighCostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highcost",
		Short: "Work with high-cost trip requests",
	}

	cmd.AddCommand(
		newHighCostListCmd(),
		newHighCostCreateCmd(),
		newHighCostActCmd(),
		newHighCostEstimateCmd(),
		newHighCostAssignVehicleCmd(),
		newHighCostCompleteTripCmd(),
	)

	return cmd
}

func newHighCostListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List high-cost requests visible to your role",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			var records []tms.HighCostRequest
			if err := client.FetchListInto(cmd.Context(), gateway.EndpointHighCostList, &records); err != nil {
				return err
			}

			pager := workflow.NewPager[tms.HighCostRequest](cfg.UI.PageSize)
			pager.SetRecords(records)
			pager.GoToPage(page)

			if pager.Len() == 0 {
				fmt.Println("No high-cost requests.")
				return nil
			}

			rows := make([][]string, 0, pager.PageSize())
			for _, r := range pager.PageSlice() {
				cost := "-"
				if !r.TotalCost.IsZero() {
					cost = r.TotalCost.StringFixed(2)
				}
				rows = append(rows, []string{
					strconv.Itoa(r.ID), r.Requester, r.Destination, cost, string(r.Status),
				})
			}
			printTable(
				[]string{"ID", "REQUESTER", "DESTINATION", "TOTAL COST", "STATUS"},
				[]int{4, 20, 18, 12, 10},
				rows,
				[]func(string) string{nil, nil, nil, nil, func(v string) string { return statusCell(tms.Status(v)) }},
			)
			fmt.Printf("\nPage %d of %d · %d requests\n", pager.Page(), pager.TotalPages(), pager.Len())
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	return cmd
}

func newHighCostCreateCmd() *cobra.Command {
	var startDay, returnDay, startTime, destination, reason string
	var employees []int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a new high-cost trip request",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			payload := map[string]any{
				"start_day":   startDay,
				"return_day":  returnDay,
				"start_time":  startTime,
				"destination": destination,
				"reason":      reason,
			}
			if len(employees) > 0 {
				payload["employees"] = employees
			}

			var created tms.HighCostRequest
			if err := client.MutateJSON(cmd.Context(), "POST", gateway.EndpointHighCostCreate, payload, &created); err != nil {
				return err
			}

			if created.ID != 0 {
				fmt.Printf("High-cost request #%d submitted (%s).\n", created.ID, created.Status)
			} else {
				fmt.Println("High-cost request submitted.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDay, "start-day", "", "Trip start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&returnDay, "return-day", "", "Trip return date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&startTime, "start-time", "", "Departure time (HH:MM)")
	cmd.Flags().StringVarP(&destination, "destination", "d", "", "Destination")
	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Purpose of the trip")
	cmd.Flags().IntSliceVar(&employees, "employees", nil, "Accompanying employee ids")
	_ = cmd.MarkFlagRequired("start-day")
	_ = cmd.MarkFlagRequired("return-day")
	_ = cmd.MarkFlagRequired("destination")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}

func newHighCostActCmd() *cobra.Command {
	var action, reason string

	cmd := &cobra.Command{
		Use:   "act <id>",
		Short: "Approve, forward, or reject a high-cost request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid request id: %s", args[0])
			}
			kind, err := intentKind(action)
			if err != nil {
				return err
			}

			cfg, sess, client, err := loadClient()
			if err != nil {
				return err
			}

			intent := workflow.Intent{Kind: kind, RejectionMessage: reason}
			return runAction[tms.HighCostRequest](cmd.Context(), cfg, sess, client, workflow.HighCost(), id, intent)
		},
	}

	cmd.Flags().StringVarP(&action, "action", "a", "", "Action to take (approve|forward|reject)")
	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Rejection reason (required for reject)")
	_ = cmd.MarkFlagRequired("action")
	return cmd
}

func newHighCostEstimateCmd() *cobra.Command {
	var vehicleID int
	var distance, fuelPrice string

	cmd := &cobra.Command{
		Use:   "estimate <id>",
		Short: "Record the cost estimate for a high-cost request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid request id: %s", args[0])
			}
			km, err := decimal.NewFromString(distance)
			if err != nil {
				return fmt.Errorf("invalid distance: %s", distance)
			}
			price, err := decimal.NewFromString(fuelPrice)
			if err != nil {
				return fmt.Errorf("invalid fuel price: %s", fuelPrice)
			}

			cfg, sess, client, err := loadClient()
			if err != nil {
				return err
			}

			intent := workflow.Intent{
				Kind:          workflow.IntentEstimate,
				VehicleID:     vehicleID,
				EstimatedKM:   km,
				FuelPricePerL: price,
			}
			return runAction[tms.HighCostRequest](cmd.Context(), cfg, sess, client, workflow.HighCost(), id, intent)
		},
	}

	cmd.Flags().IntVar(&vehicleID, "vehicle", 0, "Vehicle id used for the estimate")
	cmd.Flags().StringVar(&distance, "distance", "", "Estimated distance in km")
	cmd.Flags().StringVar(&fuelPrice, "fuel-price", "", "Fuel price per liter")
	_ = cmd.MarkFlagRequired("vehicle")
	_ = cmd.MarkFlagRequired("distance")
	_ = cmd.MarkFlagRequired("fuel-price")
	return cmd
}

func newHighCostAssignVehicleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign-vehicle <id>",
		Short: "Assign the estimated vehicle to an approved request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid request id: %s", args[0])
			}
			cfg, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			intent := workflow.Intent{Kind: workflow.IntentAssignVehicle}
			return runAction[tms.HighCostRequest](cmd.Context(), cfg, sess, client, workflow.HighCost(), id, intent)
		},
	}
}

func newHighCostCompleteTripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete-trip <id>",
		Short: "Mark an approved trip as completed, releasing the vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid request id: %s", args[0])
			}
			cfg, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			intent := workflow.Intent{Kind: workflow.IntentComplete}
			return runAction[tms.HighCostRequest](cmd.Context(), cfg, sess, client, workflow.HighCost(), id, intent)
		},
	}
}

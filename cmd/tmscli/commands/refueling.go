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

func NewRefuelingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refueling",
		Short: "Work with refueling requests",
	}

	cmd.AddCommand(
		newRefuelingListCmd(),
		newRefuelingMineCmd(),
		newRefuelingCreateCmd(),
		newRefuelingActCmd(),
		newRefuelingEstimateCmd(),
	)

	return cmd
}

func printRefuelingPage(pager *workflow.Pager[tms.RefuelingRequest]) {
	rows := make([][]string, 0, pager.PageSize())
	for _, r := range pager.PageSlice() {
		cost := "-"
		if !r.TotalCost.IsZero() {
			cost = r.TotalCost.StringFixed(2)
		}
		rows = append(rows, []string{
			strconv.Itoa(r.ID), r.Requester, r.RequestersCar, cost, string(r.Status),
		})
	}
	printTable(
		[]string{"ID", "REQUESTER", "VEHICLE", "TOTAL COST", "STATUS"},
		[]int{4, 20, 16, 12, 10},
		rows,
		[]func(string) string{nil, nil, nil, nil, func(v string) string { return statusCell(tms.Status(v)) }},
	)
	fmt.Printf("\nPage %d of %d · %d requests\n", pager.Page(), pager.TotalPages(), pager.Len())
}

func runRefuelingList(cmd *cobra.Command, endpoint string, page int) error {
	cfg, sess, client, err := loadClient()
	if err != nil {
		return err
	}
	if err := requireSession(sess); err != nil {
		return err
	}

	var records []tms.RefuelingRequest
	if err := client.FetchListInto(cmd.Context(), endpoint, &records); err != nil {
		return err
	}

	pager := workflow.NewPager[tms.RefuelingRequest](cfg.UI.PageSize)
	pager.SetRecords(records)
	pager.GoToPage(page)

	if pager.Len() == 0 {
		fmt.Println("No refueling requests.")
		return nil
	}
	printRefuelingPage(pager)
	return nil
}

func newRefuelingListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List refueling requests visible to your role",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefuelingList(cmd, gateway.EndpointRefuelingList, page)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	return cmd
}

func newRefuelingMineCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List your own refueling requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefuelingList(cmd, gateway.EndpointRefuelingMine, page)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	return cmd
}

func newRefuelingCreateCmd() *cobra.Command {
	var destination string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a refueling request for your assigned vehicle",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			payload := map[string]any{"destination": destination}
			var created tms.RefuelingRequest
			if err := client.MutateJSON(cmd.Context(), "POST", gateway.EndpointRefuelingCreate, payload, &created); err != nil {
				return err
			}

			if created.ID != 0 {
				fmt.Printf("Refueling request #%d submitted (%s).\n", created.ID, created.Status)
			} else {
				fmt.Println("Refueling request submitted.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&destination, "destination", "d", "", "Destination the fuel is needed for")
	_ = cmd.MarkFlagRequired("destination")
	return cmd
}

func newRefuelingActCmd() *cobra.Command {
	var action, reason string

	cmd := &cobra.Command{
		Use:   "act <id>",
		Short: "Approve, forward, or reject a refueling request",
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
			return runAction[tms.RefuelingRequest](cmd.Context(), cfg, sess, client, workflow.Refueling(), id, intent)
		},
	}

	cmd.Flags().StringVarP(&action, "action", "a", "", "Action to take (approve|forward|reject)")
	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Rejection reason (required for reject)")
	_ = cmd.MarkFlagRequired("action")
	return cmd
}

func newRefuelingEstimateCmd() *cobra.Command {
	var distance, fuelPrice string

	cmd := &cobra.Command{
		Use:   "estimate <id>",
		Short: "Record the fuel cost estimate for a refueling request",
		Long:  "The estimate is computed against the requester's assigned car; only distance and fuel price are supplied.",
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
				EstimatedKM:   km,
				FuelPricePerL: price,
			}
			return runAction[tms.RefuelingRequest](cmd.Context(), cfg, sess, client, workflow.Refueling(), id, intent)
		},
	}

	cmd.Flags().StringVar(&distance, "distance", "", "Estimated distance in km")
	cmd.Flags().StringVar(&fuelPrice, "fuel-price", "", "Fuel price per liter")
	_ = cmd.MarkFlagRequired("distance")
	_ = cmd.MarkFlagRequired("fuel-price")
	return cmd
}

package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mihret/tmscli/internal/gateway"
	"github.com/mihret/tmscli/internal/tms"
	"github.com/mihret/tmscli/internal/workflow"
)

func NewRequestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "Work with transport requests",
	}

	cmd.AddCommand(
		newRequestsListCmd(),
		newRequestsCreateCmd(),
		newRequestsActCmd(),
	)

	return cmd
}

func newRequestsListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transport requests visible to your role",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			var records []tms.TransportRequest
			if err := client.FetchListInto(cmd.Context(), gateway.EndpointTransportList, &records); err != nil {
				return err
			}

			pager := workflow.NewPager[tms.TransportRequest](cfg.UI.PageSize)
			pager.SetRecords(records)
			pager.GoToPage(page)

			if pager.Len() == 0 {
				fmt.Println("No transport requests.")
				return nil
			}

			rows := make([][]string, 0, pager.PageSize())
			for _, r := range pager.PageSlice() {
				rows = append(rows, []string{
					strconv.Itoa(r.ID), r.Requester, r.Destination, r.StartDay, string(r.Status),
				})
			}
			printTable(
				[]string{"ID", "REQUESTER", "DESTINATION", "START", "STATUS"},
				[]int{4, 20, 18, 11, 10},
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

func newRequestsCreateCmd() *cobra.Command {
	var startDay, returnDay, startTime, destination, reason string
	var employees []int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a new transport request",
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

			var created tms.TransportRequest
			if err := client.MutateJSON(cmd.Context(), "POST", gateway.EndpointTransportCreate, payload, &created); err != nil {
				return err
			}

			if created.ID != 0 {
				fmt.Printf("Transport request #%d submitted (%s).\n", created.ID, created.Status)
			} else {
				fmt.Println("Transport request submitted.")
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

func newRequestsActCmd() *cobra.Command {
	var action, reason string
	var vehicleID, driverID int

	cmd := &cobra.Command{
		Use:   "act <id>",
		Short: "Approve, forward, or reject a transport request",
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

			intent := workflow.Intent{
				Kind:             kind,
				RejectionMessage: reason,
				VehicleID:        vehicleID,
				DriverID:         driverID,
			}
			return runAction[tms.TransportRequest](cmd.Context(), cfg, sess, client, workflow.Transport(), id, intent)
		},
	}

	cmd.Flags().StringVarP(&action, "action", "a", "", "Action to take (approve|forward|reject)")
	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Rejection reason (required for reject)")
	cmd.Flags().IntVar(&vehicleID, "vehicle", 0, "Vehicle id to assign on approve")
	cmd.Flags().IntVar(&driverID, "driver", 0, "Driver id to assign on approve")
	_ = cmd.MarkFlagRequired("action")
	return cmd
}

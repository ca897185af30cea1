package commands

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mihret/tmscli/internal/gateway"
	"github.com/mihret/tmscli/internal/tms"
	"github.com/mihret/tmscli/internal/workflow"
)

func NewMaintenanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Work with maintenance requests",
	}

	cmd.AddCommand(
		newMaintenanceListCmd(),
		newMaintenanceMineCmd(),
		newMaintenanceCreateCmd(),
		newMaintenanceActCmd(),
		newMaintenanceSubmitFilesCmd(),
	)

	return cmd
}

func printMaintenancePage(pager *workflow.Pager[tms.MaintenanceRequest]) {
	rows := make([][]string, 0, pager.PageSize())
	for _, r := range pager.PageSlice() {
		cost := "-"
		if !r.TotalCost.IsZero() {
			cost = r.TotalCost.StringFixed(2)
		}
		rows = append(rows, []string{
			strconv.Itoa(r.ID), r.Requester, r.RequestersCar, r.Date, cost, string(r.Status),
		})
	}
	printTable(
		[]string{"ID", "REQUESTER", "VEHICLE", "DATE", "COST", "STATUS"},
		[]int{4, 20, 16, 11, 12, 10},
		rows,
		[]func(string) string{nil, nil, nil, nil, nil, func(v string) string { return statusCell(tms.Status(v)) }},
	)
	fmt.Printf("\nPage %d of %d · %d requests\n", pager.Page(), pager.TotalPages(), pager.Len())
}

func runMaintenanceList(cmd *cobra.Command, endpoint string, page int) error {
	cfg, sess, client, err := loadClient()
	if err != nil {
		return err
	}
	if err := requireSession(sess); err != nil {
		return err
	}

	var records []tms.MaintenanceRequest
	if err := client.FetchListInto(cmd.Context(), endpoint, &records); err != nil {
		return err
	}

	pager := workflow.NewPager[tms.MaintenanceRequest](cfg.UI.PageSize)
	pager.SetRecords(records)
	pager.GoToPage(page)

	if pager.Len() == 0 {
		fmt.Println("No maintenance requests.")
		return nil
	}
	printMaintenancePage(pager)
	return nil
}

func newMaintenanceListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List maintenance requests visible to your role",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaintenanceList(cmd, gateway.EndpointMaintenanceList, page)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	return cmd
}

func newMaintenanceMineCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List your own maintenance requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaintenanceList(cmd, gateway.EndpointMaintenanceMine, page)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	return cmd
}

func newMaintenanceCreateCmd() *cobra.Command {
	var reason, date string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a maintenance request for your assigned vehicle",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			payload := map[string]any{"reason": reason, "date": date}
			var created tms.MaintenanceRequest
			if err := client.MutateJSON(cmd.Context(), "POST", gateway.EndpointMaintenanceCreate, payload, &created); err != nil {
				return err
			}

			if created.ID != 0 {
				fmt.Printf("Maintenance request #%d submitted (%s).\n", created.ID, created.Status)
			} else {
				fmt.Println("Maintenance request submitted.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&reason, "reason", "r", "", "What needs fixing")
	cmd.Flags().StringVar(&date, "date", "", "Requested service date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("reason")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newMaintenanceActCmd() *cobra.Command {
	var action, reason string

	cmd := &cobra.Command{
		Use:   "act <id>",
		Short: "Approve, forward, or reject a maintenance request",
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
			return runAction[tms.MaintenanceRequest](cmd.Context(), cfg, sess, client, workflow.Maintenance(), id, intent)
		},
	}

	cmd.Flags().StringVarP(&action, "action", "a", "", "Action to take (approve|forward|reject)")
	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Rejection reason (required for reject)")
	_ = cmd.MarkFlagRequired("action")
	return cmd
}

func newMaintenanceSubmitFilesCmd() *cobra.Command {
	var cost, letter, proforma string

	cmd := &cobra.Command{
		Use:   "submit-files <id>",
		Short: "Attach the maintenance letter, proforma, and total cost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid request id: %s", args[0])
			}

			_, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			// The server requires letter, receipt, and cost together.
			fields := map[string]string{"maintenance_total_cost": cost}
			files := map[string]string{
				"maintenance_letter_file":  letter,
				"maintenance_receipt_file": proforma,
			}

			if err := client.SubmitFiles(cmd.Context(), http.MethodPatch, gateway.MaintenanceSubmitFiles(id), fields, files); err != nil {
				return err
			}
			fmt.Printf("Files submitted for maintenance request #%d.\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&cost, "cost", "", "Total maintenance cost")
	cmd.Flags().StringVar(&letter, "letter", "", "Path to the maintenance letter file")
	cmd.Flags().StringVar(&proforma, "proforma", "", "Path to the proforma/receipt file")
	_ = cmd.MarkFlagRequired("cost")
	_ = cmd.MarkFlagRequired("letter")
	_ = cmd.MarkFlagRequired("proforma")
	return cmd
}

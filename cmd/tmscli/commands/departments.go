package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mihret/tmscli/internal/gateway"
	"github.com/mihret/tmscli/internal/tms"
)

func NewDepartmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "departments",
		Short: "List departments (public, used during signup)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := loadClient()
			if err != nil {
				return err
			}

			var departments []tms.Department
			if err := client.FetchPublicList(cmd.Context(), gateway.EndpointDepartments, &departments); err != nil {
				return err
			}
			if len(departments) == 0 {
				fmt.Println("No departments.")
				return nil
			}
			for _, d := range departments {
				fmt.Printf("%4d  %s\n", d.ID, d.Name)
			}
			return nil
		},
	}
}

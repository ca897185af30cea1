package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mihret/tmscli/internal/gateway"
	"github.com/mihret/tmscli/internal/tms"
)

func NewVehiclesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicles",
		Short: "Inspect the vehicle fleet",
	}

	cmd.AddCommand(
		newVehiclesListCmd(),
		newVehiclesAvailableCmd(),
		newVehiclesDriversCmd(),
		newVehiclesMineCmd(),
	)

	return cmd
}

func printVehicles(vehicles []tms.Vehicle) {
	if len(vehicles) == 0 {
		fmt.Println("No vehicles.")
		return
	}
	rows := make([][]string, 0, len(vehicles))
	for _, v := range vehicles {
		rows = append(rows, []string{
			strconv.Itoa(v.ID), v.LicensePlate, v.Model, strconv.Itoa(v.Capacity), v.FuelType, v.Status,
		})
	}
	printTable(
		[]string{"ID", "PLATE", "MODEL", "SEATS", "FUEL", "STATUS"},
		[]int{4, 12, 18, 6, 8, 12},
		rows,
		nil,
	)
}

func newVehiclesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all fleet vehicles",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			var vehicles []tms.Vehicle
			if err := client.FetchListInto(cmd.Context(), gateway.EndpointVehicles, &vehicles); err != nil {
				return err
			}
			printVehicles(vehicles)
			return nil
		},
	}
}

func newVehiclesAvailableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "available",
		Short: "List vehicles free for assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			var vehicles []tms.Vehicle
			if err := client.FetchListInto(cmd.Context(), gateway.EndpointAvailableVehicles, &vehicles); err != nil {
				return err
			}
			printVehicles(vehicles)
			return nil
		},
	}
}

func newVehiclesDriversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "List drivers free for assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			var drivers []tms.User
			if err := client.FetchListInto(cmd.Context(), gateway.EndpointAvailableDrivers, &drivers); err != nil {
				return err
			}
			if len(drivers) == 0 {
				fmt.Println("No available drivers.")
				return nil
			}
			for _, d := range drivers {
				fmt.Printf("%4d  %s  (%s)\n", d.ID, d.FullName, d.PhoneNumber)
			}
			return nil
		},
	}
}

func newVehiclesMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "Show the vehicle assigned to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			var vehicle tms.Vehicle
			if err := client.GetJSON(cmd.Context(), gateway.EndpointMyVehicle, &vehicle); err != nil {
				return err
			}
			if vehicle.ID == 0 {
				fmt.Println("No vehicle assigned.")
				return nil
			}
			fmt.Printf("Plate:    %s\n", vehicle.LicensePlate)
			fmt.Printf("Model:    %s\n", vehicle.Model)
			fmt.Printf("Seats:    %d\n", vehicle.Capacity)
			fmt.Printf("Fuel:     %s\n", vehicle.FuelType)
			fmt.Printf("Status:   %s\n", vehicle.Status)
			return nil
		},
	}
}

package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mihret/tmscli/internal/version"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of tmscli",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tmscli %s %s/%s\n", version.Version, runtime.GOOS, runtime.GOARCH)
		},
	}
}

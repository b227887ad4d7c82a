package commands

import (
	"github.com/spf13/cobra"
)

// join <url>: enter a room from a shared invite URL.
func joinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <url>",
		Short: "Join a room from a shared URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, args[0])
		},
	}
}

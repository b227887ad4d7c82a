package commands

import (
	"github.com/spf13/cobra"
)

// open: mint a room and key, print the invite URL, start chatting.
func openCmd() *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Create a new room and print its shareable URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, base)
		},
	}
	cmd.Flags().StringVar(&base, "base", "https://ephemera.local/", "base URL the invite link is built on")
	return cmd
}

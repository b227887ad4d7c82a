package commands

import (
	"github.com/spf13/cobra"
)

var relayHost string

func Execute() error {
	root := &cobra.Command{
		Use:   "ephemera",
		Short: "Anonymous, end-to-end encrypted, self-erasing group chat",
	}

	root.PersistentFlags().StringVar(&relayHost, "relay", "127.0.0.1:1999", "relay host:port")

	root.AddCommand(openCmd(), joinCmd())
	return root.Execute()
}

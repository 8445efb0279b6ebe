package kv

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	putCmd = &cobra.Command{
		Use:   "put <key> <value>",
		Short: "Store a key-value pair",
		Long:  `Store a key-value pair on the node owning the key. The write is unacknowledged on the wire: a zero exit code confirms the command was sent, not that it was applied.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return coordinator.Put(args[0], args[1])
		},
	}

	getCmd = &cobra.Command{
		Use:   "get <key>",
		Short: "Look up the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, found, err := coordinator.Get(args[0])
			if err != nil {
				return err
			}
			if !found {
				cmd.SilenceUsage = true
				return fmt.Errorf("key %s not found", args[0])
			}
			fmt.Println(value)
			return nil
		},
	}

	removeCmd = &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a key",
		Long:  `Remove a key from the node owning it. Like put, the command is unacknowledged on the wire.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return coordinator.Remove(args[0])
		},
	}

	ownerCmd = &cobra.Command{
		Use:   "owner <key>",
		Short: "Show which node owns a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name, endpoint, err := coordinator.Owner(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s)\n", name, endpoint)
			return nil
		},
	}
)

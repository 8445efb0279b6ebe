package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshkv/meshkv/cmd/kv"
	"github.com/meshkv/meshkv/cmd/serve"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "meshkv",
		Short: "multi-node in-memory key-value store",
		Long: fmt.Sprintf(`meshkv (v%s)

A multi-node in-memory key-value storage engine with write-ahead-log
crash recovery, consistent-hashing key ownership and best-effort peer
replication.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of meshkv",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("meshkv v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

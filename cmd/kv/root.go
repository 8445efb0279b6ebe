package kv

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshkv/meshkv/client"
	cmdUtil "github.com/meshkv/meshkv/cmd/util"
	"github.com/meshkv/meshkv/server/common"
)

var (
	// coordinator is shared by all kv subcommands; created in PreRunE
	coordinator *client.Coordinator

	KeyValueCommands = &cobra.Command{
		Use:               "kv",
		Short:             "Interact with a meshkv cluster",
		Long:              `Interact with a meshkv cluster. Keys are routed to their owning node via the consistent-hashing ring built from the configured member list.`,
		PersistentPreRunE: setupCoordinator,
	}
)

func init() {
	cobra.OnInitialize(cmdUtil.InitConfig)
	cmdUtil.SetupClientFlags(KeyValueCommands)

	key := "log-level"
	KeyValueCommands.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	KeyValueCommands.AddCommand(putCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(removeCmd)
	KeyValueCommands.AddCommand(ownerCmd)
}

// setupCoordinator builds the ring-routing coordinator from the flags
func setupCoordinator(cmd *cobra.Command, _ []string) error {
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	common.InitLoggers(viper.GetString("log-level"))

	config, err := cmdUtil.GetClientConfig()
	if err != nil {
		return err
	}

	coordinator, err = client.NewCoordinator(*config)
	return err
}

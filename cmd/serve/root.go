package serve

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdUtil "github.com/meshkv/meshkv/cmd/util"
	"github.com/meshkv/meshkv/server"
	"github.com/meshkv/meshkv/server/common"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start a meshkv node",
		Long:    `Start a meshkv node with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is MESHKV_<flag> (e.g. MESHKV_ENDPOINT=0.0.0.0:7001)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	cobra.OnInitialize(cmdUtil.InitConfig)

	// add flags
	key := "name"
	ServeCmd.PersistentFlags().String(key, "node-1", cmdUtil.WrapString("Human-readable node name. The coordinator uses this name as the node's ring member name, so it must match the client side member list"))

	key = "wal"
	ServeCmd.PersistentFlags().String(key, "node.wal", cmdUtil.WrapString("Path of the write-ahead log file. The log is replayed on startup and grows without bound (no compaction)"))

	key = "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:7001", cmdUtil.WrapString("The address on which the node will listen (host:port)"))

	key = "peer"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Optional replication peer (host:port). Writes are forwarded fire-and-forget, with no acknowledgement and no retry"))

	key = "repl-queue"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("Capacity of the replication queue. When full, further replication messages are dropped (0 = default)"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// processConfig reads the configuration from the command line flags and
// environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	serveCmdConfig.Name = viper.GetString("name")
	serveCmdConfig.WALPath = viper.GetString("wal")
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.PeerEndpoint = viper.GetString("peer")
	serveCmdConfig.ReplQueueSize = viper.GetInt("repl-queue")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	if serveCmdConfig.Name == "" {
		return fmt.Errorf("node name must not be empty")
	}
	if serveCmdConfig.WALPath == "" {
		return fmt.Errorf("WAL path must not be empty")
	}

	return nil
}

// run starts the node and blocks until the process is signalled
func run(_ *cobra.Command, _ []string) error {
	common.InitLoggers(serveCmdConfig.LogLevel)

	fmt.Println(serveCmdConfig.String())

	node, err := server.NewNode(*serveCmdConfig, nil)
	if err != nil {
		return err
	}

	// block until SIGINT/SIGTERM, then stop gracefully
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	node.Stop()
	return nil
}

package util

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshkv/meshkv/server/common"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// InitConfig initializes configuration from .env files and environment
// variables. The environment variable format is MESHKV_<flag>, e.g.
// MESHKV_LOG_LEVEL=debug.
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("meshkv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// SetupClientFlags adds the common cluster connection flags to a command
func SetupClientFlags(cmd *cobra.Command) {
	key := "members"
	cmd.PersistentFlags().String(key, "node-1=localhost:7001", WrapString("Comma-separated list of cluster members in the format 'name=host:port,...'. Every client must use the identical list so all ring views agree"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The timeout in seconds for client connections"))

	key = "ring-replicas"
	cmd.PersistentFlags().Int(key, 0, WrapString("Virtual replica points per node on the hash ring (0 = default)"))
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() (*common.ClientConfig, error) {
	members, err := ParseMembers(viper.GetString("members"))
	if err != nil {
		return nil, err
	}

	return &common.ClientConfig{
		Members:       members,
		NumReplicas:   viper.GetInt("ring-replicas"),
		TimeoutSecond: viper.GetInt("timeout"),
	}, nil
}

// ParseMembers parses a 'name=host:port,...' member list
func ParseMembers(s string) (map[string]string, error) {
	members := make(map[string]string)
	for _, member := range strings.Split(s, ",") {
		member = strings.TrimSpace(member)
		if member == "" {
			continue
		}
		parts := strings.Split(member, "=")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid member format: %s (expected name=host:port)", member)
		}
		members[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("no cluster members configured")
	}
	return members, nil
}

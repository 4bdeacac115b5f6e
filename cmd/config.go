package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"manatan-gateway/core/config"

	"github.com/spf13/cobra"
)

// configCmd prints the resolved configuration, including derived values
// like the backend port and the library paths.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			log.Fatalf("Failed to render configuration: %v", err)
		}
		fmt.Println(string(out))
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}

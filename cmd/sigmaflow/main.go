package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/config"
	"github.com/sigmaflow-org/sigmaflow/helpers"
	"github.com/sigmaflow-org/sigmaflow/server"
	"github.com/sigmaflow-org/sigmaflow/tools"
)

// ============================================================================
// SIGMAFLOW CLI — Lean Six Sigma analysis engine
// ============================================================================

const version = "0.1.0"

var (
	configPath string
	paramsJSON string
	toolName   string
	pretty     bool
)

var rootCmd = &cobra.Command{
	Use:     "sigmaflow",
	Short:   "Lean Six Sigma statistical analysis engine",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return server.Serve(cfg, tools.Default())
	},
}

var runCmd = &cobra.Command{
	Use:   "run <data-file>",
	Short: "Run one analysis tool against a CSV or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if toolName == "" {
			return fmt.Errorf("--tool is required")
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		var rows []map[string]any
		if strings.EqualFold(filepath.Ext(args[0]), ".json") {
			rows, err = helpers.ParseJSONRows(data)
		} else {
			rows, err = helpers.ParseCSV(data)
		}
		if err != nil {
			return err
		}

		params := analysis.Params{}
		if paramsJSON != "" {
			if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
				return fmt.Errorf("invalid --params JSON: %w", err)
			}
		}

		result, err := tools.Default().Run(toolName, rows, params)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		if pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(result)
	},
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the registered analysis tools",
	Run: func(cmd *cobra.Command, args []string) {
		for _, d := range tools.Default().All() {
			line := fmt.Sprintf("%-22s %-40s [%s]", d.ID, d.Name, d.Phases)
			if len(d.Aliases) > 0 {
				line += "  aliases: " + strings.Join(d.Aliases, ", ")
			}
			fmt.Println(line)
		}
	},
}

func main() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "path to config.yaml (or CONFIG_PATH env)")
	runCmd.Flags().StringVar(&toolName, "tool", "", "tool id or alias to run")
	runCmd.Flags().StringVar(&paramsJSON, "params", "", "tool parameters as a JSON object")
	runCmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")

	rootCmd.AddCommand(serveCmd, runCmd, toolsCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

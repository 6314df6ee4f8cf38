package commands

import (
	"github.com/spf13/cobra"
)

// ServeCmd represents the serve command
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long:  "Run the MCP server over stdio; with --http, also mount the SSE MCP handler on the given address",
	Run: func(cmd *cobra.Command, args []string) {
		httpAddr, _ := cmd.Flags().GetString("http")
		RunServe(httpAddr)
	},
}

func init() {
	ServeCmd.Flags().String("http", "", "Also serve MCP over SSE on this address (e.g. :3456)")
}

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		RunVersion()
	},
}

// DoctorCmd represents the doctor command
var DoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check token resolution and GitHub API reachability",
	Run: func(cmd *cobra.Command, args []string) {
		RunDoctor()
	},
}

// ConfigCmd represents the config parent command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the persisted configuration",
	Long:  "Show the configuration or set the fallback GitHub token used when a tool call carries none",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		RunConfigShow()
	},
}

var configSetTokenCmd = &cobra.Command{
	Use:   "set-token <token>",
	Short: "Persist the fallback GitHub token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		RunConfigSetToken(args[0])
	},
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configSetTokenCmd)
}

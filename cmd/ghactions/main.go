package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ghactions/internal/commands"
)

var rootCmd = &cobra.Command{
	Use:   "ghactions",
	Short: "MCP server exposing GitHub Actions tools",
	Long:  "An MCP server exposing GitHub Actions tools: list workflows, fetch action metadata, trigger workflow dispatches with run correlation, and list releases",
}

func init() {
	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.DoctorCmd)
	rootCmd.AddCommand(commands.VersionCmd)

	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		// When spawned with a pipe on stdin we are being launched by an MCP
		// client: serve directly. On a terminal, show help instead.
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			commands.RunServe("")
			return
		}
		_ = cmd.Help()
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

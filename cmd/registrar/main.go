package main

import (
	"os"

	"github.com/spf13/cobra"

	"registrar/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "registrar",
		Short: "Registrar - program permissions and metadata service",
		Long:  `Registrar resolves user permissions against organizations and programs and serves cached program metadata from the discovery service.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

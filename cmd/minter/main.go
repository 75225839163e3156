package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "unknown"
	build   = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "minter",
		Short:         "Connect a wallet and mint Algorand assets",
		Version:       fmt.Sprintf("%s (%s)", version, build),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newServeCmd(), newKeystoreCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	envFiles []string

	rootCmd = &cobra.Command{
		Use:          "retouchlab",
		Short:        "Marketing site and content API for the RetouchLab studio",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "load settings from these .env files before the environment")
	rootCmd.AddCommand(serveCmd, seedCmd, adminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

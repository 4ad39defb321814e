package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host    string
	userID  int64
	secret  string
	tourney int64
)

var rootCmd = &cobra.Command{
	Use:   "squadup-cli",
	Short: "A CLI to interact with the squadup server",
	Long: `A command-line interface for making requests to the various endpoints
of the squadup application.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().Int64Var(&tourney, "tournament", 0, "The tournament id")
	rootCmd.PersistentFlags().Int64Var(&userID, "as", 0, "Act as this user id (signs a session cookie)")
	rootCmd.PersistentFlags().StringVar(&secret, "secret", "", "Session secret, defaults to SESSION_SECRET")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}

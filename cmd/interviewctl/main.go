package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"alfredoptarigan/interview-coach/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "interviewctl",
	Short: "Practice interviews from the terminal",
	Long:  "interviewctl generates interview questions for a company and role, scores your answers as you type them and keeps a history of finished sessions.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig also reads .env, through config.Load.
func loadConfig() *config.Config {
	return config.Load()
}

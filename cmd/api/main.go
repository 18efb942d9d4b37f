package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/pruefungsplaner/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pruefungsplaner",
		Short: "Pruefungsplaner API Server",
		Long:  `Pruefungsplaner is an exam-tracking service for students: record exams on a calendar and keep an eye on what is coming up.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/gqlfed/federation-planner/gateway"
	"github.com/gqlfed/federation-planner/queryplan"
	"github.com/gqlfed/federation-planner/server"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Federation Planner",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Federation Planner v0.1.0")
	},
}

var (
	schemaFile string
	queryFile  string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a query against a supergraph schema and print the plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		sdl, err := os.ReadFile(schemaFile)
		if err != nil {
			return fmt.Errorf("failed to read schema file: %w", err)
		}
		query, err := os.ReadFile(queryFile)
		if err != nil {
			return fmt.Errorf("failed to read query file: %w", err)
		}

		engine, err := gateway.NewEngine(string(sdl), http.DefaultClient)
		if err != nil {
			return err
		}
		plan, err := engine.PlanQuery(string(query))
		if err != nil {
			return err
		}

		fmt.Print(queryplan.Doc[string](plan))
		return nil
	},
}

var settingsFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Federation Planner server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Run(settingsFile)
	},
}

func main() {
	planCmd.Flags().StringVar(&schemaFile, "schema", "supergraph.graphql", "path to the supergraph SDL")
	planCmd.Flags().StringVar(&queryFile, "query", "query.graphql", "path to the operation document")
	serveCmd.Flags().StringVar(&settingsFile, "config", "planner.yaml", "path to the settings file")

	rootCmd := cobra.Command{Use: "federation-planner"}
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

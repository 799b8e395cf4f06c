package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bozor/daftar/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
	token   string

	databaseURL    string
	migrationsPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "daftar-cli",
		Short: "Bozor Daftari CLI tool",
		Long:  `A command line interface for managing the Bozor Daftari ledger.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Daftar API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("DAFTAR_TOKEN"), "Bearer token for authenticated endpoints")

	// Migration commands
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}
	migrateCmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	migrateCmd.PersistentFlags().StringVar(&migrationsPath, "path", "internal/infrastructure/postgres/migrations", "Path to migration files")

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			if err := postgres.RunMigrations(databaseURL, migrationsPath); err != nil {
				fmt.Printf("Migration failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Migrations applied")
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Run: func(cmd *cobra.Command, args []string) {
			if err := postgres.RunMigrationsDown(databaseURL, migrationsPath); err != nil {
				fmt.Printf("Rollback failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Last migration rolled back")
		},
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)

	// Confirmation commands
	confirmationsCmd := &cobra.Command{
		Use:   "confirmations",
		Short: "Payment confirmation operations",
	}

	var marketID string
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "List pending payment confirmations for a market",
		Run: func(cmd *cobra.Command, args []string) {
			listQueue(marketID)
		},
	}
	queueCmd.Flags().StringVar(&marketID, "market", "", "Market ID")
	queueCmd.MarkFlagRequired("market")

	confirmationsCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(confirmationsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func listQueue(marketID string) {
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/v1/confirmations?market_id="+marketID, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var items []struct {
		Confirmation struct {
			ID          string `json:"id"`
			EntryID     string `json:"entry_id"`
			RequestedBy string `json:"requested_by"`
			CreatedAt   string `json:"created_at"`
		} `json:"confirmation"`
		Entry struct {
			Client  string `json:"client"`
			Product string `json:"mahsulot"`
			Total   string `json:"summa"`
		} `json:"entry"`
	}
	if err := json.Unmarshal(body, &items); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if len(items) == 0 {
		fmt.Println("No pending confirmations")
		return
	}

	for _, item := range items {
		fmt.Printf("%s  entry=%s  client=%s  mahsulot=%s  summa=%s  requested_by=%s  created_at=%s\n",
			item.Confirmation.ID, item.Confirmation.EntryID,
			item.Entry.Client, item.Entry.Product, item.Entry.Total,
			item.Confirmation.RequestedBy, item.Confirmation.CreatedAt)
	}
}

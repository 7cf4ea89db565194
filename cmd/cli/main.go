package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

// Swappable for tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "gowallet-cli",
		Short: "GoWallet CLI tool",
		Long:  `A command line interface for interacting with the GoWallet API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoWallet API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("GOWALLET_TOKEN"), "Bearer token for authenticated commands")

	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(walletCmd())
	rootCmd.AddCommand(transactionsCmd())
	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func registerCmd() *cobra.Command {
	var email, phone, password, firstName, lastName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user and wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
				"email":      email,
				"phone":      phone,
				"password":   password,
				"first_name": firstName,
				"last_name":  lastName,
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")

	return cmd
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
				"email":    email,
				"password": password,
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")

	return cmd
}

func walletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the wallet balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodGet, "/api/v1/wallet/", nil)
		},
	}

	var fundAmount, fundReference string
	fundCmd := &cobra.Command{
		Use:   "fund",
		Short: "Fund the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"amount": fundAmount}
			if fundReference != "" {
				body["reference"] = fundReference
			}
			return doRequest(http.MethodPost, "/api/v1/wallet/fund", body)
		},
	}
	fundCmd.Flags().StringVar(&fundAmount, "amount", "", "Amount to fund")
	fundCmd.Flags().StringVar(&fundReference, "reference", "", "Caller supplied reference (optional)")

	var withdrawAmount string
	withdrawCmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw from the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodPost, "/api/v1/wallet/withdraw", map[string]string{
				"amount": withdrawAmount,
			})
		},
	}
	withdrawCmd.Flags().StringVar(&withdrawAmount, "amount", "", "Amount to withdraw")

	var transferTo, transferAmount, transferDescription string
	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer to another user's wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodPost, "/api/v1/wallet/transfer", map[string]string{
				"to_user_id":  transferTo,
				"amount":      transferAmount,
				"description": transferDescription,
			})
		},
	}
	transferCmd.Flags().StringVar(&transferTo, "to", "", "Recipient user ID")
	transferCmd.Flags().StringVar(&transferAmount, "amount", "", "Amount to transfer")
	transferCmd.Flags().StringVar(&transferDescription, "description", "", "Transfer description (optional)")

	cmd.AddCommand(balanceCmd, fundCmd, withdrawCmd, transferCmd)

	return cmd
}

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Transaction history",
	}

	var limit, offset int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List wallet transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/wallet/transactions?limit=%d&offset=%d", limit, offset)
			return doRequest(http.MethodGet, path, nil)
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	getCmd := &cobra.Command{
		Use:   "get [reference]",
		Short: "Fetch a transaction by reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodGet, "/api/v1/transactions/"+args[0], nil)
		},
	}

	cmd.AddCommand(listCmd, getCmd)

	return cmd
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func doRequest(method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		fmt.Println(string(raw))
		return nil
	}
	printJSON(decoded)

	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

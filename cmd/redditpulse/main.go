package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/audiencelab/redditpulse/internal/application/startup"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "redditpulse",
		Short: "Reddit engagement analytics backend",
		Long:  "RedditPulse reconciles locally authored Reddit content against live engagement data and serves dashboard analytics.",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startup.Initialize()
		},
	}

	hashCmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Generate a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			fmt.Println(string(hash))
			return nil
		},
	}

	rootCmd.AddCommand(serveCmd, hashCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Application failed: %v", err)
		os.Exit(1)
	}
}

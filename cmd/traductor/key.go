package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"traductor/internal/domain"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the provider API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store the API key in the credentials file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := credentialStore(cfg)
		if err != nil {
			return err
		}
		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			fmt.Print("API key: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			key = strings.TrimSpace(line)
		}
		if key == "" {
			return fmt.Errorf("empty key")
		}
		if err := store.Set(key); err != nil {
			return err
		}
		fmt.Println("API key saved.")
		return nil
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show whether an API key is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := credentialStore(cfg)
		if err != nil {
			return err
		}
		key, err := store.Get()
		if errors.Is(err, domain.ErrCredentialMissing) {
			fmt.Println("No API key configured.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("API key configured (%s).\n", mask(key))
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd, keyShowCmd)
	rootCmd.AddCommand(keyCmd)
}

func mask(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "…" + key[len(key)-4:]
}

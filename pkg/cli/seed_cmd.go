package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"quetzal-gate/internal/app"
)

const (
	defaultAdminEmail = "casa@quetzal.com.br"
	defaultAdminName  = "Administrador"
)

// Test seams for the interactive prompt.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

func newSeedAdminCmd() *cobra.Command {
	var (
		store    storeFlags
		email    string
		name     string
		password string
	)
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create or reset the bootstrap administrator",
		Long: `Create the administrator account, or reset the password of the account with
that email, re-activate it and give it the admin role.

The password comes from --password, then SEED_ADMIN_PASSWORD, then an
interactive prompt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags(), store)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("password") {
				password = os.Getenv("SEED_ADMIN_PASSWORD")
			}
			if password == "" {
				password, err = promptPassword(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}

			pools, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer pools.Close() //nolint:errcheck

			a, err := app.New(app.Deps{Cfg: cfg, Pools: pools, Logger: newLogger(cmd.ErrOrStderr(), cfg)})
			if err != nil {
				return err
			}
			account, err := a.Services.Accounts.SeedAdmin(cmd.Context(), email, name, password)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "administrator %s ready (id %d)\n", account.Email, account.ID)
			return nil
		},
	}
	store.register(cmd.Flags())
	cmd.Flags().StringVar(&email, "email", defaultAdminEmail, "administrator email")
	cmd.Flags().StringVar(&name, "name", defaultAdminName, "administrator display name")
	cmd.Flags().StringVar(&password, "password", "", "administrator password (prefer SEED_ADMIN_PASSWORD or the prompt)")
	return cmd
}

// promptPassword reads the password twice from the terminal without echo.
func promptPassword(w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return "", errors.New("no password given: use --password, SEED_ADMIN_PASSWORD or run in a terminal")
	}

	printf(w, "Administrator password: ")
	first, err := readPassword(fd)
	printf(w, "\n")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	printf(w, "Repeat password: ")
	second, err := readPassword(fd)
	printf(w, "\n")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	pw := strings.TrimSpace(string(first))
	if pw == "" {
		return "", errors.New("password must not be empty")
	}
	return pw, nil
}

package main

import (
	"context"
	"errors"
	"fmt"

	"welfare-ledger/internal/domain/account"
	"welfare-ledger/internal/domain/customer"
	"welfare-ledger/internal/event"
	"welfare-ledger/internal/infrastructure/database/postgres"
	"welfare-ledger/internal/notification"
	"welfare-ledger/internal/pkg/apperrors"

	"github.com/spf13/cobra"
)

var (
	seedEmail    string
	seedPassword string
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create an administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := initializeApp(cfgPath)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer dbPool.Close()

		customers := customer.NewCustomerService(postgres.NewCustomerRepository(dbPool, logger), event.NewNoopEventPublisher(logger), logger)
		accounts := account.NewAccountService(
			postgres.NewAccountRepository(dbPool, logger),
			customers,
			account.NewTokenIssuer(cfg.Server.Auth.JWTSecret, cfg.Server.Auth.TokenTTL),
			notification.NewMailer(cfg.Mail, logger),
			logger,
		)

		acc, err := accounts.SeedAdmin(ctx, seedEmail, seedPassword)
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			fmt.Fprintf(cmd.OutOrStdout(), "account %s already exists\n", seedEmail)
			return nil
		}
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "administrator %s ready (id %d)\n", acc.Email, acc.ID)
		return nil
	},
}

func init() {
	seedAdminCmd.Flags().StringVar(&seedEmail, "email", "", "administrator email")
	seedAdminCmd.Flags().StringVar(&seedPassword, "password", "", "administrator password")
	_ = seedAdminCmd.MarkFlagRequired("email")
	_ = seedAdminCmd.MarkFlagRequired("password")
}

package main

import (
	"fmt"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/geoip"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/mail"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/services"
	"github.com/spf13/cobra"
)

var (
	notifyTitle string
	notifyLink  string
	notifyType  string
)

func parseUserID(arg string) (uint, error) {
	n, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid user id %q", arg)
	}
	return uint(n), nil
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "migrated %d tables\n", len(database.Models()))
		return nil
	},
}

var suspendCmd = &cobra.Command{
	Use:   "suspend <user-id>",
	Short: "Suspend an account, block its devices and flag its ips",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		mailer := mail.New(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
		result, err := services.NewSuspendAccountCommand(db, mailer).Execute(cmd.Context(), userID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %d suspended: %d tokens revoked, %d devices blocked, %d ip rows flagged\n",
			result.UserID, result.TokensRevoked, result.DevicesBlocked, result.IPsFlagged)
		return nil
	},
}

func trustService() (*services.TrustService, func(), error) {
	db, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	// ip admin commands never look up locations
	svc := services.NewTrustService(db, geoip.Static{})
	return svc, func() { database.Close(db) }, nil
}

var blockIPCmd = &cobra.Command{
	Use:   "block-ip <ip>",
	Short: "Block an ip address for every user seen on it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done, err := trustService()
		if err != nil {
			return err
		}
		defer done()

		n, err := svc.BlockIP(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s blocked (%d rows)\n", args[0], n)
		return nil
	},
}

var flagIPCmd = &cobra.Command{
	Use:   "flag-ip <ip>",
	Short: "Mark an ip address as suspicious",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done, err := trustService()
		if err != nil {
			return err
		}
		defer done()

		n, err := svc.MarkIPSuspicious(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s flagged suspicious (%d rows)\n", args[0], n)
		return nil
	},
}

var notifyCmd = &cobra.Command{
	Use:   "notify <user-id> <message>",
	Short: "Send an in-app notification to a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		n, err := services.NewNotificationService(db).Notify(cmd.Context(), userID, notifyTitle, args[1], notifyLink, notifyType)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "notification %d sent to user %d\n", n.ID, userID)
		return nil
	},
}

func init() {
	notifyCmd.Flags().StringVar(&notifyTitle, "title", "Notice", "Notification title")
	notifyCmd.Flags().StringVar(&notifyLink, "link", "/", "Destination link")
	notifyCmd.Flags().StringVar(&notifyType, "type", models.NotificationInfo, "info, warning, danger or success")
}

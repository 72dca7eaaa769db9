package cmd

import (
	"context"
	"fmt"

	"library-sync/feature/library"
	"library-sync/feature/platform"

	"github.com/spf13/cobra"
)

var (
	connectUserID    string
	connectPlatform  string
	connectAccountID string
	connectUsername  string
	connectToken     string
)

// connectCmd links a platform account to a user.
var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Link a platform account to a user",
	Long: `Link a platform account to a user so its library can be synced.
Relinking an existing account reactivates it and clears the last sync error.

Examples:
  connect --user 42 --platform steam --account 76561198000000000 --username gaben`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := platform.Parse(connectPlatform)
		if err != nil {
			return err
		}
		if caps, _ := p.Capabilities(); caps.RequiresUserToken && connectToken == "" {
			return fmt.Errorf("%s requires --token", caps.Name)
		}

		svc, err := loadServices(context.Background())
		if err != nil {
			return err
		}
		defer svc.Close()

		conn, err := svc.library.Connect(cmd.Context(), library.ConnectInput{
			UserID:         connectUserID,
			Platform:       p.String(),
			PlatformUserID: connectAccountID,
			Username:       connectUsername,
			AccessToken:    connectToken,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Connected %s account %s for user %s\n", conn.Platform, conn.PlatformUserID, conn.UserID)
		return nil
	},
}

// disconnectCmd deactivates a platform connection.
var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Unlink a platform account and remove its library entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := platform.Parse(connectPlatform)
		if err != nil {
			return err
		}

		svc, err := loadServices(context.Background())
		if err != nil {
			return err
		}
		defer svc.Close()

		n, err := svc.library.Disconnect(cmd.Context(), connectUserID, p.String())
		if err != nil {
			return err
		}
		fmt.Printf("Disconnected %s for user %s, removed %d library entries\n", p, connectUserID, n)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{connectCmd, disconnectCmd} {
		c.Flags().StringVar(&connectUserID, "user", "", "User id")
		c.Flags().StringVar(&connectPlatform, "platform", "", "Platform (steam, xbox, psn, nintendo, epic)")
		_ = c.MarkFlagRequired("user")
		_ = c.MarkFlagRequired("platform")
	}
	connectCmd.Flags().StringVar(&connectAccountID, "account", "", "Platform account id")
	connectCmd.Flags().StringVar(&connectUsername, "username", "", "Platform display name")
	connectCmd.Flags().StringVar(&connectToken, "token", "", "Platform access token")
	_ = connectCmd.MarkFlagRequired("account")

	RootCmd.AddCommand(connectCmd, disconnectCmd)
}

package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var (
	mappingPlatform string
	mappingTitle    string
	mappingGameID   string
)

// mappingCmd is the parent command for title mapping maintenance.
var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Manage manual title mappings",
	Long: `Title mappings pin a raw platform title to a canonical game. They win
over every automatic matching layer on the next sync.`,
}

var mappingAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Map a platform title to a canonical game",
	Long: `Map a platform title to a canonical game.

Examples:
  mapping add --platform xbox --title "Forza Horizon 5 (Xbox Series X|S)" --game 6b1f...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadServices(context.Background())
		if err != nil {
			return err
		}
		defer svc.Close()

		m, err := svc.mappings.Create(cmd.Context(), mappingPlatform, mappingTitle, mappingGameID, "cli")
		if err != nil {
			return err
		}
		fmt.Printf("Mapped %q on %s to %s\n", m.OriginalTitle, m.Platform, m.GameID)
		return nil
	},
}

var mappingRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a title mapping",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadServices(context.Background())
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := svc.mappings.Delete(cmd.Context(), mappingPlatform, mappingTitle); err != nil {
			return err
		}
		fmt.Printf("Removed mapping for %q on %s\n", mappingTitle, mappingPlatform)
		return nil
	},
}

var mappingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List title mappings",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadServices(context.Background())
		if err != nil {
			return err
		}
		defer svc.Close()

		list, err := svc.mappings.List(cmd.Context(), mappingPlatform)
		if err != nil {
			return err
		}
		fmt.Printf("\n--- Title Mappings (%d) ---\n", len(list))
		for _, m := range list {
			fmt.Printf("%-10s %-50q -> %s\n", m.Platform, m.OriginalTitle, m.GameID)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{mappingAddCmd, mappingRemoveCmd, mappingListCmd} {
		c.Flags().StringVar(&mappingPlatform, "platform", "", "Platform of the title")
	}
	mappingAddCmd.Flags().StringVar(&mappingTitle, "title", "", "Raw platform title")
	mappingAddCmd.Flags().StringVar(&mappingGameID, "game", "", "Canonical game id")
	mappingRemoveCmd.Flags().StringVar(&mappingTitle, "title", "", "Raw platform title")
	for _, c := range []*cobra.Command{mappingAddCmd, mappingRemoveCmd} {
		_ = c.MarkFlagRequired("platform")
		_ = c.MarkFlagRequired("title")
	}
	_ = mappingAddCmd.MarkFlagRequired("game")

	mappingCmd.AddCommand(mappingAddCmd, mappingRemoveCmd, mappingListCmd)
	RootCmd.AddCommand(mappingCmd)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"library-sync/feature/platform"
	"library-sync/feature/syncer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncUserID   string
	syncPlatform string
)

// syncCmd runs one library sync from the command line.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync a user's library from one platform",
	Long: `Fetch a user's library from a connected platform, match every title
against the catalog and merge the result into the unified library.

Examples:
  # Sync one platform
  sync --user 42 --platform steam

  # Sync every connected platform
  sync all --user 42`,
	RunE: runSync,
}

// syncAllCmd syncs every active connection of a user.
var syncAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Sync every connected platform of a user",
	RunE:  runSyncAll,
}

func init() {
	syncCmd.Flags().StringVar(&syncUserID, "user", "", "User id to sync")
	syncCmd.Flags().StringVar(&syncPlatform, "platform", "", "Platform to sync (steam, xbox, psn, nintendo, epic)")
	_ = syncCmd.MarkFlagRequired("user")
	_ = syncCmd.MarkFlagRequired("platform")

	syncAllCmd.Flags().StringVar(&syncUserID, "user", "", "User id to sync")
	_ = syncAllCmd.MarkFlagRequired("user")

	syncCmd.AddCommand(syncAllCmd)
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	p, err := platform.Parse(syncPlatform)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc, err := loadServices(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.orchestrator.Sync(ctx, syncUserID, p, logProgress(svc.logger))
	if err != nil {
		return fmt.Errorf("sync %s: %w", p, err)
	}
	printResult(result)
	return nil
}

func runSyncAll(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc, err := loadServices(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	results, err := svc.orchestrator.SyncAll(ctx, syncUserID, logProgress(svc.logger))
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No active platform connections.")
		return nil
	}
	for _, r := range results {
		if r.Error != "" {
			fmt.Printf("\n%s: \033[31mFAILED\033[0m %s\n", r.Platform, r.Error)
			continue
		}
		printResult(r.Result)
	}
	return nil
}

func logProgress(l *zap.Logger) syncer.ProgressFunc {
	return func(p syncer.Progress) {
		l.Info("Sync progress",
			zap.String("state", string(p.State)),
			zap.Int("progress", p.Percent),
			zap.String("message", p.Message),
		)
	}
}

func printResult(r *syncer.Result) {
	fmt.Printf("\n--- Sync Result: %s ---\n", r.Platform)
	fmt.Printf("User:           %s\n", r.UserID)
	fmt.Printf("Total:          %d\n", r.Total)
	fmt.Printf("Added:          %d\n", r.Added)
	fmt.Printf("Updated:        %d\n", r.Updated)
	fmt.Printf("Unchanged:      %d\n", r.Unchanged)
	fmt.Printf("Failed:         %d\n", r.Failed)
	fmt.Printf("Duration:       %s\n", r.FinishedAt.Sub(r.StartedAt).Round(1e6))
	if len(r.Methods) > 0 {
		fmt.Println("Match methods:")
		for _, m := range sortedKeys(r.Methods) {
			fmt.Printf("  %-12s %d\n", m, r.Methods[m])
		}
	}
	if len(r.NotRecognized) > 0 {
		fmt.Println("\nNot recognized:")
		for _, u := range r.NotRecognized {
			fmt.Printf("- %s (%s)\n", u.RawTitle, u.NormalizedTitle)
		}
	}
	fmt.Println("-----------------------------")
}

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/capacity-tracker/internal/assignment"
	assignmentPostgres "github.com/frahmantamala/capacity-tracker/internal/assignment/postgres"
	"github.com/frahmantamala/capacity-tracker/internal/core/events"
	userPostgres "github.com/frahmantamala/capacity-tracker/internal/user/postgres"
	"github.com/frahmantamala/capacity-tracker/pkg/logger"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Replay assignment events through the in-process handlers`,
}

var replayEventCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay assignment.updated for every stored assignment",
	Long:  `Runs every stored assignment through the over-allocation watcher, logging a warning for each over-allocated engineer`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := replayAssignments(cmd.Context()); err != nil {
			fmt.Fprintf(os.Stderr, "replay failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func replayAssignments(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	lg := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	gdb, err := openGorm(db)
	if err != nil {
		return err
	}

	users := userPostgres.NewUserRepository(gdb)
	assignments := assignmentPostgres.NewAssignmentRepository(gdb)

	bus := events.NewEventBus(lg)
	capacityService := assignment.NewCapacityService(assignments, users, lg, cfg.Database.QueryTimeout)
	assignment.NewOverAllocationWatcher(capacityService, lg).Register(bus)

	rows, err := assignments.List(ctx)
	if err != nil {
		return fmt.Errorf("list assignments: %w", err)
	}

	failed := 0
	for _, a := range rows {
		event := events.NewAssignmentUpdatedEvent(a.ID, a.EngineerID, a.ProjectID)
		if err := bus.PublishSync(ctx, event); err != nil {
			failed++
		}
	}

	lg.Info("assignment replay finished", "assignments", len(rows), "failed", failed)
	return nil
}

func init() {
	eventCmd.AddCommand(replayEventCmd)

	rootCmd.AddCommand(eventCmd)
}

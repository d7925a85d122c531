package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	actionplanPostgres "github.com/inspectra/inspection-management/internal/actionplan/postgres"
	"github.com/inspectra/inspection-management/internal/core/events"
	"github.com/inspectra/inspection-management/internal/worker"
	"github.com/inspectra/inspection-management/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers like the overdue action plan scanner.`,
}

var overdueWorkerCmd = &cobra.Command{
	Use:   "overdue",
	Short: "Start the overdue action plan scanner",
	Long:  `Periodically scans for action plans past their due date and publishes overdue events`,
	Run: func(cmd *cobra.Command, args []string) {
		startOverdueWorker()
	},
}

var scanInterval time.Duration

func startOverdueWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	gdb, err := initGorm(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize orm: %v\n", err)
		os.Exit(1)
	}

	eventBus := events.NewEventBus(log)
	eventBus.SubscribeActionPlanOverdue(func(ctx context.Context, overdue *events.ActionPlanOverdueEvent) error {
		log.Warn("action plan overdue",
			"action_plan_id", overdue.ActionPlanID,
			"org_id", overdue.OrgID,
			"due_date", overdue.DueDate)
		return nil
	})

	interval := scanInterval
	if interval == 0 {
		interval = config.Worker.OverdueScanInterval
	}

	scanner := worker.NewOverdueScanner(actionplanPostgres.NewActionPlanRepository(gdb), eventBus, interval, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("Received signal, stopping worker...", "signal", sig)
		cancel()
	}()

	log.Info("overdue scanner starting", "interval", interval)
	scanner.Run(ctx)
	log.Info("overdue scanner stopped")
}

func init() {
	overdueWorkerCmd.Flags().DurationVar(&scanInterval, "interval", 0, "Override the scan interval from config")
	workerCmd.AddCommand(overdueWorkerCmd)
}

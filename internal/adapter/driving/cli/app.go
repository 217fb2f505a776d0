package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/diillson/momcarebot/internal/adapter/driving/scheduler"
	"github.com/diillson/momcarebot/internal/application/plan"
	"github.com/diillson/momcarebot/internal/application/usecase"
	"github.com/diillson/momcarebot/internal/domain/repository"
	"github.com/diillson/momcarebot/internal/shared/types"
	"github.com/diillson/momcarebot/pkg/console"
	"github.com/diillson/momcarebot/pkg/version"
)

// UseCaseFactory builds the reminder use case once configuration is known.
type UseCaseFactory func(cfg types.Config, logger *log.Logger) *usecase.ReminderUseCase

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
	logger     *log.Logger
	newUseCase UseCaseFactory
	version    string
}

// NewCLIApp creates the CLI application.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository, con types.ConsoleInterface, logger *log.Logger) *CLIApp {
	app := &CLIApp{
		configRepo: configRepo,
		console:    con,
		logger:     logger,
		version:    versionStr,
	}

	rootCmd := &cobra.Command{
		Use:           "momcarebot",
		Short:         "Monthly support plan reminders over Telegram",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runStart,
	}
	rootCmd.SetVersionTemplate(`{{printf "MomCareBot version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("plan", "p", "", "Path to the support plan spreadsheet (.xlsx)")
	rootCmd.PersistentFlags().StringP("out-dir", "d", "", "Directory for generated PDF documents")
	rootCmd.PersistentFlags().String("log-file", "", "CSV file receiving the job event log")
	rootCmd.PersistentFlags().Int("transfer-day", 0, "Day of the month for the monthly support reminder (1-31)")
	rootCmd.PersistentFlags().String("timezone", "", "IANA timezone the schedule runs in")
	rootCmd.PersistentFlags().String("log-level", "info", "Process log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "start",
			Short: "Send the startup message and run the reminder schedule",
			Args:  cobra.NoArgs,
			RunE:  app.runStart,
		},
		&cobra.Command{
			Use:   "preview",
			Short: "Print the parsed plan and the Telegram breakdown message",
			Args:  cobra.NoArgs,
			RunE:  app.runPreview,
		},
		newPDFCommand(app),
		&cobra.Command{
			Use:       "run <job>",
			Short:     "Run one reminder job immediately",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{usecase.JobMonthlySupport, usecase.JobWeeklyCall, usecase.JobEmergencySavings},
			RunE:      app.runJob,
		},
	)

	app.rootCmd = rootCmd
	return app
}

func newPDFCommand(app *CLIApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Render the plan PDF without sending it",
		Args:  cobra.NoArgs,
		RunE:  app.runPDF,
	}
	cmd.Flags().StringP("out", "o", "", "Output file (default: <out-dir>/Mom_Care_Plan_<YYYY-MM>.pdf)")
	return cmd
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetUseCaseFactory sets how the reminder use case is built for the CLI app.
func (app *CLIApp) SetUseCaseFactory(factory UseCaseFactory) {
	app.newUseCase = factory
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(cmd *cobra.Command) *types.CLIArgs {
	configFile, _ := cmd.Flags().GetString("config-file")
	planPath, _ := cmd.Flags().GetString("plan")
	outputDir, _ := cmd.Flags().GetString("out-dir")
	logPath, _ := cmd.Flags().GetString("log-file")
	transferDay, _ := cmd.Flags().GetInt("transfer-day")
	timezone, _ := cmd.Flags().GetString("timezone")
	outPath, _ := cmd.Flags().GetString("out")

	return &types.CLIArgs{
		ConfigFile:  configFile,
		PlanPath:    planPath,
		OutputDir:   outputDir,
		LogPath:     logPath,
		TransferDay: transferDay,
		Timezone:    timezone,
		OutPath:     outPath,
	}
}

// setup loads configuration, applies flag overrides and builds the use case.
func (app *CLIApp) setup(cmd *cobra.Command) (types.Config, *usecase.ReminderUseCase, error) {
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return types.Config{}, nil, err
		}
		app.logger.SetLevel(parsed)
	}

	args := app.parseArgs(cmd)
	cfg, err := app.configRepo.Load(args.ConfigFile)
	if err != nil {
		return types.Config{}, nil, err
	}
	cfg.Merge(args.Overrides())
	if err := cfg.Validate(); err != nil {
		return types.Config{}, nil, err
	}

	if app.newUseCase == nil {
		return types.Config{}, nil, fmt.Errorf("reminder use case not configured")
	}
	return *cfg, app.newUseCase(*cfg, app.logger), nil
}

// runStart announces startup and blocks running the schedule until interrupted.
func (app *CLIApp) runStart(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner()

	cfg, uc, err := app.setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go app.checkLatestVersion(ctx)

	sched := scheduler.New(cfg.Location(), app.logger)
	for name, spec := range scheduler.Specs(cfg.TransferDay) {
		job := name
		err := sched.Register(ctx, job, spec, func(ctx context.Context) {
			if _, err := uc.RunJob(ctx, job); err != nil {
				app.logger.WithError(err).WithField("job", job).Error("job run failed")
			}
		})
		if err != nil {
			return err
		}
	}

	uc.Startup(ctx)

	for _, next := range sched.Next() {
		app.console.LogInfo("Next reminder: %s", next.Format("Mon 02 Jan 2006 15:04 MST"))
	}
	app.console.LogSuccess("MomCareBot is live. Press Ctrl+C to stop.")

	sched.Run(ctx)
	return nil
}

// runPreview prints the plan as a table followed by the Telegram message.
func (app *CLIApp) runPreview(cmd *cobra.Command, _ []string) error {
	cfg, uc, err := app.setup(cmd)
	if err != nil {
		return err
	}

	status := app.console.Status(fmt.Sprintf("Reading %s...", cfg.PlanPath))
	p, err := uc.ReadPlan(cmd.Context())
	status.Stop()
	if err != nil {
		return err
	}

	table := app.console.CreateTable()
	table.AddColumn("Category")
	table.AddColumn("GBP / month")
	table.AddColumn("NGN approx")
	table.AddColumn("Notes")
	for _, item := range p.Items {
		ngn := "-"
		if item.AmountSecondary != nil {
			ngn = plan.Naira(*item.AmountSecondary)
		}
		table.AddRow(item.Category, plan.Pounds(item.AmountPrimary), ngn, item.Notes)
	}
	app.console.Println(table.Render())

	if derived := plan.SumPrimary(p.Items); len(p.Items) > 0 && derived != p.TotalSupportPrimary {
		app.console.LogWarning("Sheet total £%s differs from the sum of the items £%s", plan.Pounds(p.TotalSupportPrimary), plan.Pounds(derived))
	}

	app.console.Println(plan.FormatMessage(p))
	return nil
}

// runPDF renders the plan document to disk.
func (app *CLIApp) runPDF(cmd *cobra.Command, _ []string) error {
	_, uc, err := app.setup(cmd)
	if err != nil {
		return err
	}

	out := app.parseArgs(cmd).OutPath
	if out == "" {
		out = uc.MonthlyPDFPath()
	}

	status := app.console.Status("Reading plan...")
	defer status.Stop()

	p, err := uc.ReadPlan(cmd.Context())
	if err != nil {
		return err
	}

	status.Update("Rendering PDF...")
	written, err := uc.BuildPDF(p, out)
	if err != nil {
		return err
	}
	status.Stop()

	app.console.LogSuccess("PDF written to %s", written)
	return nil
}

// runJob runs a single job and reports every step.
func (app *CLIApp) runJob(cmd *cobra.Command, args []string) error {
	_, uc, err := app.setup(cmd)
	if err != nil {
		return err
	}

	report, err := uc.RunJob(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	for _, step := range report.Steps {
		if step.OK() {
			app.console.Printf("%s %s\n", console.BrightGreen("✔"), step.Step)
			continue
		}
		app.console.Printf("%s %s: %v\n", console.BrightRed("✘"), step.Step, step.Err)
		if step.NotifyErr != nil {
			app.console.LogWarning("failure alert not delivered: %v", step.NotifyErr)
		}
	}

	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("%s: %d of %d steps failed", report.Job, len(failed), len(report.Steps))
	}
	app.console.LogSuccess("%s completed", report.Job)
	return nil
}

func (app *CLIApp) checkLatestVersion(ctx context.Context) {
	client := &http.Client{Timeout: 3 * time.Second}
	latest, newer, err := version.LatestRelease(ctx, client, app.version)
	if err != nil || !newer {
		return
	}
	app.console.LogWarning("A new version of MomCareBot is available: %s", latest)
}

package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/diillson/momcarebot/internal/application/plan"
	"github.com/diillson/momcarebot/internal/domain/entity"
	"github.com/diillson/momcarebot/internal/domain/repository"
	"github.com/diillson/momcarebot/internal/shared/types"
	"github.com/diillson/momcarebot/pkg/clock"
)

// Job names, as they appear in the event log and in notifications.
const (
	JobMonthlySupport   = "monthly_support"
	JobWeeklyCall       = "weekly_call"
	JobEmergencySavings = "emergency_savings"
	JobSystem           = "system"
)

const (
	msgStartup          = "✅ MomCareBot started. Logging + monthly PDF are active."
	msgMonthlyHeader    = "📅 Monthly Support Reminder\nToday is your scheduled transfer date.\n\n"
	msgCallReminder     = "📞 MomCareBot: Reminder — call Mum today (weekly check-in)."
	msgGenericEmergency = "💰 MomCareBot: Reminder — put emergency savings aside this week."
)

// StepResult is the outcome of one job step. Err is the step's own result
// and is what gets logged; NotifyErr only says whether the failure alert
// reached the chat and is never propagated.
type StepResult struct {
	Step      string
	Err       error
	NotifyErr error
}

// OK reports whether the step itself succeeded.
func (r StepResult) OK() bool {
	return r.Err == nil
}

// JobReport lists the steps a job run went through, in order.
type JobReport struct {
	Job   string
	RunID string
	Steps []StepResult
}

// Failed returns the steps that did not succeed.
func (r JobReport) Failed() []StepResult {
	var failed []StepResult
	for _, s := range r.Steps {
		if !s.OK() {
			failed = append(failed, s)
		}
	}
	return failed
}

// ReminderUseCase runs the reminder jobs.
type ReminderUseCase struct {
	sheets   repository.SpreadsheetRepository
	export   repository.ExportRepository
	notifier repository.Notifier
	events   repository.EventLogRepository
	clock    clock.Clock
	cfg      types.Config
	logger   log.FieldLogger
}

// NewReminderUseCase creates a new reminder use case.
func NewReminderUseCase(
	sheets repository.SpreadsheetRepository,
	export repository.ExportRepository,
	notifier repository.Notifier,
	events repository.EventLogRepository,
	clk clock.Clock,
	cfg types.Config,
	logger log.FieldLogger,
) *ReminderUseCase {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &ReminderUseCase{
		sheets:   sheets,
		export:   export,
		notifier: notifier,
		events:   events,
		clock:    clk,
		cfg:      cfg,
		logger:   logger,
	}
}

// JobNames returns the names accepted by RunJob.
func (uc *ReminderUseCase) JobNames() []string {
	names := make([]string, 0, len(uc.jobs()))
	for name := range uc.jobs() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunJob runs the named job once.
func (uc *ReminderUseCase) RunJob(ctx context.Context, name string) (JobReport, error) {
	job, ok := uc.jobs()[name]
	if !ok {
		return JobReport{}, fmt.Errorf("%w: %s (known: %s)", types.ErrUnknownJob, name, strings.Join(uc.JobNames(), ", "))
	}
	return job(ctx), nil
}

func (uc *ReminderUseCase) jobs() map[string]func(context.Context) JobReport {
	return map[string]func(context.Context) JobReport{
		JobMonthlySupport:   uc.MonthlySupport,
		JobWeeklyCall:       uc.WeeklyCall,
		JobEmergencySavings: uc.EmergencySavings,
	}
}

// ReadPlan loads and parses the support plan sheet.
func (uc *ReminderUseCase) ReadPlan(ctx context.Context) (entity.CarePlan, error) {
	grid, err := uc.sheets.ReadSheet(ctx, uc.cfg.PlanPath, uc.cfg.SheetName)
	if err != nil {
		return entity.CarePlan{}, err
	}
	return plan.Extract(grid)
}

// BuildPDF renders the plan document to outPath and returns the path written.
func (uc *ReminderUseCase) BuildPDF(p entity.CarePlan, outPath string) (string, error) {
	doc := plan.BuildDocument(p, plan.DocumentOptions{
		PreparedFor: uc.cfg.PreparedFor,
		Date:        uc.clock.Now(),
	})
	return uc.export.RenderPlanPDF(doc, outPath)
}

// MonthlyPDFPath returns where the monthly job writes this month's document.
func (uc *ReminderUseCase) MonthlyPDFPath() string {
	stamp := uc.clock.Now().Format("2006-01")
	return filepath.Join(uc.cfg.OutputDir, fmt.Sprintf("Mom_Care_Plan_%s.pdf", stamp))
}

// Startup announces that the scheduler is running.
func (uc *ReminderUseCase) Startup(ctx context.Context) JobReport {
	run := uc.begin(JobSystem, "Scheduler started")
	run.step(ctx, "startup_message", func(ctx context.Context) error {
		return uc.notifier.SendText(ctx, msgStartup)
	})
	return run.report
}

// MonthlySupport sends this month's plan as a PDF and as a text breakdown.
func (uc *ReminderUseCase) MonthlySupport(ctx context.Context) JobReport {
	run := uc.begin(JobMonthlySupport, "Monthly job triggered")

	var p entity.CarePlan
	if !run.step(ctx, "read_excel_plan", func(ctx context.Context) (err error) {
		p, err = uc.ReadPlan(ctx)
		return err
	}).OK() {
		return run.report
	}

	stamp := uc.clock.Now().Format("2006-01")
	var built string
	if run.step(ctx, "build_pdf", func(ctx context.Context) (err error) {
		built, err = uc.BuildPDF(p, uc.MonthlyPDFPath())
		return err
	}).OK() {
		run.step(ctx, "send_pdf_to_telegram", func(ctx context.Context) error {
			return uc.notifier.SendDocument(ctx, built, fmt.Sprintf("📄 Mom Care Plan (%s)", stamp))
		})
	}

	run.step(ctx, "send_text_breakdown", func(ctx context.Context) error {
		return uc.notifier.SendText(ctx, msgMonthlyHeader+plan.FormatMessage(p))
	})

	run.done("Monthly job completed")
	return run.report
}

// WeeklyCall reminds to call.
func (uc *ReminderUseCase) WeeklyCall(ctx context.Context) JobReport {
	run := uc.begin(JobWeeklyCall, "Weekly call job triggered")
	run.step(ctx, "send_call_reminder", func(ctx context.Context) error {
		return uc.notifier.SendText(ctx, msgCallReminder)
	})
	run.done("Weekly call job completed")
	return run.report
}

// EmergencySavings reminds to put the planned emergency amount aside, or
// sends a generic reminder when the plan cannot be read or has no
// emergency line.
func (uc *ReminderUseCase) EmergencySavings(ctx context.Context) JobReport {
	run := uc.begin(JobEmergencySavings, "Emergency savings job triggered")

	var p entity.CarePlan
	readOK := run.step(ctx, "read_excel_plan", func(ctx context.Context) (err error) {
		p, err = uc.ReadPlan(ctx)
		return err
	}).OK()

	item, found := p.FindItem(func(i entity.BudgetItem) bool {
		return strings.Contains(strings.ToLower(i.Category), "emergency")
	})
	if readOK && found {
		run.step(ctx, "send_emergency_amount_reminder", func(ctx context.Context) error {
			return uc.notifier.SendText(ctx, plan.FormatEmergencyReminder(item))
		})
	} else {
		run.step(ctx, "send_generic_emergency_reminder", func(ctx context.Context) error {
			return uc.notifier.SendText(ctx, msgGenericEmergency)
		})
	}

	run.done("Emergency savings job completed")
	return run.report
}

// jobRun carries the state of a single job invocation.
type jobRun struct {
	uc     *ReminderUseCase
	logger log.FieldLogger
	report JobReport
}

func (uc *ReminderUseCase) begin(job, message string) *jobRun {
	runID := uuid.NewString()
	run := &jobRun{
		uc:     uc,
		logger: uc.logger.WithFields(log.Fields{"job": job, "run_id": runID}),
		report: JobReport{Job: job, RunID: runID},
	}
	run.logger.Info(message)
	uc.record(job, entity.StatusStarted, message, "")
	return run
}

func (r *jobRun) done(message string) {
	r.logger.Info(message)
	r.uc.record(r.report.Job, entity.StatusDone, message, "")
}

// step runs fn, logs its outcome and on failure makes one attempt to alert
// the chat. Failures, panics included, stop at this boundary.
func (r *jobRun) step(ctx context.Context, name string, fn func(context.Context) error) StepResult {
	res := StepResult{Step: name, Err: safeCall(ctx, fn)}
	logger := r.logger.WithField("step", name)

	if res.Err == nil {
		logger.Info("step succeeded")
		r.uc.record(r.report.Job, entity.StatusSent, name, "")
		r.report.Steps = append(r.report.Steps, res)
		return res
	}

	logger.WithError(res.Err).Error("step failed")
	r.uc.record(r.report.Job, entity.StatusError, name, res.Err.Error())

	alert := fmt.Sprintf("⚠️ MomCareBot %s error at '%s': %v", r.report.Job, name, res.Err)
	res.NotifyErr = safeCall(ctx, func(ctx context.Context) error {
		return r.uc.notifier.SendText(ctx, alert)
	})
	if res.NotifyErr != nil {
		logger.WithError(res.NotifyErr).Warn("could not send failure alert")
	}

	r.report.Steps = append(r.report.Steps, res)
	return res
}

func safeCall(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn(ctx)
}

// record appends to the event log. A broken log must not stop a job.
func (uc *ReminderUseCase) record(job string, status entity.EventStatus, message, extra string) {
	err := uc.events.Append(entity.Event{
		Timestamp: uc.clock.Now(),
		Job:       job,
		Status:    status,
		Message:   message,
		Extra:     extra,
	})
	if err != nil {
		uc.logger.WithError(err).WithField("job", job).Warn("could not write event log")
	}
}

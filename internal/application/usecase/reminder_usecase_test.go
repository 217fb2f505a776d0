package usecase

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/momcarebot/internal/domain/entity"
	"github.com/diillson/momcarebot/internal/shared/types"
	"github.com/diillson/momcarebot/pkg/clock"
)

var ctx = context.Background()

var now = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func planGrid() entity.Grid {
	return entity.Grid{
		{"Weekly Income", 100.0},
		{"Monthly Income", 433.0},
		{"MONTHLY SUPPORT BREAKDOWN"},
		{"Food", "£60", "₦24,000", "market"},
		{"Emergency fund", "£40", "₦16,000"},
		{"TOTAL MONTHLY SUPPORT", "£100", "₦40,000"},
	}
}

type fixture struct {
	sheets   *stubSheets
	export   *stubExport
	notifier *stubNotifier
	events   *stubEvents
	uc       *ReminderUseCase
}

func setup(t *testing.T) *fixture {
	t.Helper()
	logger := log.New()
	logger.SetOutput(io.Discard)

	f := &fixture{
		sheets:   &stubSheets{grid: planGrid()},
		export:   &stubExport{},
		notifier: &stubNotifier{},
		events:   &stubEvents{},
	}
	cfg := types.DefaultConfig()
	cfg.PreparedFor = "Ada"
	f.uc = NewReminderUseCase(f.sheets, f.export, f.notifier, f.events, &clock.MockClock{FixedNow: now}, cfg, logger)
	return f
}

func TestReminderUseCase_MonthlySupport(t *testing.T) {
	t.Run("should send the pdf and the breakdown", func(t *testing.T) {
		// given
		f := setup(t)

		// when
		report := f.uc.MonthlySupport(ctx)

		// then
		assert.Empty(t, report.Failed())
		assert.NotEmpty(t, report.RunID)
		require.Len(t, f.export.paths, 1)
		assert.Equal(t, filepath.Join("out", "Mom_Care_Plan_2026-03.pdf"), f.export.paths[0])
		assert.Equal(t, "Mom Care Plan 2026 | Prepared by Ada", f.export.docs[0].FooterLabel)

		require.Len(t, f.notifier.documents, 1)
		assert.Equal(t, "📄 Mom Care Plan (2026-03)", f.notifier.documents[0].caption)

		require.Len(t, f.notifier.texts, 1)
		assert.True(t, strings.HasPrefix(f.notifier.texts[0], "📅 Monthly Support Reminder\nToday is your scheduled transfer date.\n\n🧾 MomCareBot"))
		assert.Contains(t, f.notifier.texts[0], "Planned support: £100 (≈ ₦40,000)")

		assert.Equal(t, []string{
			"STARTED Monthly job triggered",
			"SENT read_excel_plan",
			"SENT build_pdf",
			"SENT send_pdf_to_telegram",
			"SENT send_text_breakdown",
			"DONE Monthly job completed",
		}, f.events.statuses())
		for _, e := range f.events.events {
			assert.Equal(t, JobMonthlySupport, e.Job)
			assert.Equal(t, now, e.Timestamp)
		}
	})

	t.Run("should stop and alert when the plan cannot be read", func(t *testing.T) {
		// given
		f := setup(t)
		f.sheets.err = types.ErrSourceNotFound

		// when
		report := f.uc.MonthlySupport(ctx)

		// then
		require.Len(t, report.Steps, 1)
		assert.ErrorIs(t, report.Steps[0].Err, types.ErrSourceNotFound)
		assert.NoError(t, report.Steps[0].NotifyErr)
		assert.Empty(t, f.export.paths)
		require.Len(t, f.notifier.texts, 1)
		assert.True(t, strings.HasPrefix(f.notifier.texts[0], "⚠️ MomCareBot monthly_support error at 'read_excel_plan': "))

		assert.Equal(t, []string{"STARTED Monthly job triggered", "ERROR read_excel_plan"}, f.events.statuses())
		assert.Contains(t, f.events.events[1].Extra, "not found")
	})

	t.Run("should still send the text when the pdf fails", func(t *testing.T) {
		f := setup(t)
		f.export.err = errors.New("disk full")

		report := f.uc.MonthlySupport(ctx)

		require.Len(t, report.Failed(), 1)
		assert.Equal(t, "build_pdf", report.Failed()[0].Step)
		assert.Empty(t, f.notifier.documents)
		assert.Equal(t, []string{
			"STARTED Monthly job triggered",
			"SENT read_excel_plan",
			"ERROR build_pdf",
			"SENT send_text_breakdown",
			"DONE Monthly job completed",
		}, f.events.statuses())
	})

	t.Run("should log a missing anchor row as the step error", func(t *testing.T) {
		f := setup(t)
		f.sheets.grid = planGrid()[1:]

		report := f.uc.MonthlySupport(ctx)

		require.Len(t, report.Steps, 1)
		assert.ErrorIs(t, report.Steps[0].Err, types.ErrMissingAnchorRow)
	})

	t.Run("should keep going when every notification fails", func(t *testing.T) {
		// given
		f := setup(t)
		f.notifier.failAll = true

		// when
		report := f.uc.MonthlySupport(ctx)

		// then
		failed := report.Failed()
		require.Len(t, failed, 2)
		assert.Equal(t, "send_pdf_to_telegram", failed[0].Step)
		assert.Equal(t, "send_text_breakdown", failed[1].Step)
		for _, s := range failed {
			assert.ErrorIs(t, s.Err, errSendFailed)
			assert.ErrorIs(t, s.NotifyErr, errSendFailed)
		}
		assert.Equal(t, "DONE Monthly job completed", f.events.statuses()[len(f.events.events)-1])
		assert.Equal(t, "send failed", f.events.events[3].Extra)
	})
}

func TestReminderUseCase_WeeklyCall(t *testing.T) {
	f := setup(t)

	report := f.uc.WeeklyCall(ctx)

	assert.Empty(t, report.Failed())
	assert.Equal(t, []string{"📞 MomCareBot: Reminder — call Mum today (weekly check-in)."}, f.notifier.texts)
	assert.Equal(t, []string{
		"STARTED Weekly call job triggered",
		"SENT send_call_reminder",
		"DONE Weekly call job completed",
	}, f.events.statuses())
	assert.Equal(t, 0, f.sheets.calls)
}

func TestReminderUseCase_EmergencySavings(t *testing.T) {
	t.Run("should send the planned emergency amount", func(t *testing.T) {
		f := setup(t)

		f.uc.EmergencySavings(ctx)

		assert.Equal(t, []string{"💰 MomCareBot: Emergency savings reminder — £40 (≈ ₦16,000)"}, f.notifier.texts)
		assert.Contains(t, f.events.statuses(), "SENT send_emergency_amount_reminder")
	})

	t.Run("should fall back to a generic reminder without an emergency line", func(t *testing.T) {
		f := setup(t)
		f.sheets.grid = planGrid()[:4]

		f.uc.EmergencySavings(ctx)

		assert.Equal(t, []string{msgGenericEmergency}, f.notifier.texts)
	})

	t.Run("should fall back to a generic reminder when the plan cannot be read", func(t *testing.T) {
		f := setup(t)
		f.sheets.err = types.ErrSheetNotFound

		report := f.uc.EmergencySavings(ctx)

		require.Len(t, report.Failed(), 1)
		require.Len(t, f.notifier.texts, 2)
		assert.Contains(t, f.notifier.texts[0], "error at 'read_excel_plan'")
		assert.Equal(t, msgGenericEmergency, f.notifier.texts[1])
		assert.Equal(t, []string{
			"STARTED Emergency savings job triggered",
			"ERROR read_excel_plan",
			"SENT send_generic_emergency_reminder",
			"DONE Emergency savings job completed",
		}, f.events.statuses())
	})
}

func TestReminderUseCase_Startup(t *testing.T) {
	f := setup(t)

	report := f.uc.Startup(ctx)

	assert.Equal(t, JobSystem, report.Job)
	assert.Equal(t, []string{msgStartup}, f.notifier.texts)
	assert.Equal(t, []string{"STARTED Scheduler started", "SENT startup_message"}, f.events.statuses())
}

func TestReminderUseCase_RunJob(t *testing.T) {
	t.Run("should run a job by name", func(t *testing.T) {
		f := setup(t)

		report, err := f.uc.RunJob(ctx, JobWeeklyCall)

		require.NoError(t, err)
		assert.Equal(t, JobWeeklyCall, report.Job)
	})

	t.Run("should reject unknown jobs", func(t *testing.T) {
		f := setup(t)

		_, err := f.uc.RunJob(ctx, "daily")

		assert.ErrorIs(t, err, types.ErrUnknownJob)
		assert.Contains(t, err.Error(), "emergency_savings, monthly_support, weekly_call")
	})
}

func TestReminderUseCase_step(t *testing.T) {
	t.Run("should turn a panic into a step error", func(t *testing.T) {
		f := setup(t)
		run := f.uc.begin("test", "triggered")

		res := run.step(ctx, "explode", func(context.Context) error {
			panic("boom")
		})

		assert.EqualError(t, res.Err, "panic: boom")
		assert.NoError(t, res.NotifyErr)
	})

	t.Run("should not fail the step when the event log is broken", func(t *testing.T) {
		f := setup(t)
		f.events.err = errors.New("read-only file system")

		report := f.uc.WeeklyCall(ctx)

		assert.Empty(t, report.Failed())
		assert.Len(t, f.notifier.texts, 1)
	})
}

package equipment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/infra/repository"
	"github.com/BruksfildServices01/equipment-lending/internal/timezone"
)

func TestFollowUpHorizon(t *testing.T) {
	e := newEnv(t, morning)
	ctx := context.Background()

	soon := e.registerTripod(t)
	later := e.registerTripod(t)

	tomorrow := timezone.AddDays(timezone.StartOfDay(morning), 1)
	inFiveDays := timezone.AddDays(timezone.StartOfDay(morning), 5)
	e.borrow(t, soon.ID, domain.LoanLong, &tomorrow)
	e.borrow(t, later.ID, domain.LoanLong, &inFiveDays)

	report, err := e.followUp.ExecuteAt(ctx, morning)
	require.NoError(t, err)
	assert.Equal(t, FollowUpReport{Checked: 2, Escalated: 1}, report)

	got, err := e.queries.Get(ctx, soon.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusFollowUp), got.Status)

	got, err = e.queries.Get(ctx, later.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusBorrowed), got.Status)
	assert.False(t, *got.ReminderSent)
}

func TestFollowUpIsIdempotent(t *testing.T) {
	e := newEnv(t, morning)
	ctx := context.Background()
	eq := e.registerTripod(t)
	e.borrow(t, eq.ID, domain.LoanShort, nil)

	first, err := e.followUp.ExecuteAt(ctx, morning)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Escalated)

	snapshot, err := e.queries.Get(ctx, eq.ID)
	require.NoError(t, err)

	second, err := e.followUp.ExecuteAt(ctx, morning)
	require.NoError(t, err)
	assert.Equal(t, FollowUpReport{}, second)

	again, err := e.queries.Get(ctx, eq.ID)
	require.NoError(t, err)
	assert.Equal(t, snapshot, again)
}

func TestFollowUpWritesNoLog(t *testing.T) {
	e := newEnv(t, morning)
	eq := e.registerTripod(t)
	e.borrow(t, eq.ID, domain.LoanShort, nil)

	_, err := e.followUp.ExecuteAt(context.Background(), morning)
	require.NoError(t, err)

	assert.Len(t, e.logs(t, eq.ID), 2)
}

func TestFollowUpResetByCheckin(t *testing.T) {
	e := newEnv(t, morning)
	ctx := context.Background()
	eq := e.registerTripod(t)

	e.borrow(t, eq.ID, domain.LoanShort, nil)
	_, err := e.followUp.ExecuteAt(ctx, morning)
	require.NoError(t, err)
	_, err = e.checkin.Execute(ctx, eq.ID)
	require.NoError(t, err)

	e.borrow(t, eq.ID, domain.LoanShort, nil)
	report, err := e.followUp.ExecuteAt(ctx, morning)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Escalated)
}

func TestFollowUpIgnoresOtherStatuses(t *testing.T) {
	e := newEnv(t, morning)
	ctx := context.Background()

	e.registerTripod(t)
	broken := e.registerTripod(t)
	_, err := e.reportRepair.Execute(ctx, ReportRepairInput{EquipmentID: broken.ID, ReporterName: "Bob", Problem: "Cracked"})
	require.NoError(t, err)

	report, err := e.followUp.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, FollowUpReport{}, report)
}

func TestFollowUpIsolatesItemFailures(t *testing.T) {
	repo := &failingRepo{Repository: repository.NewEquipmentMemoryRepository()}
	e := newEnvWithRepo(t, morning, repo)
	ctx := context.Background()

	bad := e.registerTripod(t)
	good := e.registerTripod(t)
	e.borrow(t, bad.ID, domain.LoanShort, nil)
	e.borrow(t, good.ID, domain.LoanShort, nil)
	repo.failUpdateFor = bad.ID

	report, err := e.followUp.ExecuteAt(ctx, morning)
	require.NoError(t, err)
	assert.Equal(t, FollowUpReport{Checked: 2, Escalated: 1, Failed: 1}, report)

	got, err := e.queries.Get(ctx, good.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusFollowUp), got.Status)
}

func TestFollowUpListFailure(t *testing.T) {
	repo := &failingRepo{Repository: repository.NewEquipmentMemoryRepository(), failList: true}
	e := newEnvWithRepo(t, morning, repo)

	_, err := e.followUp.ExecuteAt(context.Background(), morning)

	var se *domain.StorageError
	assert.ErrorAs(t, err, &se)
}

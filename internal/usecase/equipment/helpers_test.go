package equipment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/equipment-lending/internal/audit"
	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/infra/lock"
	"github.com/BruksfildServices01/equipment-lending/internal/infra/repository"
	"github.com/BruksfildServices01/equipment-lending/internal/logger"
	"github.com/BruksfildServices01/equipment-lending/internal/models"
	"github.com/BruksfildServices01/equipment-lending/internal/timezone"
)

var wib = time.FixedZone("WIB", 7*60*60)

// stepClock advances by one second on every read so log order is visible
// in timestamps.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type env struct {
	repo  domain.Repository
	clock *stepClock

	register     *Register
	bulk         *BulkRegister
	checkout     *Checkout
	checkin      *Checkin
	reportRepair *ReportRepair
	markRepaired *MarkRepaired
	update       *UpdateDetails
	delete       *Delete
	followUp     *FollowUpCheck
	queries      *Queries
}

func newEnv(t *testing.T, start time.Time) *env {
	t.Helper()
	return newEnvWithRepo(t, start, repository.NewEquipmentMemoryRepository())
}

func newEnvWithRepo(t *testing.T, start time.Time, repo domain.Repository) *env {
	t.Helper()

	clk := &stepClock{now: start}
	clock := timezone.Clock(clk.Now)
	locker := lock.NewLocal(time.Second)
	log := logger.Discard()
	a := audit.New(clock, nil, log)

	return &env{
		repo:         repo,
		clock:        clk,
		register:     NewRegister(repo, a, clock),
		bulk:         NewBulkRegister(repo, a, clock),
		checkout:     NewCheckout(repo, locker, a, clock, domain.LoanPolicy{StudioPlace: "Studio"}),
		checkin:      NewCheckin(repo, locker, a),
		reportRepair: NewReportRepair(repo, locker, a),
		markRepaired: NewMarkRepaired(repo, locker, a),
		update:       NewUpdateDetails(repo, locker, a),
		delete:       NewDelete(repo, locker, log),
		followUp:     NewFollowUpCheck(repo, locker, clock, domain.DefaultFollowUpDays, nil, log),
		queries:      NewQueries(repo),
	}
}

func tripod() domain.DetailsInput {
	return domain.DetailsInput{Name: "Tripod", Brand: "Manfrotto", Model: "MT190", Category: "Photography"}
}

func (e *env) registerTripod(t *testing.T) *models.Equipment {
	t.Helper()
	eq, err := e.register.Execute(context.Background(), tripod())
	require.NoError(t, err)
	return eq
}

func (e *env) borrow(t *testing.T, id string, loanType domain.LoanType, until *time.Time) *models.Equipment {
	t.Helper()
	eq, err := e.checkout.Execute(context.Background(), CheckoutInput{
		EquipmentID:  id,
		BorrowerName: "Alice",
		Place:        "Hall B",
		Purpose:      "Wedding shoot",
		LoanType:     loanType,
		Until:        until,
	})
	require.NoError(t, err)
	return eq
}

func (e *env) logs(t *testing.T, id string) []models.EquipmentLog {
	t.Helper()
	logs, err := e.repo.ListLogs(context.Background(), id)
	require.NoError(t, err)
	return logs
}

// failingRepo makes selected operations fail.
type failingRepo struct {
	domain.Repository
	failUpdateFor string
	failList      bool
}

func (r *failingRepo) UpdateIfStatus(ctx context.Context, eq *models.Equipment, expected domain.Status, entry *models.EquipmentLog) error {
	if eq.ID == r.failUpdateFor {
		return errDisk
	}
	return r.Repository.UpdateIfStatus(ctx, eq, expected, entry)
}

func (r *failingRepo) List(ctx context.Context) ([]models.Equipment, error) {
	if r.failList {
		return nil, errDisk
	}
	return r.Repository.List(ctx)
}

var errDisk = diskError("disk full")

type diskError string

func (e diskError) Error() string { return string(e) }

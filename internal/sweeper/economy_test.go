package sweeper_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/logger"
	"github.com/greenhollow/gh-game-core/internal/mocks"
	"github.com/greenhollow/gh-game-core/internal/store"
	"github.com/greenhollow/gh-game-core/internal/store/schema"
	"github.com/greenhollow/gh-game-core/internal/sweeper"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// sweeperFixture wires an economy sweeper against an in-memory database,
// a mocked game service and a mocked clock whose After channel never fires,
// so each test observes exactly one sweep cycle.
type sweeperFixture struct {
	ctrl    *gomock.Controller
	store   store.Store
	svc     *mocks.MockGameService
	clock   *mocks.MockClock
	sweeper sweeper.Sweeper
}

func newSweeperFixture(t *testing.T) *sweeperFixture {
	ctrl := gomock.NewController(t)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate(db))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	f := &sweeperFixture{
		ctrl:  ctrl,
		store: store.NewPGStore(db),
		svc:   mocks.NewMockGameService(ctrl),
		clock: mocks.NewMockClock(ctrl),
	}

	f.clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	f.clock.EXPECT().Since(gomock.Any()).Return(time.Second).AnyTimes()
	f.clock.EXPECT().After(gomock.Any()).DoAndReturn(func(time.Duration) <-chan time.Time {
		return make(chan time.Time)
	}).AnyTimes()

	f.sweeper = sweeper.NewEconomySweeper(
		&sweeper.EconomySweeperConfig{
			BatchSize:      2,
			WorkerPoolSize: 2,
		},
		f.store,
		f.svc,
		f.clock,
	)

	return f
}

// stake persists an assembly row for the owner
func (f *sweeperFixture) stake(t *testing.T, owner string, farmingItemID uint64) {
	err := f.store.CreateAssembly(context.Background(), &schema.StakedAssembly{
		Owner:         owner,
		FarmingItemID: farmingItemID,
		LastClaim:     time.Now(),
	})
	require.NoError(t, err)
}

// runOneCycle starts the sweeper, waits for the signal, and stops it
func (f *sweeperFixture) runOneCycle(t *testing.T, cycleDone chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startErr := make(chan error, 1)
	go func() {
		startErr <- f.sweeper.Start(ctx)
	}()

	select {
	case <-cycleDone:
	case <-time.After(10 * time.Second):
		t.Fatal("sweep cycle did not complete")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	require.NoError(t, f.sweeper.Stop(stopCtx))

	select {
	case err := <-startErr:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not shut down")
	}
}

func TestEconomySweeper_Name(t *testing.T) {
	f := newSweeperFixture(t)
	assert.Equal(t, "economy-sweeper", f.sweeper.Name())
}

func TestEconomySweeper_RefreshesDistinctOwners(t *testing.T) {
	f := newSweeperFixture(t)

	// Three assemblies across two owners; the batch size of 2 forces paging.
	f.stake(t, "alice", 1)
	f.stake(t, "alice", 2)
	f.stake(t, "bob", 3)

	f.svc.EXPECT().
		RefreshMiningPower(gomock.Any(), domain.OwnerName("alice")).
		Return(nil)
	f.svc.EXPECT().
		RefreshMiningPower(gomock.Any(), domain.OwnerName("bob")).
		Return(nil)

	cycleDone := make(chan struct{})
	f.svc.EXPECT().
		ExpireProposals(gomock.Any()).
		DoAndReturn(func(context.Context) (int, error) {
			close(cycleDone)
			return 0, nil
		})

	f.runOneCycle(t, cycleDone)
}

func TestEconomySweeper_ToleratesRefreshFailure(t *testing.T) {
	f := newSweeperFixture(t)

	f.stake(t, "alice", 1)
	f.stake(t, "bob", 2)

	// One owner failing must not prevent the rest of the cycle.
	f.svc.EXPECT().
		RefreshMiningPower(gomock.Any(), domain.OwnerName("alice")).
		Return(assert.AnError)
	f.svc.EXPECT().
		RefreshMiningPower(gomock.Any(), domain.OwnerName("bob")).
		Return(nil)

	cycleDone := make(chan struct{})
	f.svc.EXPECT().
		ExpireProposals(gomock.Any()).
		DoAndReturn(func(context.Context) (int, error) {
			close(cycleDone)
			return 1, nil
		})

	f.runOneCycle(t, cycleDone)
}

func TestEconomySweeper_EmptyStateStillExpiresProposals(t *testing.T) {
	f := newSweeperFixture(t)

	cycleDone := make(chan struct{})
	f.svc.EXPECT().
		ExpireProposals(gomock.Any()).
		DoAndReturn(func(context.Context) (int, error) {
			close(cycleDone)
			return 0, nil
		})

	f.runOneCycle(t, cycleDone)
}

func TestEconomySweeper_RejectsDoubleStart(t *testing.T) {
	f := newSweeperFixture(t)

	cycleDone := make(chan struct{})
	f.svc.EXPECT().
		ExpireProposals(gomock.Any()).
		DoAndReturn(func(context.Context) (int, error) {
			close(cycleDone)
			return 0, nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startErr := make(chan error, 1)
	go func() {
		startErr <- f.sweeper.Start(ctx)
	}()

	select {
	case <-cycleDone:
	case <-time.After(10 * time.Second):
		t.Fatal("sweep cycle did not complete")
	}

	// A second Start while running is refused.
	err := f.sweeper.Start(ctx)
	assert.Error(t, err)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	require.NoError(t, f.sweeper.Stop(stopCtx))
	<-startErr
}

func TestEconomySweeper_StopWhenNotRunning(t *testing.T) {
	f := newSweeperFixture(t)
	assert.NoError(t, f.sweeper.Stop(context.Background()))
}

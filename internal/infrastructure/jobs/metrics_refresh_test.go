package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"kudichain.backend/internal/domain/entities"
	"kudichain.backend/internal/usecases"
)

type statsSourceStub struct {
	stats *usecases.PlatformStats
	err   error
	calls int
}

func (s *statsSourceStub) GetStats(context.Context) (*usecases.PlatformStats, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

func TestMetricsRefreshJob_RefreshSetsGauges(t *testing.T) {
	stub := &statsSourceStub{stats: &usecases.PlatformStats{
		UsersByRole:   map[entities.UserRole]int64{entities.UserRoleCollector: 12},
		DropsByStatus: map[entities.DropStatus]int64{entities.DropStatusPayoutReleased: 9},
		WeightByTypeGrams: map[entities.TrashType]int64{
			entities.TrashTypePlastic: 850_000,
		},
		TotalsByEntryKobo: map[entities.TransactionType]int64{
			entities.TransactionTypeEarn: 4_250_000,
		},
		OpenSupportTickets: 3,
	}}
	reg := prometheus.NewRegistry()
	job := NewMetricsRefreshJob(stub, time.Minute, reg)

	job.refresh(context.Background())

	require.Equal(t, 12.0, testutil.ToFloat64(job.usersByRole.WithLabelValues("collector")))
	require.Equal(t, 9.0, testutil.ToFloat64(job.dropsByStatus.WithLabelValues("payout_released")))
	require.Equal(t, 850_000.0, testutil.ToFloat64(job.weightByType.WithLabelValues("plastic")))
	require.Equal(t, 4_250_000.0, testutil.ToFloat64(job.ledgerTotals.WithLabelValues("earn")))
	require.Equal(t, 3.0, testutil.ToFloat64(job.openTickets))
}

func TestMetricsRefreshJob_RefreshErrorLeavesGauges(t *testing.T) {
	stub := &statsSourceStub{err: errors.New("db down")}
	reg := prometheus.NewRegistry()
	job := NewMetricsRefreshJob(stub, time.Minute, reg)

	job.refresh(context.Background())
	require.Equal(t, 0.0, testutil.ToFloat64(job.openTickets))
}

func TestMetricsRefreshJob_StopsByContext(t *testing.T) {
	stub := &statsSourceStub{stats: &usecases.PlatformStats{}}
	job := NewMetricsRefreshJob(stub, time.Millisecond, prometheus.NewRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on context cancel")
	}
	require.GreaterOrEqual(t, stub.calls, 1, "Start primes the gauges once")
}

func TestMetricsRefreshJob_StopsByStop(t *testing.T) {
	stub := &statsSourceStub{stats: &usecases.PlatformStats{}}
	job := NewMetricsRefreshJob(stub, time.Millisecond, prometheus.NewRegistry())

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()
	job.Stop()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on Stop")
	}
}

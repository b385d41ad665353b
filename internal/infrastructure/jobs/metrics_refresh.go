package jobs

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"kudichain.backend/internal/usecases"
)

// StatsSource provides the platform aggregates the job exports.
type StatsSource interface {
	GetStats(ctx context.Context) (*usecases.PlatformStats, error)
}

// MetricsRefreshJob periodically recomputes platform-wide aggregates
// from the database and exposes them as Prometheus gauges.
type MetricsRefreshJob struct {
	admin    StatsSource
	interval time.Duration
	stop     chan struct{}

	usersByRole   *prometheus.GaugeVec
	dropsByStatus *prometheus.GaugeVec
	weightByType  *prometheus.GaugeVec
	ledgerTotals  *prometheus.GaugeVec
	openTickets   prometheus.Gauge
}

// NewMetricsRefreshJob creates the job and registers its gauges.
func NewMetricsRefreshJob(admin StatsSource, interval time.Duration, reg prometheus.Registerer) *MetricsRefreshJob {
	j := &MetricsRefreshJob{
		admin:    admin,
		interval: interval,
		stop:     make(chan struct{}),
		usersByRole: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kudichain_users_total",
			Help: "Registered users by role.",
		}, []string{"role"}),
		dropsByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kudichain_drops_total",
			Help: "Trash drops by lifecycle status.",
		}, []string{"status"}),
		weightByType: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kudichain_received_weight_grams",
			Help: "Total received waste weight by trash type.",
		}, []string{"trash_type"}),
		ledgerTotals: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kudichain_ledger_total_kobo",
			Help: "Platform-wide ledger totals by entry type.",
		}, []string{"type"}),
		openTickets: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kudichain_support_tickets_open",
			Help: "Currently open support tickets.",
		}),
	}
	reg.MustRegister(j.usersByRole, j.dropsByStatus, j.weightByType, j.ledgerTotals, j.openTickets)
	return j
}

// Start runs the refresh loop until the context is cancelled or Stop
// is called.
func (j *MetricsRefreshJob) Start(ctx context.Context) {
	log.Println("Starting platform metrics refresh job...")

	// Prime the gauges once so /metrics is populated right away.
	j.refresh(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Metrics refresh job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("Metrics refresh job stopped")
			return
		case <-ticker.C:
			j.refresh(ctx)
		}
	}
}

func (j *MetricsRefreshJob) Stop() {
	close(j.stop)
}

func (j *MetricsRefreshJob) refresh(ctx context.Context) {
	stats, err := j.admin.GetStats(ctx)
	if err != nil {
		log.Printf("Error refreshing platform metrics: %v", err)
		return
	}

	for role, count := range stats.UsersByRole {
		j.usersByRole.WithLabelValues(string(role)).Set(float64(count))
	}
	for status, count := range stats.DropsByStatus {
		j.dropsByStatus.WithLabelValues(string(status)).Set(float64(count))
	}
	for trashType, grams := range stats.WeightByTypeGrams {
		j.weightByType.WithLabelValues(string(trashType)).Set(float64(grams))
	}
	for txType, kobo := range stats.TotalsByEntryKobo {
		j.ledgerTotals.WithLabelValues(string(txType)).Set(float64(kobo))
	}
	j.openTickets.Set(float64(stats.OpenSupportTickets))
}

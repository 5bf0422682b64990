package metrics

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/metric"
)

const (
	SUBMISSION_TTL = time.Minute * 30
)

type EngineMetrics struct {
	startTimeGauge metric.Int64ObservableGauge

	submissionsCounter metric.Int64Counter
	failuresCounter    metric.Int64Counter

	settlementTimeHistogram  metric.Float64Histogram
	submissionStartTimeCache *ttlcache.Cache[string, time.Time]
}

// NewEngineMetrics initializes metrics related to quoting and batch execution
func NewEngineMetrics(ctx context.Context, meter metric.Meter, opts metric.MeasurementOption) (*EngineMetrics, error) {
	startTime := time.Now().Unix()
	startTimeGauge, err := meter.Int64ObservableGauge(
		"engine.StartTimeSeconds",
		metric.WithDescription("Start time of the engine"),
		metric.WithInt64Callback(func(ctx context.Context, result metric.Int64Observer) error {
			result.Observe(startTime, opts)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	submissionsCounter, err := meter.Int64Counter(
		"engine.Submissions",
		metric.WithDescription("Total number of batches submitted on-chain"),
	)
	if err != nil {
		return nil, err
	}
	failuresCounter, err := meter.Int64Counter(
		"engine.Failures",
		metric.WithDescription("Total number of batches that ended in a failure state"),
	)
	if err != nil {
		return nil, err
	}

	settlementTimeHistogram, err := meter.Float64Histogram("engine.SettlementTime")
	if err != nil {
		return nil, err
	}

	return &EngineMetrics{
		startTimeGauge: startTimeGauge,

		submissionsCounter: submissionsCounter,
		failuresCounter:    failuresCounter,

		settlementTimeHistogram: settlementTimeHistogram,
		submissionStartTimeCache: ttlcache.New(
			ttlcache.WithTTL[string, time.Time](SUBMISSION_TTL),
		),
	}, nil
}

func (m *EngineMetrics) TrackFailure() {
	m.failuresCounter.Add(context.Background(), 1)
}

func (m *EngineMetrics) StartSubmission(identity common.Hash) {
	m.submissionsCounter.Add(context.Background(), 1)
	m.submissionStartTimeCache.Set(identity.Hex(), time.Now(), ttlcache.DefaultTTL)
}

func (m *EngineMetrics) EndSubmission(identity common.Hash) {
	startTime := m.submissionStartTimeCache.Get(identity.Hex())
	if startTime == nil {
		log.Warn().Msgf("Submission start time for %s not found", identity.Hex())
		return
	}

	m.settlementTimeHistogram.Record(context.Background(), time.Since(startTime.Value()).Seconds())
}

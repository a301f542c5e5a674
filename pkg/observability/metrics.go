package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics buffers custom metrics and ships them to CloudWatch.
// Datums are flushed in batches so a chatty endpoint doesn't turn into
// one PutMetricData call per request.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client

	mu     sync.Mutex
	buffer []types.MetricDatum
}

// CloudWatch limits PutMetricData to 1000 datums per call; flushing
// well before that keeps individual calls small.
const flushThreshold = 20

// NewMetrics creates a metrics instance publishing under the given namespace
func NewMetrics(namespace string, client *cloudwatch.Client) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
	}
}

// IncrementCounter records a count metric
func (m *Metrics) IncrementCounter(ctx context.Context, name string, dimensions map[string]string) {
	m.record(ctx, types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(1),
		Unit:       types.StandardUnitCount,
		Timestamp:  aws.Time(time.Now()),
		Dimensions: toDimensions(dimensions),
	})
}

// RecordDuration records a latency metric in milliseconds
func (m *Metrics) RecordDuration(ctx context.Context, name string, d time.Duration, dimensions map[string]string) {
	m.record(ctx, types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(float64(d.Milliseconds())),
		Unit:       types.StandardUnitMilliseconds,
		Timestamp:  aws.Time(time.Now()),
		Dimensions: toDimensions(dimensions),
	})
}

// record buffers a datum and flushes when the buffer is full
func (m *Metrics) record(ctx context.Context, datum types.MetricDatum) {
	m.mu.Lock()
	m.buffer = append(m.buffer, datum)
	shouldFlush := len(m.buffer) >= flushThreshold
	m.mu.Unlock()

	if shouldFlush {
		// Metric loss on flush failure is acceptable; requests must not
		// block on CloudWatch.
		_ = m.Flush(ctx)
	}
}

// Flush ships all buffered datums to CloudWatch
func (m *Metrics) Flush(ctx context.Context) error {
	m.mu.Lock()
	if len(m.buffer) == 0 {
		m.mu.Unlock()
		return nil
	}
	datums := m.buffer
	m.buffer = nil
	m.mu.Unlock()

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: datums,
	})
	return err
}

func toDimensions(dimensions map[string]string) []types.Dimension {
	if len(dimensions) == 0 {
		return nil
	}
	out := make([]types.Dimension, 0, len(dimensions))
	for name, value := range dimensions {
		out = append(out, types.Dimension{
			Name:  aws.String(name),
			Value: aws.String(value),
		})
	}
	return out
}

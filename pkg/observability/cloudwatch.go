package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// CloudWatchClient is the subset of the CloudWatch API used for metrics
type CloudWatchClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics sends operation metrics to CloudWatch. It is meant for Lambda
// deployments where there is no scrape endpoint.
type Metrics struct {
	namespace string
	client    CloudWatchClient
	logger    *zap.Logger
	timeout   time.Duration
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client CloudWatchClient, logger *zap.Logger) *Metrics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
		timeout:   2 * time.Second,
	}
}

// ObserveOperation implements ports.MetricsRecorder. Failures to send are
// logged and never affect the operation.
func (m *Metrics) ObserveOperation(operation string, duration time.Duration, bytes int, err error) {
	if m.client == nil {
		return
	}

	status, code := outcome(err)
	now := time.Now()
	dimensions := []types.Dimension{
		{Name: aws.String("Operation"), Value: aws.String(operation)},
		{Name: aws.String("Status"), Value: aws.String(status)},
	}

	metricData := []types.MetricDatum{
		{
			MetricName: aws.String("OperationLatency"),
			Dimensions: dimensions,
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  aws.Time(now),
		},
		{
			MetricName: aws.String("OperationCount"),
			Dimensions: dimensions,
			Value:      aws.Float64(1),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(now),
		},
	}
	if bytes > 0 {
		metricData = append(metricData, types.MetricDatum{
			MetricName: aws.String("DocumentBytes"),
			Dimensions: dimensions[:1],
			Value:      aws.Float64(float64(bytes)),
			Unit:       types.StandardUnitBytes,
			Timestamp:  aws.Time(now),
		})
	}
	if err != nil {
		metricData = append(metricData, types.MetricDatum{
			MetricName: aws.String("OperationErrors"),
			Dimensions: []types.Dimension{
				{Name: aws.String("Operation"), Value: aws.String(operation)},
				{Name: aws.String("ErrorCode"), Value: aws.String(code)},
			},
			Value:     aws.Float64(1),
			Unit:      types.StandardUnitCount,
			Timestamp: aws.Time(now),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	if _, sendErr := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: metricData,
	}); sendErr != nil {
		m.logger.Warn("Failed to send metrics", zap.String("operation", operation), zap.Error(sendErr))
	}
}

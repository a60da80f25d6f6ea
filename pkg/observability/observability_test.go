package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgerrors "cathedral-bridge/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestCollector_ObserveOperation(t *testing.T) {
	c := NewCollector("bridge")

	c.ObserveOperation("export", 10*time.Millisecond, 512, nil)
	c.ObserveOperation("export", 5*time.Millisecond, 0, pkgerrors.NewSinkError("out.json", errors.New("disk full")))
	c.ObserveOperation("import", time.Millisecond, 64, nil)

	assert.Equal(t, 1.0, counterValue(t, c, "bridge_operations_total", "export", "success", "OK"))
	assert.Equal(t, 1.0, counterValue(t, c, "bridge_operations_total", "export", "failure", pkgerrors.CodeSink))
	assert.Equal(t, 1.0, counterValue(t, c, "bridge_operations_total", "import", "success", "OK"))
	assert.Equal(t, 2, seriesCount(t, c, "bridge_operation_duration_seconds"))
}

func counterValue(t *testing.T, c *Collector, name string, labels ...string) float64 {
	t.Helper()
	families, err := c.GetRegistry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			var values []string
			for _, lp := range m.GetLabel() {
				values = append(values, lp.GetValue())
			}
			if sameSet(values, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func seriesCount(t *testing.T, c *Collector, name string) int {
	t.Helper()
	families, err := c.GetRegistry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return len(mf.GetMetric())
		}
	}
	return 0
}

// labels come back sorted by name, so compare as sets
func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, v := range a {
		seen[v]++
	}
	for _, v := range b {
		seen[v]--
		if seen[v] < 0 {
			return false
		}
	}
	return true
}

func TestCollector_SeparateRegistries(t *testing.T) {
	// Two collectors must not collide on registration
	a := NewCollector("bridge")
	b := NewCollector("bridge")
	a.ObserveHTTP(http.MethodGet, "/health", http.StatusOK, time.Millisecond)

	assert.Equal(t, 1.0, counterValue(t, a, "bridge_http_requests_total", http.MethodGet, "/health", "OK"))
	assert.Equal(t, 0, seriesCount(t, b, "bridge_http_requests_total"))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("bridge")
	c.ObserveOperation("validate", time.Millisecond, 10, nil)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bridge_operations_total")
}

type mockCloudWatch struct {
	mock.Mock
}

func (m *mockCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	args := m.Called(ctx, params)
	return &cloudwatch.PutMetricDataOutput{}, args.Error(0)
}

func TestMetrics_ObserveOperation(t *testing.T) {
	tests := []struct {
		name      string
		bytes     int
		err       error
		wantNames []string
	}{
		{
			name:      "success with bytes",
			bytes:     128,
			wantNames: []string{"OperationLatency", "OperationCount", "DocumentBytes"},
		},
		{
			name:      "failure without bytes",
			err:       pkgerrors.NewShapeError("document", "bad"),
			wantNames: []string{"OperationLatency", "OperationCount", "OperationErrors"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockCloudWatch)
			var captured *cloudwatch.PutMetricDataInput
			client.On("PutMetricData", mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) { captured = args.Get(1).(*cloudwatch.PutMetricDataInput) }).
				Return(nil)

			NewMetrics("CathedralBridge", client, zap.NewNop()).
				ObserveOperation("export", 3*time.Millisecond, tt.bytes, tt.err)

			require.NotNil(t, captured)
			assert.Equal(t, "CathedralBridge", aws.ToString(captured.Namespace))
			var names []string
			for _, d := range captured.MetricData {
				names = append(names, aws.ToString(d.MetricName))
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestMetrics_SendFailureIsSwallowed(t *testing.T) {
	client := new(mockCloudWatch)
	client.On("PutMetricData", mock.Anything, mock.Anything).Return(errors.New("throttled"))

	assert.NotPanics(t, func() {
		NewMetrics("CathedralBridge", client, nil).ObserveOperation("import", time.Millisecond, 0, nil)
	})
	client.AssertExpectations(t)
}

func TestTracer_TracePassesThroughResult(t *testing.T) {
	tracer := NewTracer("cathedral-bridge")
	boom := errors.New("boom")

	called := false
	err := tracer.Trace(context.Background(), "export", func(ctx context.Context) error {
		called = true
		assert.NotNil(t, ctx)
		return boom
	})

	assert.True(t, called)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, tracer.Trace(context.Background(), "validate", func(context.Context) error { return nil }))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("loud"))

	logger, err := NewLogger("production", "warn")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

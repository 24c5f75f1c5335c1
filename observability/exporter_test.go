package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/benz9527/xtree/lib/tree"
)

func insertSome(t *testing.T, name string) {
	avl := tree.NewAVLTree[int, string](tree.WithTreeStats[int, string](name))
	for i := 0; i < 16; i++ {
		require.NoError(t, avl.Insert(i, "v"))
	}
	require.NoError(t, avl.Remove(7))
}

func TestNewConsoleMetricsExporter(t *testing.T) {
	buf := &bytes.Buffer{}
	shutdown, err := NewConsoleMetricsExporter(time.Hour, time.Second, stdoutmetric.WithWriter(buf))
	require.NoError(t, err)

	insertSome(t, "console")
	// Shutdown flushes the pending metrics.
	require.NoError(t, shutdown(context.Background()))
	out := buf.String()
	require.Contains(t, out, tree.TreeStatsName+"/console")
	require.Contains(t, out, "xtree.insert.count")
	require.Contains(t, out, "xtree.rotation.count")
}

func TestNewPrometheusMetricsExporter(t *testing.T) {
	shutdown, err := NewPrometheusMetricsExporter()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, shutdown(context.Background()))
	}()

	insertSome(t, "prometheus")
	families, err := promclient.DefaultGatherer.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}
	found := false
	for _, name := range names {
		if strings.HasPrefix(name, "xtree_insert_count") {
			found = true
			break
		}
	}
	require.True(t, found, "families: %v", names)
}

func TestInitRuntimeStats(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(mp)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, InitRuntimeStats(ctx, "test", mp.Shutdown))
	// Only the first call takes effect.
	require.NoError(t, InitRuntimeStats(ctx, "again", nil))

	rm := metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var goroutines int64
	scopes := make([]string, 0, len(rm.ScopeMetrics))
	for _, sm := range rm.ScopeMetrics {
		scopes = append(scopes, sm.Scope.Name)
		for _, m := range sm.Metrics {
			if m.Name != "xtree.runtime.goroutines" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			require.Len(t, sum.DataPoints, 1)
			goroutines = sum.DataPoints[0].Value
		}
	}
	require.Contains(t, scopes, RuntimeStatsName+"/test")
	require.NotContains(t, scopes, RuntimeStatsName+"/again")
	require.Greater(t, goroutines, int64(0))

	cancel()
	require.Eventually(t, func() bool {
		return reader.Collect(context.Background(), &metricdata.ResourceMetrics{}) != nil
	}, time.Second, 10*time.Millisecond)
}

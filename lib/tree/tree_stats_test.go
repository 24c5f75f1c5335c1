package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectSums(t *testing.T, reader sdkmetric.Reader, scope string) map[string][]metricdata.DataPoint[int64] {
	rm := metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(context.Background(), &rm))
	res := make(map[string][]metricdata.DataPoint[int64])
	for _, sm := range rm.ScopeMetrics {
		if sm.Scope.Name != scope {
			continue
		}
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, m.Name)
			res[m.Name] = sum.DataPoints
		}
	}
	return res
}

func sumOf(points []metricdata.DataPoint[int64], kv ...attribute.KeyValue) int64 {
	total := int64(0)
	for _, p := range points {
		matched := true
		for _, attr := range kv {
			if v, ok := p.Attributes.Value(attr.Key); !ok || v != attr.Value {
				matched = false
				break
			}
		}
		if matched {
			total += p.Value
		}
	}
	return total
}

func TestTreeStats(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(mp)
	defer func() {
		require.NoError(t, mp.Shutdown(context.Background()))
	}()

	tree := NewRBTree[int, int](WithTreeStats[int, int]("stats-test"))
	for i := 0; i < 10; i++ {
		require.NoError(t, tree.Insert(i, i))
	}
	require.NoError(t, tree.Remove(3))
	require.ErrorIs(t, tree.Remove(3), ErrKeyNotFound)
	require.ErrorIs(t, tree.Insert(4, 4), ErrDuplicateEntry)

	sums := collectSums(t, reader, TreeStatsName+"/stats-test")
	rbKind := attribute.String("xtree.kind", "rbtree")
	require.Equal(t, int64(10), sumOf(sums["xtree.insert.count"], rbKind))
	require.Equal(t, int64(1), sumOf(sums["xtree.remove.count"], rbKind))
	require.Equal(t, int64(9), sumOf(sums["xtree.node.count"], rbKind))
	require.Greater(t, sumOf(sums["xtree.rotation.count"], rbKind), int64(0))
	require.Equal(t, int64(1), sumOf(sums["xtree.error.count"], rbKind,
		attribute.String("xtree.error", string(ErrKeyNotFound))))
	require.Equal(t, int64(1), sumOf(sums["xtree.error.count"], rbKind,
		attribute.String("xtree.error", string(ErrDuplicateEntry))))

	// The unbalanced tree never rotates.
	bst := NewBST[int, int](WithTreeStats[int, int]("stats-test"))
	for i := 0; i < 10; i++ {
		require.NoError(t, bst.Insert(i, i))
	}
	bst.Clean()
	sums = collectSums(t, reader, TreeStatsName+"/stats-test")
	bstKind := attribute.String("xtree.kind", "bst")
	require.Equal(t, int64(10), sumOf(sums["xtree.insert.count"], bstKind))
	require.Equal(t, int64(10), sumOf(sums["xtree.remove.count"], bstKind))
	require.Equal(t, int64(0), sumOf(sums["xtree.node.count"], bstKind))
	require.Equal(t, int64(0), sumOf(sums["xtree.rotation.count"], bstKind))
}

func TestTreeStats_Disabled(t *testing.T) {
	var stats *treeStats
	stats.recordInsert(KindAVL)
	stats.recordRemove(KindAVL)
	stats.recordRotation(KindAVL)
	stats.recordNodeCount(KindAVL, 1)
	stats.recordError(KindAVL, ErrKeyNotFound)
}

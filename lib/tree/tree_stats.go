package tree

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	TreeStatsName = "xboot/xtree"
)

type treeStats struct {
	nodeCount     metric.Int64UpDownCounter
	insertCount   metric.Int64Counter
	removeCount   metric.Int64Counter
	rotationCount metric.Int64Counter
	errorCount    metric.Int64Counter
}

func kindAttr(kind Kind) metric.MeasurementOption {
	return metric.WithAttributeSet(attribute.NewSet(
		attribute.String("xtree.kind", kind.String()),
	))
}

func (stats *treeStats) recordNodeCount(kind Kind, delta int64) {
	if stats == nil || delta == 0 {
		return
	}
	stats.nodeCount.Add(context.Background(), delta, kindAttr(kind))
}

func (stats *treeStats) recordInsert(kind Kind) {
	if stats == nil {
		return
	}
	stats.insertCount.Add(context.Background(), 1, kindAttr(kind))
	stats.recordNodeCount(kind, 1)
}

func (stats *treeStats) recordRemove(kind Kind) {
	if stats == nil {
		return
	}
	stats.removeCount.Add(context.Background(), 1, kindAttr(kind))
	stats.recordNodeCount(kind, -1)
}

func (stats *treeStats) recordRotation(kind Kind) {
	if stats == nil {
		return
	}
	stats.rotationCount.Add(context.Background(), 1, kindAttr(kind))
}

func (stats *treeStats) recordError(kind Kind, err error) {
	if stats == nil || err == nil {
		return
	}
	reason := "unknown"
	var treeErr TreeErr
	if errors.As(err, &treeErr) {
		reason = string(treeErr)
	}
	as := attribute.NewSet(
		attribute.String("xtree.kind", kind.String()),
		attribute.String("xtree.error", reason),
	)
	stats.errorCount.Add(context.Background(), 1, metric.WithAttributeSet(as))
}

func newTreeStats(name string) *treeStats {
	meterName := TreeStatsName
	if len(name) > 0 {
		meterName = fmt.Sprintf("%s/%s", TreeStatsName, name)
	}
	meter := otel.Meter(meterName)
	return &treeStats{
		nodeCount: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"xtree.node.count",
			metric.WithDescription("The number of nodes in the tree."),
		)),
		insertCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.insert.count",
			metric.WithDescription("The number of successful insertions."),
		)),
		removeCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.remove.count",
			metric.WithDescription("The number of successful removals."),
		)),
		rotationCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.rotation.count",
			metric.WithDescription("The number of single rotations done by the balancers."),
		)),
		errorCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.error.count",
			metric.WithDescription("The number of failed operations by error."),
		)),
	}
}

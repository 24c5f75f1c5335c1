package observability

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	RuntimeStatsName = "xboot/xtree/runtime"
)

var (
	runtimeStatsOnce sync.Once
)

type runtimeStats struct {
	ctx              context.Context
	shutdownCallback func(ctx context.Context) error
	goroutines       metric.Int64ObservableUpDownCounter
	heapObjects      metric.Int64ObservableUpDownCounter
}

func (stats *runtimeStats) waitForShutdown() {
	if stats == nil || stats.shutdownCallback == nil {
		return
	}
	go func() {
		<-stats.ctx.Done()
		_ = stats.shutdownCallback(context.Background())
	}()
}

// InitRuntimeStats observes the Go runtime by the global meter provider,
// next to the tree stats. The heap objects grow with the tree nodes.
// Only the first call takes effect. The exporter is shut down by the
// shutdown callback once ctx is done, nil means nothing to shut down.
func InitRuntimeStats(ctx context.Context, name string, shutdownCallback func(ctx context.Context) error) error {
	var err error
	runtimeStatsOnce.Do(func() {
		builder := &strings.Builder{}
		builder.WriteString(RuntimeStatsName)
		builder.WriteString("/")
		if len(strings.TrimSpace(name)) > 0 {
			builder.WriteString(name)
		} else {
			builder.WriteString("default")
		}
		meter := otel.Meter(
			builder.String(),
			metric.WithInstrumentationVersion(otelruntime.Version()),
		)
		stats := &runtimeStats{
			ctx:              ctx,
			shutdownCallback: shutdownCallback,
			goroutines: lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
				"xtree.runtime.goroutines",
				metric.WithDescription(`The application goroutines' info.`),
				metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
					ob.Observe(int64(runtime.NumGoroutine()))
					return nil
				}),
			)),
			heapObjects: lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
				"xtree.runtime.heap.objects",
				metric.WithDescription(`The number of allocated heap objects.`),
				metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
					ms := &runtime.MemStats{}
					runtime.ReadMemStats(ms)
					ob.Observe(int64(ms.HeapObjects))
					return nil
				}),
			)),
		}
		if err = otelruntime.Start(
			otelruntime.WithMinimumReadMemStatsInterval(time.Second),
		); err != nil {
			return
		}
		stats.waitForShutdown()
	})
	return err
}

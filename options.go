package fastlist

import "github.com/hupe1980/fastlist/internal/arena"

type options struct {
	capacity         int
	backend          Backend
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures List construction.
type Option func(*options)

// WithCapacity pre-reserves storage for n items.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithBackend selects the storage strategy of the list's arena.
//
// The backend never changes the list's contract; it only trades locality
// against pointer stability:
//   - BackendSlice (default): one contiguous slice, best locality
//   - BackendSegmented: fixed-size segments, *Item pointers survive growth
//   - BackendHash: hash map keyed by slot position
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithMetricsCollector configures a metrics collector for list mutations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &fastlist.BasicMetricsCollector{}
//	l := fastlist.New[int](fastlist.WithMetricsCollector(metrics))
//	// ... use l ...
//	stats := metrics.GetStats()
//	fmt.Printf("Removes: %d, stale: %d\n", stats.RemoveCount, stats.RemoveMisses)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging. Stale-handle rejections are
// logged at debug level. Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := fastlist.NewJSONLogger(slog.LevelDebug)
//	l := fastlist.New[string](fastlist.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func (o *options) arenaOptions() []arena.Option {
	return []arena.Option{
		arena.WithBackend(o.backend),
		arena.WithCapacity(o.capacity),
	}
}

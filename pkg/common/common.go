package common

// Chart kinds accepted by the render pipeline. The kind decides both the
// parser applied to the uploaded source and the artifact format produced:
// topology renders an HTML page, timeseries renders a PNG.
const (
	KindTopology   = "topology"
	KindTimeseries = "timeseries"
)

// Render job lifecycle states. Jobs start pending, move to running when a
// worker picks them up, and end in done or failed.
const (
	StatusPending = "pending"
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// Queue names shared by the API server and the render worker. Each base
// queue gets a matching _retry and _dlq queue declared alongside it.
const (
	QueueRender       = "render"
	QueueRenderStatus = "render_status"
)

// DefaultTsColumn names the timestamp column assumed when a timeseries
// request does not pick one.
const DefaultTsColumn = "timestamp"

// Sampling parameter defaults and bounds exposed by the inference endpoints.
const (
	DefaultTemperature  = 0.7
	DefaultTopP         = 0.9
	DefaultMaxNewTokens = 128
	DefaultSeed         = -1

	MinTemperature = 0.01
	MaxTemperature = 1.5
	MinTopP        = 0.01
	MaxTopP        = 1.0
	MinNewTokens   = 4
	MaxNewTokens   = 4096
)

// ValidKind reports whether kind names a renderable chart kind.
func ValidKind(kind string) bool {
	return kind == KindTopology || kind == KindTimeseries
}

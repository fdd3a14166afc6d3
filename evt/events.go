package evt

import (
	"github.com/asaskevich/EventBus"
)

const (
	// QueryResolved fires once per decoded query, after the resolver chain produced a
	// response. Parameters: *model.Request, *model.Response, time.Duration.
	QueryResolved = "query:resolved"

	// UpstreamFallback fires when a network's upstream delegate returned an error
	// (timeout, exchange failure, NXDOMAIN/empty or no PTR answer) and the pipeline
	// fell through to local synthesis.
	// Parameters: *model.Request, *registry.Network, error.
	UpstreamFallback = "upstream:fallback"

	// ApplicationStarted fires once the UDP server is listening. Parameters: version, buildTime.
	ApplicationStarted = "application:started"
)

//nolint:gochecknoglobals
var evtBus = EventBus.New()

// Bus returns the global event bus instance.
func Bus() EventBus.Bus {
	return evtBus
}

package config

import (
	"time"

	"github.com/hako/durafmt"
)

// Duration wraps time.Duration for human-readable logging via durafmt.
type Duration time.Duration

func (d Duration) String() string {
	return durafmt.Parse(time.Duration(d)).String()
}

// ToDuration returns the underlying time.Duration.
func (d Duration) ToDuration() time.Duration {
	return time.Duration(d)
}

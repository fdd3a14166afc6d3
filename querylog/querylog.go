// Package querylog implements query logging (spec component C8): one line per
// resolved query, written through the shared logger rather than to a file or
// database. The shared logger writes to stderr; query lines are not written
// to stdout.
package querylog

import (
	"fmt"
	"time"

	"github.com/slaacns/slaacns/evt"
	"github.com/slaacns/slaacns/log"
	"github.com/slaacns/slaacns/model"
)

const loggerPrefix = "query_log"

// Start subscribes a console query logger to evt.Bus(). Call once, only when
// the --querylog flag is set.
func Start() {
	logger := log.PrefixedLog(loggerPrefix)

	log.FatalOnError("can't subscribe to query log events",
		evt.Bus().Subscribe(evt.QueryResolved, func(req *model.Request, resp *model.Response, duration time.Duration) {
			logger.Info(formatLine(req, resp, duration))
		}),
	)
}

func formatLine(req *model.Request, resp *model.Response, duration time.Duration) string {
	q := req.Req.Question[0]

	return fmt.Sprintf("%s %s -> rcode=%s type=%s reason=%q duration=%s",
		q.Name, dnsTypeName(q.Qtype), rcodeName(resp.Res.Rcode), resp.RType, resp.Reason, duration)
}

// Package resolver implements the query pipeline (spec component C5): a
// chain-of-responsibility of Resolver implementations terminating in the
// QueryResolver that classifies a question, optionally delegates PTR lookups
// upstream, and otherwise synthesizes answers from C1/C2/C3.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/slaacns/slaacns/model"
)

// Resolver resolves one decoded DNS request into a response.
type Resolver interface {
	Resolve(ctx context.Context, req *model.Request) (*model.Response, error)
}

// ChainedResolver is a Resolver that can delegate to a following resolver.
type ChainedResolver interface {
	Resolver

	Next(n Resolver)
	GetNext() Resolver
}

// NextResolver is the embeddable base implementation of ChainedResolver.
type NextResolver struct {
	next Resolver
}

func (r *NextResolver) Next(n Resolver) {
	r.next = n
}

func (r *NextResolver) GetNext() Resolver {
	return r.next
}

// Chain links resolvers in order, wiring each ChainedResolver to the one
// after it, and returns the first resolver.
func Chain(resolvers ...Resolver) Resolver {
	for i, res := range resolvers {
		if i+1 < len(resolvers) {
			if cr, ok := res.(ChainedResolver); ok {
				cr.Next(resolvers[i+1])
			}
		}
	}

	return resolvers[0]
}

// Name returns a short, user-friendly name for a resolver, used in logging.
func Name(r Resolver) string {
	return strings.Split(fmt.Sprintf("%T", r), ".")[1]
}

// Package context clones a request context for work that must outlive the
// request, like the post-removal shift batch delete and the save report
// email. The clone keeps the parent's values but never cancels.
package context

import (
	"context"
	"time"
)

type DetachedContext struct {
	parent context.Context
}

// Detach returns a context that carries ctx's values but ignores its
// cancellation and deadline.
func Detach(ctx context.Context) context.Context {
	return DetachedContext{ctx}
}

func (d DetachedContext) Deadline() (deadline time.Time, ok bool) {
	return time.Time{}, false
}

func (d DetachedContext) Done() <-chan struct{} {
	return nil
}

func (d DetachedContext) Err() error {
	return nil
}

func (d DetachedContext) Value(key any) any {
	return d.parent.Value(key)
}

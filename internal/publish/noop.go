package publish

import "context"

// Noop discards every execution. It is the default publisher when no
// downstream cache or broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Execution) error { return nil }

func (Noop) Close() error { return nil }

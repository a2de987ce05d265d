// Package trigger turns external events into show triggers.
package trigger

import "context"

// Source calls fire once for every trigger event until ctx is done or the source runs out.
type Source interface {
	Listen(ctx context.Context, fire func()) error
}

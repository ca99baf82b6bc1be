// errors_helper.go error handling helpers for remote service calls.
package remote

import (
	"github.com/sitewarden/sitewarden/internal/errors"
)

// dbError creates a properly categorized remote query error with context.
// The cause is preserved so callers can still match it with errors.Is/As.
func dbError(err error, operation string, context ...interface{}) error {
	builder := errors.New(err).
		Component("remote").
		Category(errors.CategoryDatabase).
		Context("operation", operation)

	// Add context pairs
	for i := 0; i < len(context)-1; i += 2 {
		if key, ok := context[i].(string); ok {
			builder = builder.Context(key, context[i+1])
		}
	}

	return builder.Build()
}

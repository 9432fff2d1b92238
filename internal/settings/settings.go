// Package settings persists the user's free-text family/preference context.
// The value has no schema beyond "string"; it is owned by the user and only
// ever changed by explicit edits.
package settings

import "context"

// familyKey is the well-known key the context is stored under.
const familyKey = "family_info"

// Store is the injected persistence dependency, fakeable in tests.
type Store interface {
	Family(ctx context.Context) (string, error)
	SetFamily(ctx context.Context, value string) error
}

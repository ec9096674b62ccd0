package format

import "fmt"

// Defensive caps enforced while parsing metadata (spec §4.3), surfaced as
// ErrInvalidMetadata with a descriptive context.
const (
	MaxSchemaElements     = 10000
	MaxRowGroups          = 100000
	MaxColumnsPerRowGroup = 10000
	MaxKeyValuePairs      = 10000
	MaxEncodingsPerColumn = 100
	MaxPathElements       = 100
	MaxEncodingStats      = 100

	// MaxByteArrayLength caps a single PLAIN-encoded byte array value's
	// declared length, rejecting corrupt or adversarial length prefixes
	// long before an allocation is attempted.
	MaxByteArrayLength = 1 << 30
)

func checkCap(n, limit int, what string) error {
	if n > limit {
		return fmt.Errorf("%w: %s count %d exceeds limit %d", ErrInvalidMetadata, what, n, limit)
	}
	return nil
}

package format

import (
	"errors"

	"github.com/arrowlake/parquet/internal/thriftcompact"
)

// ErrInvalidMetadata is returned when parsed metadata violates one of the
// bounds of spec §4.3/§4.4 (oversized containers, too many schema
// elements/row groups/columns, excess nesting, etc).
var ErrInvalidMetadata = thriftcompact.ErrInvalidMetadata

// ErrInvalidSchema is returned when the schema tree itself is malformed
// (e.g. a root that is a leaf, a non-root element without a repetition, or
// a truncated element list).
var ErrInvalidSchema = errors.New("format: invalid schema")

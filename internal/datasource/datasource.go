package datasource

import (
	"context"
	"io"
)

// Source opens the raw input stream for the extract stage.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Fingerprinter is implemented by streams that can report a content hash and
// the number of raw bytes consumed once fully read.
type Fingerprinter interface {
	Fingerprint() uint64
	BytesRead() int64
}

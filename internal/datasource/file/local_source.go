// Package file implements a local filesystem-backed data source.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zeebo/xxh3"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Local is a filesystem data source that opens files from the local disk and
// decodes them to UTF-8.
type Local struct {
	path     string
	encoding string
}

// NewLocal returns a Local source for path. encoding names the input charset
// ("utf-8", "utf-16", "latin1", "windows-1252", ...); empty means UTF-8. A
// leading byte order mark is honored and stripped in every case.
func NewLocal(path, encoding string) *Local {
	return &Local{path: path, encoding: encoding}
}

// Open opens the configured path for reading.
//
// Behavior:
//   - If the context is already canceled, Open returns the context error
//     without touching the filesystem.
//   - Filesystem errors are wrapped with the path while still permitting
//     errors.Is checks (e.g. os.ErrNotExist).
//   - The returned stream also implements datasource.Fingerprinter over the
//     raw (undecoded) bytes.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	dec, err := decoderFor(l.encoding)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}

	rs := &Stream{f: f, h: xxh3.New()}
	rs.r = transform.NewReader(io.TeeReader(f, rs.counter()), dec)
	return rs, nil
}

// Stream is the decoded reader returned by Local.Open.
type Stream struct {
	f *os.File
	r io.Reader
	h *xxh3.Hasher
	n int64
}

// Read implements io.Reader over the decoded UTF-8 content.
func (s *Stream) Read(p []byte) (int, error) { return s.r.Read(p) }

// Close closes the underlying file.
func (s *Stream) Close() error { return s.f.Close() }

// Fingerprint returns the xxh3 hash of the raw bytes read so far.
func (s *Stream) Fingerprint() uint64 { return s.h.Sum64() }

// BytesRead returns the number of raw bytes read so far.
func (s *Stream) BytesRead() int64 { return s.n }

func (s *Stream) counter() io.Writer {
	return writerFunc(func(p []byte) (int, error) {
		s.n += int64(len(p))
		return s.h.Write(p)
	})
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

// decoderFor resolves an encoding label to a decoding transformer. UTF-8 and
// UTF-16 labels go through BOMOverride so a BOM in the file wins; other
// labels are resolved through the WHATWG index (latin1 → windows-1252).
func decoderFor(name string) (transform.Transformer, error) {
	label := strings.ToLower(strings.TrimSpace(name))
	switch label {
	case "", "utf-8", "utf8":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	case "utf-16", "utf16", "utf-16le":
		return unicode.BOMOverride(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()), nil
	case "utf-16be":
		return unicode.BOMOverride(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()), nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	return enc.NewDecoder(), nil
}

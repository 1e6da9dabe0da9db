// SPDX-License-Identifier: MIT

package tilemap

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Format names a container's wire encoding (spec §4.6).
type Format int

const (
	// FormatRoaring is the default: a serialized RoaringBitmap.
	FormatRoaring Format = iota
	// FormatBitset is the compact sparse-bitset tree encoding.
	FormatBitset
	// FormatWordset is the sparse word-array tree encoding.
	FormatWordset
)

func (f Format) String() string {
	switch f {
	case FormatRoaring:
		return "roaring"
	case FormatBitset:
		return "sparse"
	case FormatWordset:
		return "wordset"
	default:
		return "unknown"
	}
}

// DetectFormat infers a container's wire format from substrings in path,
// defaulting to FormatRoaring when none match (spec §4.6).
func DetectFormat(path string) Format {
	switch {
	case strings.Contains(path, "wordset"):
		return FormatWordset
	case strings.Contains(path, "sparse"):
		return FormatBitset
	default:
		return FormatRoaring
	}
}

// DetectGzip reports whether path names a gzip-wrapped file.
func DetectGzip(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

// Save writes container to path, applying Freeze first and wrapping the
// stream in gzip if DetectGzip(path) is true. The container's concrete type
// must match DetectFormat(path): a RoaringContainer for FormatRoaring, a
// *SparseBitset for FormatBitset, a *SparseWordArray for FormatWordset.
func Save(path string, container FreezeSaver) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	container.Freeze()

	var w io.Writer = f
	var gz *gzip.Writer
	if DetectGzip(path) {
		gz = gzip.NewWriter(f)
		w = gz
	}

	if _, err := container.WriteTo(w); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("closing gzip stream for %s: %w", path, err)
		}
	}
	return f.Sync()
}

// Load reads a container back from path, auto-detecting format from the
// filename and transparently un-gzipping when DetectGzip(path) is true. For
// FormatWordset, wantBitsPerValue constrains the expected value width; pass
// 0 to accept whatever width is recorded on disk. The return value's
// concrete type matches the detected format: *RoaringContainer, *SparseBitset,
// or *SparseWordArray.
func Load(path string, wantBitsPerValue uint8) (FreezeSaver, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if DetectGzip(path) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream for %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	switch DetectFormat(path) {
	case FormatWordset:
		return ReadSparseWordArray(r, wantBitsPerValue)
	case FormatBitset:
		return ReadSparseBitset(r)
	default:
		return ReadRoaringContainer(r)
	}
}

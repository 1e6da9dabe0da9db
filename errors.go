// SPDX-License-Identifier: MIT

package tilemap

import "errors"

// Sentinel errors for the core tile-store engine. Wrap with fmt.Errorf("...: %w", err)
// at call sites that need extra context; callers compare with errors.Is.
var (
	// ErrInvalidConfiguration is returned when a CoordIndexer is constructed with
	// bit widths or address counts that do not fit the requested capacity.
	ErrInvalidConfiguration = errors.New("tilemap: invalid indexer configuration")

	// ErrInvalidCoordinate is returned by Pack when validation is enabled and the
	// input coordinate or address lies outside the indexer's configured range.
	ErrInvalidCoordinate = errors.New("tilemap: coordinate out of range")

	// ErrInvalidValue is returned when bits_per_value does not divide 64 evenly
	// or does not lie in {1,2,4,8,16,32,64}.
	ErrInvalidValue = errors.New("tilemap: invalid bits-per-value")

	// ErrFormatMismatch is returned when an on-disk wordset's bits_per_value
	// differs from the value the reader was constructed with.
	ErrFormatMismatch = errors.New("tilemap: bits-per-value mismatch with on-disk format")

	// ErrCorruptData is returned by a deserializer that cannot parse its input:
	// truncated stream, bad length prefix, or an out-of-range bits_per_value.
	ErrCorruptData = errors.New("tilemap: corrupt persisted data")

	// ErrCancellationRequested is returned by long batch operations (boat-fit,
	// flood fill) when the caller's context is canceled mid-run.
	ErrCancellationRequested = errors.New("tilemap: batch operation canceled")
)

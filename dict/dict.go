// Package dict implements preset-dictionary deflate compression for
// stored list entries.
//
// A Compressor is primed once with a seed payload; every Compress and
// Decompress call runs against a fresh stream carrying that same preset
// dictionary, so short payloads that are structurally similar to the
// seed compress far better than they would with a cold compressor.
//
// The seed is part of the persisted format: bytes written under one
// seed can only be read back under the byte-identical seed. There is no
// version tag in the output, so rotating the seed invalidates all
// previously written entries.
package dict

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
)

// Seed is the default dictionary payload: a serialized feature vector
// whose runs of small integers and zeros match the shape of typical
// stored entries. All backends of one deployment must share one seed.
const Seed = "[4.0, 36.0, 18.0, 2.0, 0.0, 0.0, 0.0, 0.0, 1.0, 18.0, 75.0, 84.0, 1.0, 1.0, 1.0, 0.0, 0.0, 0.0, 70.0, 144.0, 14.0, 15.0, 12.0, 1.0, 0.0, 0.0, 9.0, 24.0, 3.0, 3.0, 10.0, 2.0, 6.0, 81.0, 122.0, 2.0, 0.0, 0.0, 0.0, 0.0, 144.0, 144.0, 144.0, 50.0, 1.0, 4.0, 14.0, 17.0, 52.0, 9.0, 15.0, 49.0, 14.0, 81.0, 144.0, 40.0, 0.0, 0.0, 1.0, 6.0, 3.0, 15.0, 97.0, 55.0, 11.0, 16.0, 13.0, 0.0, 0.0, 0.0, 0.0, 3.0, 144.0, 100.0, 18.0, 0.0, 0.0, 0.0, 2.0, 98.0, 144.0, 12.0, 0.0, 0.0, 0.0, 11.0, 60.0, 50.0, 0.0, 0.0, 0.0, 0.0, 6.0, 9.0, 35.0, 20.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 93.0, 24.0, 0.0, 0.0, 0.0, 0.0, 0.0, 24.0, 71.0, 36.0, 0.0, 0.0, 0.0, 0.0, 1.0, 6.0, 0.0, 0.0, 0.0, 0.0, 1.0, 2.0, 1.0, 0.0]"

// DefaultLevel is the deflate level the storage drivers use unless
// configured otherwise.
const DefaultLevel = flate.BestCompression

// ErrDecode is returned when Decompress is given bytes that do not form
// a valid deflate stream for this compressor's seed.
//
// Retrying the same bytes cannot succeed; the error is terminal for
// that entry.
var ErrDecode = errors.New("dict: decode failed")

// ErrEmptySeed is returned by New when the seed is empty.
var ErrEmptySeed = errors.New("dict: seed must not be empty")

// Compressor compresses and decompresses entries against a fixed preset
// dictionary. Safe for concurrent use: the dictionary is immutable after
// construction and every call operates on its own stream.
type Compressor struct {
	dict  []byte
	level int

	writers sync.Pool // *flate.Writer primed with dict
	readers sync.Pool // io.ReadCloser implementing flate.Resetter
}

// New creates a Compressor primed with seed.
//
// level is a deflate compression level; out-of-range values are clamped
// to flate.BestCompression, which is also the default used by the
// storage drivers.
func New(seed string, level int) (*Compressor, error) {
	if seed == "" {
		return nil, ErrEmptySeed
	}
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		level = flate.BestCompression
	}
	return &Compressor{
		dict:  []byte(seed),
		level: level,
	}, nil
}

func (c *Compressor) getWriter(dst io.Writer) (*flate.Writer, error) {
	if v := c.writers.Get(); v != nil {
		w := v.(*flate.Writer)
		// Reset keeps the level and preset dictionary the writer was
		// created with, so pooled writers never leak stream state.
		w.Reset(dst)
		return w, nil
	}
	return flate.NewWriterDict(dst, c.level, c.dict)
}

func (c *Compressor) getReader(src io.Reader) (io.ReadCloser, error) {
	if v := c.readers.Get(); v != nil {
		r := v.(io.ReadCloser)
		if err := r.(flate.Resetter).Reset(src, c.dict); err != nil {
			return nil, err
		}
		return r, nil
	}
	return flate.NewReaderDict(src, c.dict), nil
}

// Compress deflates text against the preset dictionary and returns the
// raw compressed bytes. There is no envelope, length prefix, or version
// tag: the seed is the only format version.
//
// Output is deterministic: identical text under an identical seed and
// level always yields identical bytes.
func (c *Compressor) Compress(text string) ([]byte, error) {
	var buf bytes.Buffer
	w, err := c.getWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write([]byte(text)); err != nil {
		return nil, fmt.Errorf("dict: compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("dict: compress: %w", err)
	}
	c.writers.Put(w)
	return buf.Bytes(), nil
}

// Decompress inverts Compress for bytes produced under the identical
// seed. Bytes produced under a different seed are undefined input: the
// stream either fails to decode (ErrDecode) or reconstructs garbage
// that only the caller can detect.
func (c *Compressor) Decompress(data []byte) (string, error) {
	r, err := c.getReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := r.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	c.readers.Put(r)
	return string(out), nil
}

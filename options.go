package lshstore

import (
	"github.com/hupe1980/lshstore/codec"
	"github.com/hupe1980/lshstore/dict"
)

// Options carries the cross-backend knobs resolved by Open and handed
// to the selected driver.
type Options struct {
	// Codec serializes entries before compression.
	Codec codec.Codec

	// Seed primes the compression dictionary of the persistent
	// backends. It is part of the persisted format: entries written
	// under one seed are unreadable under any other, and no version
	// tag records which seed produced which bytes.
	Seed string

	// CompressionLevel is the deflate level for list entries.
	CompressionLevel int

	// Logger receives structured operational logs.
	Logger *Logger
}

// Option configures Open behavior.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Codec:            codec.Default,
		Seed:             dict.Seed,
		CompressionLevel: dict.DefaultLevel,
		Logger:           NoopLogger(),
	}
}

// WithCodec overrides the entry codec. Passing nil keeps codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *Options) {
		if c == nil {
			c = codec.Default
		}
		o.Codec = c
	}
}

// WithSeed overrides the compression dictionary seed.
//
// All writers and readers of one deployment must agree on the seed;
// rotating it invalidates every previously written entry.
func WithSeed(seed string) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithCompressionLevel overrides the deflate level for list entries.
func WithCompressionLevel(level int) Option {
	return func(o *Options) {
		o.CompressionLevel = level
	}
}

// WithLogger attaches a logger. Passing nil keeps logging disabled.
func WithLogger(l *Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = NoopLogger()
		}
		o.Logger = l
	}
}

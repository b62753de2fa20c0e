package sizes

import "ecmameta/handles"

type Options struct {
	minimalDelta      bool
	externalRowCounts *[handles.TableCount]int
}

type Option func(*Options)

// WithMinimalDelta lays out an edit-and-continue delta: every reference is 4
// bytes wide and the header carries the delta flags.
func WithMinimalDelta() Option {
	return func(o *Options) {
		o.minimalDelta = true
	}
}

// WithExternalRowCounts marks the stream as standalone debug metadata whose
// type system rows live in another image. The counts only influence reference
// widths.
func WithExternalRowCounts(counts [handles.TableCount]int) Option {
	return func(o *Options) {
		o.externalRowCounts = &counts
	}
}

// Package loader turns an encoded image source into a bounded, upright,
// in-memory image.
//
// A load runs in four steps against a Codec:
//
//  1. Probe the source for its native dimensions without decoding pixels.
//  2. Compute an integer sample factor from the requested maximum size.
//  3. Decode the source at that factor.
//  4. Rotate the decoded image by the source's orientation tag.
//
// An optional final rescale, configured through Options, fits or stretches
// the upright image into an output box.
//
// # Sample Factor
//
// The factor is the smaller of the rounded height and width ratios, so the
// decoded image stays at or above the requested size in at least one
// dimension. It is then raised until the decoded pixel count is at most twice
// the requested pixel budget, which keeps panoramas bounded.
//
// # Errors
//
// Every failure is returned as a *LoadError whose kind is one of
// ErrUnreadableSource, ErrDecodeFailed or ErrRotationFailed. Use errors.Is to
// classify. Failures are terminal for the call; Loader.LoadWithFallback is the
// one recovery policy offered.
//
// # Thread Safety
//
// A Loader holds no mutable state. Concurrent calls are safe as long as each
// call owns its own Source.
package loader

// Package imaging describes, summarizes and encodes decoded images.
//
// Coordinates passed to this package are relative to the image origin: (0,0)
// is the top-left pixel, X grows rightward and Y grows downward. Regions are
// half-open, so image.Rect(0, 0, 10, 10) covers pixels 0 through 9 on each
// axis.
//
// Colors are reported as "#RRGGBB" hex (alpha excluded), 8-bit RGB and RGBA,
// and HSL with hue in degrees and saturation and lightness in percent.
//
// All functions are stateless and safe for concurrent use on images that are
// not being modified.
package imaging

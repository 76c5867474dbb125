// Package taker turns a freshly captured or picked photo into a bounded,
// upright image and keeps it as the latest photo.
//
// A camera capture is a two-step exchange: BeginCapture reserves a
// timestamped file for the camera to write into and CompleteCapture loads it.
// Pick loads an existing image addressed by a file path, a file:// URI or a
// content:// URI served by a registered Provider.
//
// Every successful load is encoded to a single latest-photo file in the files
// directory. The file is replaced atomically, so a failed load never disturbs
// the previous photo.
package taker

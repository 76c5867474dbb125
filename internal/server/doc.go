// Package server implements the MCP (Model Context Protocol) server that
// exposes the image taker as tools.
//
// # Protocol
//
// The server speaks JSON-RPC 2.0, one message per line:
//   - Input: requests on the reader passed to Run (stdin in the binary)
//   - Output: responses on the writer passed to Run (stdout in the binary)
//
// Supported MCP methods: initialize, tools/list, tools/call and ping.
//
// # Available Tools
//
// Loading:
//   - image_probe: native size and format from the header
//   - image_load: bounded, upright load with optional base64 output
//
// Capture and gallery:
//   - image_capture_begin: reserve a capture file
//   - image_capture_complete: load and store a capture, or cancel it
//   - image_pick: load and store an existing image
//   - image_latest: path of the latest stored photo
//
// Color:
//   - image_sample_color: color at a pixel
//   - image_dominant_colors: color palette
//
// # Error Handling
//
// Tool failures are JSON-RPC errors with code -32000. The data member holds
// the error message and, for load failures, its kind (unreadable_source,
// decode_failed, rotation_failed or invalid_bounds).
package server

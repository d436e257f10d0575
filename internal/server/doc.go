// Package server implements an MCP (Model Context Protocol) server exposing
// the contour tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// Requests are processed one at a time in arrival order.
//
// # Available Tools
//
//   - image_info: Image dimensions and format metadata
//   - image_object_properties: Per-object measurements from the contour pipeline
//   - image_contours: Raw external contours as point lists
//   - image_edge_map: Canny edge map as base64 PNG
//   - image_laplacian_edges: Inverted Laplacian edge image as base64 PNG
//   - image_object_crop: One object's bounding-box region as base64 PNG
//
// Thresholds are optional and default to 70 (Canny) and 50 (Laplacian).
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the server, so
// repeated calls with different thresholds read the file once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(nil)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server

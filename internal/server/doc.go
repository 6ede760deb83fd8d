// Package server implements the MCP (Model Context Protocol) server for sky detection.
//
// This package provides a JSON-RPC 2.0 server that exposes the sky detector
// and a few supporting image inspection tools through the MCP protocol.
//
// # Protocol
//
// Requests arrive one per line on the input stream (stdin unless WithIO is
// used) and each response is written as one JSON line. Handled methods are
// initialize, notifications/initialized (no reply), tools/list, tools/call
// and ping.
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_sample_color: Get colour at pixel, including 8-bit HSV
//
// Sky Detection:
//   - sky_detect: Run the detector and return its six output images
//   - sky_skyline: Return the per-column skyline profile
//
// Both sky tools accept an "engine" argument selecting the pure-Go detector
// ("go", the default) or the OpenCV detector ("opencv", only functional in
// binaries built with the gocv tag).
//
// # Image Caching
//
// Decoded images are kept in an imaging.ImageCache keyed by path, so running
// sky_detect and then sky_skyline on the same photograph decodes it once.
// image_load evicts the entry first and always rereads the file.
//
// # Errors
//
// A failing tool answers with JSON-RPC code -32000 and the Go error string in
// data. Images the detector rejects (grayscale, empty) surface here as
// "failed to detect sky: invalid input image: ...". Malformed tools/call
// params use -32602 and unknown methods -32601.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(server.WithLogger(logger))
//	if err := srv.Run(); err != nil {
//	    logger.Fatal().Err(err).Msg("server error")
//	}
package server

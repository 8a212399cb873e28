// Package mcp provides a Model Context Protocol server for byteprobe.
// It exposes the actions and the converter as MCP tools so that an agent
// can interpret bytes without writing them to a file first.
//
// Tools:
//
//   - interpret: run actions over base64 or hex encoded data and return the
//     rendered report (text, json or markdown)
//   - list_actions: the action kinds with descriptions and default options
//   - hex_to_dec: hex string to unsigned integer
//   - to_little_endian: reverse the byte pairs of a hex string
//
// All tools are read-only. The server runs over stdio, see the serve command.
package mcp

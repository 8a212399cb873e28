package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	probemcp "github.com/nao1215/byteprobe/internal/mcp"
)

// NewServeCmd creates the serve command for running as an MCP server.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run byteprobe as a Model Context Protocol (MCP) server over stdio.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "byteprobe": {
        "command": "byteprobe",
        "args": ["serve"]
      }
    }
  }

Available tools: interpret, list_actions, hex_to_dec, to_little_endian`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Logs go to stderr; stdout carries the protocol.
			logger := setupLogger(cmd)
			server := probemcp.NewServer(getVersion(), logger)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

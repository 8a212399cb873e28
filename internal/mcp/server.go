package mcp

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nao1215/byteprobe/internal/action"
)

// NewServer creates an MCP server with all byteprobe tools registered.
// A nil logger selects slog.Default.
func NewServer(version string, logger *slog.Logger) *mcp.Server {
	if logger == nil {
		logger = slog.Default()
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "byteprobe",
		Version: version,
	}, nil)
	registerTools(server, version, logger)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for tools without side effects.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// interpretDescription names every action kind so that clients see the
// current set.
func interpretDescription() string {
	kinds := action.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return fmt.Sprintf("Run byte-interpretation actions (%s) over base64 or hex encoded data and return the report.",
		strings.Join(names, ", "))
}

// registerTools adds all byteprobe tools to the server.
func registerTools(server *mcp.Server, version string, logger *slog.Logger) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "interpret",
		Description: interpretDescription(),
		Annotations: readOnlyAnnotations(),
	}, handleInterpret(version, logger))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_actions",
		Description: "List the available actions with their descriptions and default options.",
		Annotations: readOnlyAnnotations(),
	}, handleListActions())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "hex_to_dec",
		Description: "Convert a hex string without 0x prefix to an unsigned decimal integer (at most 64 bits).",
		Annotations: readOnlyAnnotations(),
	}, handleHexToDec())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "to_little_endian",
		Description: "Reverse the byte order of a hex string. Returns space separated byte pairs.",
		Annotations: readOnlyAnnotations(),
	}, handleToLittleEndian())
}

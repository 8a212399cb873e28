package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nao1215/byteprobe/internal/action"
	"github.com/nao1215/byteprobe/internal/config"
	"github.com/nao1215/byteprobe/internal/controller"
	"github.com/nao1215/byteprobe/internal/convert"
	"github.com/nao1215/byteprobe/internal/model"
	"github.com/nao1215/byteprobe/internal/report"
)

// Data encodings accepted by the interpret tool.
const (
	encodingBase64 = "base64"
	encodingHex    = "hex"
)

// inputName is the path shown in the banner of reports built from tool input.
const inputName = "<mcp>"

// ErrUnknownEncoding is returned for an interpret encoding other than base64 or hex.
var ErrUnknownEncoding = errors.New("unknown data encoding: expected base64 or hex")

// --- Interpret tool ---

// InterpretInput is the input for the interpret tool.
type InterpretInput struct {
	Data     string   `json:"data"               jsonschema:"the bytes to interpret, encoded as given by encoding"`
	Encoding string   `json:"encoding,omitempty" jsonschema:"base64 (default) or hex"`
	Actions  []string `json:"actions,omitempty"  jsonschema:"action kinds to run in order (default hexdump)"`
	Set      []string `json:"set,omitempty"      jsonschema:"option overrides of the form kind.option=value"`
	Format   string   `json:"format,omitempty"   jsonschema:"report format: text (default), json or markdown"`
	Offset   int64    `json:"offset,omitempty"   jsonschema:"first byte to interpret"`
	Length   *int64   `json:"length,omitempty"   jsonschema:"number of bytes to interpret (default all)"`
}

// InterpretOutput is the output for the interpret tool.
type InterpretOutput struct {
	Report   string `json:"report"   jsonschema:"the rendered report"`
	Size     int    `json:"size"     jsonschema:"number of bytes interpreted"`
	SHA256   string `json:"sha256"   jsonschema:"SHA-256 of the interpreted bytes"`
	Sections int    `json:"sections" jsonschema:"number of action sections in the report"`
}

func handleInterpret(version string, logger *slog.Logger) mcp.ToolHandlerFor[InterpretInput, InterpretOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input InterpretInput) (*mcp.CallToolResult, InterpretOutput, error) {
		data, err := decodeData(input.Data, input.Encoding)
		if err != nil {
			return nil, InterpretOutput{}, err
		}

		length := int64(config.DefaultLength)
		if input.Length != nil {
			length = *input.Length
		}
		buf, err := model.NewByteBuffer(data).Window(input.Offset, length)
		if err != nil {
			return nil, InterpretOutput{}, err
		}

		cfg := config.NewConfig()
		cfg.Actions = input.Actions
		cfg.Overrides = input.Set
		invocations, err := cfg.Invocations()
		if err != nil {
			return nil, InterpretOutput{}, err
		}

		format := input.Format
		if format == "" {
			format = report.FormatText
		}
		var out bytes.Buffer
		sink, err := report.New(format, &out)
		if err != nil {
			return nil, InterpretOutput{}, err
		}

		ctrl := controller.New(sink, invocations,
			controller.WithLogger(logger),
			controller.WithTool(config.AppName, version),
			controller.WithHashes(controller.HashSHA256),
		)
		rep, runErr := ctrl.RunBuffer(ctx, inputName, buf, nil)
		closeErr := ctrl.Close()
		if runErr != nil {
			return nil, InterpretOutput{}, runErr
		}
		if closeErr != nil {
			return nil, InterpretOutput{}, closeErr
		}

		return nil, InterpretOutput{
			Report:   out.String(),
			Size:     rep.Header.Size,
			SHA256:   rep.Header.HashValue(controller.HashSHA256),
			Sections: len(rep.Sections),
		}, nil
	}
}

// decodeData decodes tool input data. Base64 accepts the standard and the
// URL-safe alphabets.
func decodeData(data, encoding string) ([]byte, error) {
	switch strings.ToLower(encoding) {
	case "", encodingBase64:
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			decoded, err = base64.URLEncoding.DecodeString(data)
			if err != nil {
				return nil, fmt.Errorf("decoding base64 data: %w", err)
			}
		}
		return decoded, nil
	case encodingHex:
		return convert.DecodeHex(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
	}
}

// --- List actions tool ---

// ListActionsInput is the input for the list_actions tool (no parameters needed).
type ListActionsInput struct{}

// ActionInfo describes one action.
type ActionInfo struct {
	Name        string         `json:"name"        jsonschema:"action kind"`
	Description string         `json:"description" jsonschema:"what the action renders"`
	Defaults    map[string]any `json:"defaults"    jsonschema:"default options"`
}

// ListActionsOutput is the output for the list_actions tool.
type ListActionsOutput struct {
	Actions []ActionInfo `json:"actions" jsonschema:"available actions"`
}

func handleListActions() mcp.ToolHandlerFor[ListActionsInput, ListActionsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ListActionsInput) (*mcp.CallToolResult, ListActionsOutput, error) {
		kinds := action.Kinds()
		out := ListActionsOutput{Actions: make([]ActionInfo, 0, len(kinds))}
		for _, kind := range kinds {
			a, err := action.New(kind)
			if err != nil {
				return nil, ListActionsOutput{}, err
			}
			out.Actions = append(out.Actions, ActionInfo{
				Name:        string(kind),
				Description: a.Description(),
				Defaults:    a.Defaults(),
			})
		}
		return nil, out, nil
	}
}

// --- Converter tools ---

// HexInput is the input for the converter tools.
type HexInput struct {
	Hex string `json:"hex" jsonschema:"hex digits, without 0x prefix"`
}

// HexToDecOutput is the output for the hex_to_dec tool.
type HexToDecOutput struct {
	Value   uint64 `json:"value"   jsonschema:"the parsed value"`
	Decimal string `json:"decimal" jsonschema:"the value in decimal notation"`
}

func handleHexToDec() mcp.ToolHandlerFor[HexInput, HexToDecOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input HexInput) (*mcp.CallToolResult, HexToDecOutput, error) {
		n, err := convert.HexToDec(input.Hex)
		if err != nil {
			return nil, HexToDecOutput{}, err
		}
		return nil, HexToDecOutput{Value: n, Decimal: strconv.FormatUint(n, 10)}, nil
	}
}

// ToLittleEndianOutput is the output for the to_little_endian tool.
type ToLittleEndianOutput struct {
	Result string `json:"result" jsonschema:"byte pairs in reversed order, space separated"`
}

func handleToLittleEndian() mcp.ToolHandlerFor[HexInput, ToLittleEndianOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input HexInput) (*mcp.CallToolResult, ToLittleEndianOutput, error) {
		s, err := convert.ToLittleEndian(input.Hex)
		if err != nil {
			return nil, ToLittleEndianOutput{}, err
		}
		return nil, ToLittleEndianOutput{Result: s}, nil
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/byteprobe/internal/convert"
)

// NewConvertCmd creates the convert command and its subcommands.
func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert hex strings",
		Long: `Convert exposes the hex helpers used by the actions.

Examples:
  # Hex to unsigned decimal
  byteprobe convert hex2dec 4142

  # Reverse byte order
  byteprobe convert le "DE AD BE EF"`,
	}

	cmd.AddCommand(newHexToDecCmd())
	cmd.AddCommand(newLittleEndianCmd())

	return cmd
}

// newHexToDecCmd creates the hex2dec subcommand.
func newHexToDecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hex2dec <hex>",
		Short: "Convert a hex string (no 0x prefix) to an unsigned decimal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := convert.HexToDec(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

// newLittleEndianCmd creates the le subcommand.
func newLittleEndianCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "le <hex>...",
		Short: "Reverse the byte order of a hex string",
		Long: `Reverse the byte order of a hex string.

Arguments are joined with spaces, so "le DE AD" and "le DEAD" are the same.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := convert.ToLittleEndian(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"slices"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags.
var (
	version = ""
	commit  = ""
	date    = ""
)

// reportedModules are the dependencies whose versions the version command
// lists: the MCP server, the CLI runtime and the history database driver.
var reportedModules = []string{
	"github.com/charmbracelet/fang",
	"github.com/modelcontextprotocol/go-sdk",
	"github.com/spf13/cobra",
	"modernc.org/sqlite",
}

// buildInfo describes the running binary.
type buildInfo struct {
	Version  string          `json:"version"`
	Commit   string          `json:"commit"`
	Built    string          `json:"built"`
	Modified bool            `json:"modified,omitempty"`
	Go       string          `json:"go"`
	Platform string          `json:"platform"`
	Modules  []moduleVersion `json:"modules,omitempty"`
}

// moduleVersion is one dependency of the binary.
type moduleVersion struct {
	Path    string `json:"path"`
	Version string `json:"version"`
}

// readBuildInfo merges the ldflags values with the module and VCS data
// embedded by the Go toolchain. ldflags win.
func readBuildInfo() buildInfo {
	info := buildInfo{
		Version:  version,
		Commit:   commit,
		Built:    date,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value[:min(7, len(s.Value))]
				}
			case "vcs.time":
				if info.Built == "" {
					info.Built = s.Value
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
		for _, dep := range bi.Deps {
			if slices.Contains(reportedModules, dep.Path) {
				info.Modules = append(info.Modules, moduleVersion{Path: dep.Path, Version: dep.Version})
			}
		}
	}

	if info.Version == "" {
		info.Version = "(devel)"
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.Built == "" {
		info.Built = "unknown"
	}
	return info
}

// getVersion returns the version shown by --version, the report banner and
// the MCP server.
func getVersion() string {
	return readBuildInfo().Version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build and dependency versions",
		Long: `Version prints the byteprobe version, the commit it was built from, the Go
toolchain and platform, and the versions of the modules byteprobe is built on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jsonOutput, err := cmd.Flags().GetBool("json")
			if err != nil {
				return err
			}
			info := readBuildInfo()
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			printBuildInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}

	cmd.Flags().BoolP("json", "j", false, "Output version information as JSON")
	return cmd
}

// printBuildInfo writes info as aligned "key value" lines.
func printBuildInfo(out io.Writer, info buildInfo) {
	rev := info.Commit
	if info.Modified {
		rev += " (modified)"
	}

	fmt.Fprintf(out, "byteprobe %s\n", info.Version)
	fmt.Fprintf(out, "  %-9s %s\n", "commit", rev)
	fmt.Fprintf(out, "  %-9s %s\n", "built", info.Built)
	fmt.Fprintf(out, "  %-9s %s %s\n", "go", info.Go, info.Platform)
	for _, m := range info.Modules {
		fmt.Fprintf(out, "  %-9s %s %s\n", "module", m.Path, m.Version)
	}
}

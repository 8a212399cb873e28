package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nao1215/byteprobe/internal/action"
)

// actionsStyleSet holds lipgloss styles for the actions listing.
type actionsStyleSet struct {
	name    lipgloss.Style
	option  lipgloss.Style
	dim     lipgloss.Style
	heading lipgloss.Style
}

// actionsStyles returns a TTY-aware style set.
func actionsStyles(isTTY bool) actionsStyleSet {
	if !isTTY {
		return actionsStyleSet{}
	}
	return actionsStyleSet{
		name:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "12", Dark: "12"}),
		option:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "14", Dark: "14"}),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "7"}),
		heading: lipgloss.NewStyle().Bold(true),
	}
}

// isTTY checks if a writer is a terminal.
func isTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// actionInfo is the JSON form of one action.
type actionInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Defaults    map[string]any `json:"defaults"`
}

// NewActionsCmd creates the actions command.
func NewActionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actions",
		Short: "List the available actions and their default options",
		Long: `List the actions that interpret and the configuration file accept.

Every option can be overridden per run with --set kind.option=value, or per
invocation in the configuration file.`,
		Args: cobra.NoArgs,
		RunE: runActionsCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output the list as JSON")

	return cmd
}

// runActionsCmd executes the actions command.
func runActionsCmd(cmd *cobra.Command, _ []string) error {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	infos, err := listActions()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(infos)
	}

	styles := actionsStyles(isTTY(out))
	fmt.Fprintf(out, "%s\n\n", styles.heading.Render(fmt.Sprintf("Actions (%d):", len(infos))))
	for _, info := range infos {
		fmt.Fprintf(out, "  %s  %s\n", styles.name.Render(fmt.Sprintf("%-10s", info.Name)), info.Description)
		for _, key := range action.Config(info.Defaults).Keys() {
			fmt.Fprintf(out, "      %s %s\n",
				styles.option.Render(key+":"),
				styles.dim.Render(fmt.Sprintf("%v", info.Defaults[key])))
		}
	}
	fmt.Fprintln(out, "\nUse 'byteprobe interpret -a <action> --set <action>.<option>=<value>' to run one.")
	return nil
}

// listActions describes every action kind in order.
func listActions() ([]actionInfo, error) {
	kinds := action.Kinds()
	infos := make([]actionInfo, 0, len(kinds))
	for _, kind := range kinds {
		a, err := action.New(kind)
		if err != nil {
			return nil, err
		}
		infos = append(infos, actionInfo{
			Name:        string(kind),
			Description: a.Description(),
			Defaults:    a.Defaults(),
		})
	}
	return infos, nil
}

package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nao1215/byteprobe/internal/action"
	"github.com/nao1215/byteprobe/internal/config"
	"github.com/nao1215/byteprobe/internal/controller"
)

//go:embed templates/byteprobe.yaml
var configTemplate embed.FS

// configTemplatePath is the commented template inside configTemplate.
const configTemplatePath = "templates/byteprobe.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a byteprobe configuration file",
		Long: `Init writes a .byteprobe configuration file.

By default the file is a commented template: the banner hashes, one active
hexdump action and a disabled example of every other action with its options.
With --minimal the file holds only the built-in defaults, generated from the
actions themselves.

Examples:
  # Create .byteprobe in the current directory
  byteprobe init

  # Generated defaults, printed instead of written
  byteprobe init --minimal --stdout

  # Replace an existing file elsewhere
  byteprobe init -f -o ~/.config/byteprobe/config.yaml`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Path of the configuration file to write")
	cmd.Flags().BoolP("force", "f", false,
		"Replace the file if it already exists")
	cmd.Flags().Bool("minimal", false,
		"Write only the default hashes and actions, without comments")
	cmd.Flags().Bool("stdout", false,
		"Print the configuration instead of writing a file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	outputPath, err := flags.GetString("output")
	if err != nil {
		return err
	}
	force, err := flags.GetBool("force")
	if err != nil {
		return err
	}
	minimal, err := flags.GetBool("minimal")
	if err != nil {
		return err
	}
	toStdout, err := flags.GetBool("stdout")
	if err != nil {
		return err
	}

	content, err := initContent(minimal)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if toStdout {
		_, err := out.Write(content)
		return err
	}

	if err := writeConfigFile(outputPath, content, force); err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %s (%s)\n", outputPath, humanize.Bytes(uint64(len(content))))
	fmt.Fprintf(out, "\nbyteprobe reads it automatically when it is named %s in the working directory,\n", config.DefaultConfigFile)
	fmt.Fprintf(out, "otherwise pass it with 'byteprobe interpret --config %s <file>'.\n", outputPath)
	return nil
}

// initContent returns the commented template, or with minimal the built-in
// defaults rendered as YAML.
func initContent(minimal bool) ([]byte, error) {
	if !minimal {
		content, err := configTemplate.ReadFile(configTemplatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config template: %w", err)
		}
		return content, nil
	}

	file := config.File{Hashes: controller.DefaultHashes()}
	for _, name := range config.DefaultActions() {
		a, err := action.New(action.Kind(name))
		if err != nil {
			return nil, err
		}
		file.Actions = append(file.Actions, config.ActionSpec{Name: name, Options: a.Defaults()})
	}

	content, err := yaml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("failed to render default configuration: %w", err)
	}
	return content, nil
}

// writeConfigFile creates path with mode 0600. Without force an existing
// file is left untouched.
func writeConfigFile(path string, content []byte, force bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	mode := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		mode |= os.O_EXCL
	}

	f, err := os.OpenFile(path, mode, 0600)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", path)
	}
	if err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return f.Close()
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/snapserve/internal/cli/output"
	"github.com/marmos91/snapserve/pkg/resolver"
)

var typesOutput string

var typesCmd = &cobra.Command{
	Use:   "types [file...]",
	Short: "Show the content type table",
	Long: `Show the extension to content type table used when serving files.

With file arguments, print the content type each file would be served with.
Extensions are matched exactly, so "page.HTML" is served as text/plain.

Examples:
  snapserve types
  snapserve types -o json
  snapserve types index.html data.json notes.txt`,
	RunE: runTypes,
}

func init() {
	typesCmd.Flags().StringVarP(&typesOutput, "output", "o", "table", "Output format (table|json|yaml|toml)")
}

// contentTypeList renders the extension table.
type contentTypeList struct {
	Types []resolver.ContentTypeEntry `json:"types" yaml:"types" toml:"types"`
}

func (l contentTypeList) Headers() []string {
	return []string{"EXTENSION", "CONTENT TYPE"}
}

func (l contentTypeList) Rows() [][]string {
	rows := make([][]string, 0, len(l.Types))
	for _, t := range l.Types {
		rows = append(rows, []string{t.Extension, t.ContentType})
	}
	return rows
}

// fileTypeEntry is the content type a given file name maps to.
type fileTypeEntry struct {
	File        string `json:"file" yaml:"file" toml:"file"`
	ContentType string `json:"content_type" yaml:"content_type" toml:"content_type"`
}

type fileTypeList struct {
	Files []fileTypeEntry `json:"files" yaml:"files" toml:"files"`
}

func (l fileTypeList) Headers() []string {
	return []string{"FILE", "CONTENT TYPE"}
}

func (l fileTypeList) Rows() [][]string {
	rows := make([][]string, 0, len(l.Files))
	for _, f := range l.Files {
		rows = append(rows, []string{f.File, f.ContentType})
	}
	return rows
}

func runTypes(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(typesOutput)
	if err != nil {
		return err
	}
	printer := output.NewPrinter(cmd.OutOrStdout(), format, false)

	if len(args) == 0 {
		return printer.Print(contentTypeList{Types: resolver.ContentTypes()})
	}

	list := fileTypeList{Files: make([]fileTypeEntry, 0, len(args))}
	for _, name := range args {
		list.Files = append(list.Files, fileTypeEntry{File: name, ContentType: resolver.ContentTypeFor(name)})
	}
	return printer.Print(list)
}

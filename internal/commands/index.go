// internal/commands/index.go
package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mwiater/holonet/internal/index"
	"github.com/spf13/cobra"
)

// indexCmd implements 'index', which builds the startup name index and prints
// each name with the offset it starts at in the joined name string.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build and print the character name index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		a, err := buildAppForCommand(cmd, cfg)
		if err != nil {
			return err
		}
		defer a.Close()
		return printIndex(cmd.OutOrStdout(), a.names, cfg.JSONMode)
	},
}

type indexEntry struct {
	Offset int    `json:"offset"`
	Name   string `json:"name"`
}

func printIndex(w io.Writer, names *index.NameIndex, jsonMode bool) error {
	entries := make([]indexEntry, 0, names.Len())
	offsets := names.Offsets()
	for i, n := range names.Names() {
		entries = append(entries, indexEntry{Offset: offsets[i], Name: n})
	}

	if jsonMode {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	infoColor.Fprintf(w, "%d names indexed (%d bytes joined)\n", names.Len(), len(names.Joined()))
	for _, e := range entries {
		fmt.Fprintf(w, "  %6d  %s\n", e.Offset, e.Name)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

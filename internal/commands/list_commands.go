// internal/commands/list_commands.go
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// listCmd groups the 'list' subcommands.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing resources",
}

// commandsCmd implements 'list commands': every holonet command path with its
// short description, indented by depth.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode := false
		if cfg := GetConfig(); cfg != nil {
			jsonMode = cfg.JSONMode
		}
		return printCommandTree(cmd.OutOrStdout(), commandTree(rootCmd), jsonMode)
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
	rootCmd.AddCommand(listCmd)
}

type commandEntry struct {
	Path  string `json:"path"`
	Short string `json:"short"`
	Depth int    `json:"-"`
}

// commandTree flattens root and its available subcommands depth first. Shell
// completion and help are left out.
func commandTree(root *cobra.Command) []commandEntry {
	var entries []commandEntry
	var walk func(c *cobra.Command, depth int)
	walk = func(c *cobra.Command, depth int) {
		entries = append(entries, commandEntry{Path: c.CommandPath(), Short: c.Short, Depth: depth})
		for _, sub := range c.Commands() {
			if sub.Name() == "completion" || sub.Name() == "help" || !sub.IsAvailableCommand() {
				continue
			}
			walk(sub, depth+1)
		}
	}
	walk(root, 0)
	return entries
}

func printCommandTree(w io.Writer, entries []commandEntry, jsonMode bool) error {
	if jsonMode {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	paths := make([]string, len(entries))
	width := 0
	for i, e := range entries {
		paths[i] = strings.Repeat("  ", e.Depth) + e.Path
		width = max(width, lipgloss.Width(paths[i]))
	}
	column := lipgloss.NewStyle().Width(width + 2)

	fmt.Fprintln(w, "Commands and Subcommands:")
	for i, e := range entries {
		fmt.Fprintf(w, "  %s%s\n", column.Render(paths[i]), e.Short)
	}
	return nil
}

// internal/commands/search.go
package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

var errNoResults = errors.New("no characters found")

// searchCmd implements 'search <query>', the one-shot terminal version of the
// web search route.
var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search for characters by full or partial name",
	Long:  `Builds the name index, then resolves the query by exact API search with a substring fallback, enriches every match with starships, homeworld and species, and prints them sorted by name.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return errors.New("query must not be empty")
		}

		cfg := GetConfig()
		a, err := buildAppForCommand(cmd, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.pipeline.Run(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("search %q: %w", query, err)
		}
		if cfg.Debug {
			pp.Fprintln(cmd.ErrOrStderr(), out.Raw)
		}
		if err := printOutcome(cmd.OutOrStdout(), out, cfg.JSONMode); err != nil {
			return err
		}
		if out.NotFound() {
			return errNoResults
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

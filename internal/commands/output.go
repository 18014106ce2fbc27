package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mwiater/holonet/internal/enrich"
	"github.com/mwiater/holonet/internal/search"
	"github.com/mwiater/holonet/internal/util"
)

// maxErrorRunes bounds how much of a skip reason is printed; swapi errors
// carry full URLs.
const maxErrorRunes = 160

var (
	nameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	rowStyle     = lipgloss.NewStyle().PaddingLeft(4)

	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
	infoColor = color.New(color.FgCyan)
)

type outcomeJSON struct {
	Query      string          `json:"query"`
	Fallback   bool            `json:"fallback"`
	Characters []enrich.Result `json:"characters"`
	Skipped    []string        `json:"skipped,omitempty"`
}

// printOutcome writes the search results either as indented JSON or as styled
// terminal text.
func printOutcome(w io.Writer, out search.Outcome, jsonMode bool) error {
	if jsonMode {
		payload := outcomeJSON{Query: out.Query, Fallback: out.Fallback, Characters: out.Results}
		if payload.Characters == nil {
			payload.Characters = []enrich.Result{}
		}
		for _, f := range out.Failures {
			payload.Skipped = append(payload.Skipped, f.CharacterName)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	if out.NotFound() {
		errColor.Fprintf(w, "No characters found for %q.\n", out.Query)
		return nil
	}

	mode := "exact match"
	if out.Fallback {
		mode = "partial name match"
	}
	infoColor.Fprintf(w, "%d result(s) for %q (%s)\n\n", len(out.Results), out.Query, mode)

	for _, r := range out.Results {
		fmt.Fprintln(w, nameStyle.Render(r.CharacterName))
		writeCharacter(w, r.Attributes)
		fmt.Fprintln(w)
	}

	for _, f := range out.Failures {
		warnColor.Fprintf(w, "skipped %s: %s\n", f.CharacterName, util.TruncateRunes(f.Err.Error(), maxErrorRunes))
	}
	return nil
}

func writeCharacter(w io.Writer, a enrich.Attributes) {
	hw := a.Homeworld
	fmt.Fprintln(w, sectionStyle.Render("  Homeworld"))
	fmt.Fprintln(w, rowStyle.Render(fmt.Sprintf("%s (population %s, climate %s)", orNone(hw.Name), orNone(hw.Population), orNone(hw.Climate))))

	fmt.Fprintln(w, sectionStyle.Render("  Starships"))
	if len(a.Starships) == 0 {
		fmt.Fprintln(w, rowStyle.Render("none"))
	}
	for _, s := range a.Starships {
		fmt.Fprintln(w, rowStyle.Render(fmt.Sprintf("%s (class %s, cargo capacity %s)", s.Name, s.Class, s.Capacity)))
	}

	fmt.Fprintln(w, sectionStyle.Render("  Species"))
	if len(a.Species) == 0 {
		fmt.Fprintln(w, rowStyle.Render("none"))
	}
	for _, s := range a.Species {
		fmt.Fprintln(w, rowStyle.Render(fmt.Sprintf("%s (language %s, lifespan %s)", s.Name, s.Language, s.Lifespan)))
	}
}

func orNone(s string) string {
	return util.OrPlaceholder(s, "n/a")
}

// internal/commands/progress.go
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/mwiater/holonet/internal/appconfig"
	"github.com/spf13/cobra"
)

type pageIndexedMsg struct{ done, total int }

type indexBuiltMsg struct{}

// indexProgressModel shows a spinner and page bar while the name index is
// fetched.
type indexProgressModel struct {
	spinner   spinner.Model
	bar       progress.Model
	done      int
	total     int
	finished  bool
	cancelled bool
	cancel    context.CancelFunc
}

func newIndexProgressModel(total int, cancel context.CancelFunc) indexProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	return indexProgressModel{
		spinner: s,
		bar: progress.New(
			progress.WithSolidFill("12"),
			progress.WithWidth(30),
			progress.WithoutPercentage(),
		),
		total:  total,
		cancel: cancel,
	}
}

func (m indexProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m indexProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case pageIndexedMsg:
		m.done, m.total = msg.done, msg.total
	case indexBuiltMsg:
		m.finished = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m indexProgressModel) View() string {
	if m.finished {
		return ""
	}
	if m.cancelled {
		return "Cancelled.\n"
	}
	percent := 0.0
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}
	return fmt.Sprintf("%s Indexing swapi pages %d/%d %s\n", m.spinner.View(), m.done, m.total, m.bar.ViewAs(percent))
}

func isTTY(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// showIndexProgress reports whether the index build should be animated:
// only for human-readable output on an interactive terminal, and never with
// debug logging, which would interleave with the frames.
func showIndexProgress(cfg *appconfig.Config, out io.Writer, in io.Reader) bool {
	return cfg != nil && !cfg.JSONMode && !cfg.Debug && isTTY(out) && isTTY(in)
}

// buildAppForCommand builds the app, animating the index build on stderr when
// the command runs in a terminal.
func buildAppForCommand(cmd *cobra.Command, cfg *appconfig.Config) (*app, error) {
	ctx := cmd.Context()
	out, in := cmd.ErrOrStderr(), cmd.InOrStdin()
	if !showIndexProgress(cfg, out, in) {
		return buildApp(ctx, cfg, nil)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newIndexProgressModel(cfg.Pages, cancel),
		tea.WithContext(ctx), tea.WithOutput(out), tea.WithInput(in))

	type built struct {
		app *app
		err error
	}
	result := make(chan built, 1)
	go func() {
		a, err := buildApp(ctx, cfg, func(done, total int) {
			p.Send(pageIndexedMsg{done: done, total: total})
		})
		p.Send(indexBuiltMsg{})
		result <- built{app: a, err: err}
	}()

	if _, err := p.Run(); err != nil {
		cancel()
	}
	r := <-result
	return r.app, r.err
}

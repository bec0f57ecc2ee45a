// Package progress provides a terminal progress display driven by
// generation-boundary callbacks: a channel-fed bubbletea model rendering
// generation, evaluation count, and best/mean fitness as a read-only
// status view with a progress bar.
package progress

import (
	"fmt"
	"time"

	bprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aram/evolve/ga"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle = lipgloss.NewStyle().Bold(true)
)

// Update is one generation's worth of progress, handed from the run
// goroutine to the TUI over a channel.
type Update struct {
	Generation     int
	MaxGenerations int
	Evals          int64
	PopSize        int
	Best           []float64
	Mean           float64
	Done           bool
}

type tickMsg struct{}

type model struct {
	updates  <-chan Update
	latest   Update
	bar      bprogress.Model
	started  time.Time
	quitting bool
}

func (m model) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

func waitForUpdate(ch <-chan Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return tickMsg{}
		}
		return u
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	case Update:
		m.latest = msg
		if msg.Done {
			m.quitting = true
			return m, tea.Quit
		}
		return m, waitForUpdate(m.updates)
	case tickMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	elapsed := time.Since(m.started).Round(time.Second)

	line := titleStyle.Render("evolve") + "\n"
	line += fmt.Sprintf("%s %s   %s %s   %s %s\n",
		labelStyle.Render("generation"), valueStyle.Render(fmt.Sprint(m.latest.Generation)),
		labelStyle.Render("evals"), valueStyle.Render(fmt.Sprint(m.latest.Evals)),
		labelStyle.Render("elapsed"), valueStyle.Render(elapsed.String()),
	)
	line += fmt.Sprintf("%s %s   %s %s\n",
		labelStyle.Render("best"), valueStyle.Render(fmt.Sprint(m.latest.Best)),
		labelStyle.Render("mean"), valueStyle.Render(fmt.Sprintf("%.4f", m.latest.Mean)),
	)
	if m.latest.MaxGenerations > 0 {
		pct := float64(m.latest.Generation+1) / float64(m.latest.MaxGenerations)
		if pct > 1 {
			pct = 1
		}
		line += m.bar.ViewAs(pct) + "\n"
	}
	return line
}

// Run starts a bubbletea program rendering updates received on ch until
// the channel closes or an Update with Done set arrives.
func Run(ch <-chan Update) error {
	m := model{
		updates: ch,
		bar:     bprogress.New(bprogress.WithDefaultGradient()),
		started: time.Now(),
	}
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}

// Emit adapts a ga.Callback into an Update sent on ch. Intended to be run
// from the same goroutine driving ga.GA.Run, paired with Run(ch) in a
// separate goroutine. done is evaluated after the callback fires so the
// final generation is still reported before the Done update closes the
// display.
func Emit[G ga.Gene](ch chan<- Update, maxGenerations int, done func(ga.Snapshot[G]) bool) ga.Callback[G] {
	return func(snap ga.Snapshot[G]) {
		ch <- Update{
			Generation:     snap.Generation,
			MaxGenerations: maxGenerations,
			Evals:          snap.Evals,
			PopSize:        len(snap.Population),
			Best:           snap.Best.Fitness,
			Mean:           meanOf(snap.History),
			Done:           done(snap),
		}
	}
}

func meanOf(history []ga.Stats) float64 {
	if len(history) == 0 {
		return 0
	}
	return history[len(history)-1].Mean
}

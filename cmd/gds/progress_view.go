package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	tasks "github.com/dd0wney/cluso-gds/pkg/progress"
)

type statusMsg tasks.Status

type doneMsg struct{ err error }

// progressModel renders the innermost running task of one job as a bar
// and lists the tasks that already finished.
type progressModel struct {
	algorithm string
	bar       progress.Model
	spin      spinner.Model
	current   tasks.Status
	finished  []tasks.Status
	started   time.Time
	done      bool
	err       error
}

func newProgressModel(algorithm string) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF00FF"))
	return progressModel{
		algorithm: algorithm,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		spin:      s,
		started:   time.Now(),
	}
}

func (m progressModel) Init() tea.Cmd { return m.spin.Tick }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		s := tasks.Status(msg)
		if s.State == tasks.StateRunning {
			m.current = s
		} else {
			m.finished = append(m.finished, s)
		}
		return m, nil
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.algorithm) + "\n")
	for _, s := range m.finished {
		mark := successStyle.Render("✓")
		if s.State == tasks.StateFailed {
			mark = errorStyle.Render("✗")
		}
		fmt.Fprintf(&sb, "%s %s\n", mark, s.Task)
	}
	if !m.done && m.current.Task != "" {
		pct := m.current.Percent
		if pct < 0 {
			fmt.Fprintf(&sb, "%s %s\n", m.spin.View(), m.current.Task)
		} else {
			fmt.Fprintf(&sb, "%s %s\n", m.current.Task, m.bar.ViewAs(pct/100))
		}
	}
	elapsed := time.Since(m.started).Round(time.Millisecond)
	sb.WriteString(keyStyle.Render(fmt.Sprintf("elapsed %s", elapsed)) + "\n")
	return sb.String()
}

// withProgress runs fn while rendering the status updates of reg on
// stderr. Quitting the view cancels fn.
func withProgress(ctx context.Context, reg *tasks.TaskRegistry, algorithm string, fn func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel(algorithm), tea.WithOutput(os.Stderr), tea.WithContext(ctx))

	// listeners run on algorithm workers; drop updates rather than block them
	updates := make(chan tasks.Status, 256)
	unsubscribe := reg.Subscribe(func(s tasks.Status) {
		select {
		case updates <- s:
		default:
		}
	})
	defer unsubscribe()
	go func() {
		for {
			select {
			case s := <-updates:
				p.Send(statusMsg(s))
			case <-ctx.Done():
				return
			}
		}
	}()

	errc := make(chan error, 1)
	go func() {
		err := fn(ctx)
		errc <- err
		p.Send(doneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		cancel()
		<-errc
		return err
	}
	// the view may have quit first on ctrl+c
	cancel()
	return <-errc
}

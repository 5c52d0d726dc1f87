package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/mhb8436/aria/pkg/crawler"
	"github.com/mhb8436/aria/pkg/logger"
)

type progressMsg crawler.Progress

type doneMsg struct{}

type progressModel struct {
	title   string
	start   time.Time
	spinner spinner.Model
	bar     progress.Model
	cancel  context.CancelFunc

	current  int
	total    int
	lastURL  string
	status   crawler.ProgressStatus
	failures int
	stopping bool

	done bool
}

func newProgressModel(title string, cancel context.CancelFunc) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = blueStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	return progressModel{title: title, start: time.Now(), spinner: s, bar: bar, cancel: cancel}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			// keep rendering until the work observes the cancellation
			m.stopping = true
			m.cancel()
		}
		return m, nil

	case progressMsg:
		m.current, m.total = msg.Current, msg.Total
		m.lastURL, m.status = msg.URL, msg.Status
		if msg.Status == crawler.ProgressError {
			m.failures++
		}
		return m, nil

	case doneMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	title := m.title
	if m.stopping {
		title = "취소 중..."
	}
	fmt.Fprintf(&b, "%s %s %s\n", m.spinner.View(), title, dimStyle.Render(elapsed(m.start)))

	if m.total > 0 {
		percent := float64(m.current) / float64(m.total)
		fmt.Fprintf(&b, "%s [%d/%d]", m.bar.ViewAs(percent), m.current, m.total)
		if m.failures > 0 {
			b.WriteString(redStyle.Render(fmt.Sprintf(" 실패 %d", m.failures)))
		}
		b.WriteString("\n")
	}
	if m.lastURL != "" {
		fmt.Fprintf(&b, "%s %s\n", dimStyle.Render(string(m.status)+":"), truncate(m.lastURL, 80))
	}
	return b.String()
}

func elapsed(start time.Time) string {
	return fmt.Sprintf("%.1fs", time.Since(start).Seconds())
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// runWithProgress runs work while a spinner and progress bar render on
// stderr. Log output goes to a temporary file for the duration so it does not
// tear the display. Without a terminal, or when disabled, progress is logged
// as plain lines instead.
func runWithProgress(ctx context.Context, title string, enabled bool, work func(context.Context, crawler.ProgressFunc) error) error {
	if !enabled || !isTerminal(os.Stderr) {
		return work(ctx, func(p crawler.Progress) {
			logger.Infof("[%d/%d] %s: %s", p.Current, p.Total, p.Status, p.URL)
		})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logFile, err := os.CreateTemp("", "aria-*.log")
	if err == nil {
		prev := logger.SetOutput(logFile)
		defer func() {
			logger.SetOutput(prev)
			info, statErr := logFile.Stat()
			logFile.Close()
			if statErr == nil && info.Size() > 0 {
				logger.Infof("log written to %s", logFile.Name())
			} else {
				os.Remove(logFile.Name())
			}
		}()
	}

	p := tea.NewProgram(newProgressModel(title, cancel), tea.WithOutput(os.Stderr))
	errc := make(chan error, 1)
	go func() {
		errc <- work(ctx, func(pr crawler.Progress) { p.Send(progressMsg(pr)) })
		p.Send(doneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-errc
		return err
	}
	return <-errc
}

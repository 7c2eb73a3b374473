package tui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmoreno/cadet/internal/jobs"
)

const pollInterval = 500 * time.Millisecond

type jobMsg jobs.Job

type errMsg struct{ err error }

type tickMsg struct{}

// WatchModel polls a running build job and renders its progress.
type WatchModel struct {
	baseURL string
	jobID   string
	client  *http.Client

	spinner spinner.Model
	job     jobs.Job
	loaded  bool
	err     error
	done    bool
	width   int
}

// NewWatchModel creates a watch model for the given job on the given
// server.
func NewWatchModel(baseURL, jobID string) WatchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return WatchModel{
		baseURL: strings.TrimRight(baseURL, "/"),
		jobID:   jobID,
		client:  &http.Client{Timeout: 5 * time.Second},
		spinner: s,
		width:   80,
	}
}

// Run starts the watch TUI and blocks until the job finishes or the
// user quits.
func Run(baseURL, jobID string) error {
	p := tea.NewProgram(NewWatchModel(baseURL, jobID))
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchJob)
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case jobMsg:
		m.job = jobs.Job(msg)
		m.loaded = true
		m.err = nil
		if m.job.Status.Terminal() {
			m.done = true
			return m, tea.Quit
		}
		return m, tick()

	case errMsg:
		m.err = msg.err
		return m, tick()

	case tickMsg:
		return m, m.fetchJob

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Watching job "+m.jobID) + "\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n")
	case !m.loaded:
		b.WriteString(m.spinner.View() + " connecting...\n")
	default:
		b.WriteString(subtleStyle.Render(m.job.Prompt) + "\n\n")

		bar := progressBar{Percent: m.job.Progress, Width: 40}
		switch m.job.Status {
		case jobs.StatusSucceeded:
			b.WriteString(bar.View() + "\n")
			b.WriteString(successStyle.Render("succeeded: "+m.job.OutputFile) + "\n")
		case jobs.StatusFailed:
			b.WriteString(bar.View() + "\n")
			b.WriteString(errorStyle.Render("failed: "+m.job.Error) + "\n")
		default:
			b.WriteString(m.spinner.View() + " " + bar.View() + "\n")
			b.WriteString(subtleStyle.Render(string(m.job.Status)) + "\n")
		}
	}

	if !m.done {
		b.WriteString("\n" + statusBarStyle.Render("q: quit") + "\n")
	}

	return b.String()
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// fetchJob polls the server for the job's current state.
func (m WatchModel) fetchJob() tea.Msg {
	resp, err := m.client.Get(m.baseURL + "/jobs/" + m.jobID)
	if err != nil {
		return errMsg{err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errMsg{fmt.Errorf("job %s not found", m.jobID)}
	}
	if resp.StatusCode != http.StatusOK {
		return errMsg{fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var job jobs.Job
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return errMsg{fmt.Errorf("failed to decode job: %w", err)}
	}
	return jobMsg(job)
}

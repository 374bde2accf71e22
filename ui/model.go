package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// JobLogEntry is one processed source in the batch list.
type JobLogEntry struct {
	Source    string
	Processed string
	Error     string
}

func (e JobLogEntry) FilterValue() string { return e.Source }
func (e JobLogEntry) Title() string       { return filepath.Base(e.Source) }
func (e JobLogEntry) Description() string {
	if e.Error != "" {
		return fmt.Sprintf("❌ %s", e.Error)
	}
	if e.Processed != "" {
		return fmt.Sprintf("✓ → %s", filepath.Base(e.Processed))
	}
	return "🔄 Processing..."
}

// WorkerState tracks what one worker is doing.
type WorkerState struct {
	ID             int
	CurrentFile    string
	FrameCompleted int
	FrameTotal     int
	Status         string // "idle", "processing", "done"
}

// BatchModel is the TUI for multi-file background-removal runs.
type BatchModel struct {
	version string

	totalJobs     int
	completedJobs int
	workers       map[int]*WorkerState
	entries       []JobLogEntry

	overallProgress progress.Model
	workerProgress  []progress.Model
	jobList         list.Model

	width  int
	height int

	quitting bool
}

// NewBatchModel creates the batch TUI for numJobs files across numWorkers
// workers.
func NewBatchModel(version string, numJobs, numWorkers int) BatchModel {
	workerProgs := make([]progress.Model, numWorkers)
	for i := range workerProgs {
		workerProgs[i] = progress.New(progress.WithDefaultGradient())
	}

	workers := make(map[int]*WorkerState, numWorkers)
	for i := 0; i < numWorkers; i++ {
		workers[i] = &WorkerState{ID: i, Status: "idle"}
	}

	jobList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	jobList.Title = "Processed Files"

	return BatchModel{
		version:         version,
		totalJobs:       numJobs,
		workers:         workers,
		overallProgress: progress.New(progress.WithDefaultGradient()),
		workerProgress:  workerProgs,
		jobList:         jobList,
	}
}

// Init implements tea.Model
func (m BatchModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m BatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.jobList.SetSize(msg.Width-4, msg.Height/3)

	case JobStartedMsg:
		if worker, ok := m.workers[msg.WorkerID]; ok {
			worker.CurrentFile = msg.Source
			worker.Status = "processing"
			worker.FrameCompleted = 0
			worker.FrameTotal = 0
		}

	case FrameProgressMsg:
		if worker, ok := m.workers[msg.WorkerID]; ok {
			worker.FrameCompleted = msg.Completed
			worker.FrameTotal = msg.Total
		}

	case JobCompletedMsg:
		if worker, ok := m.workers[msg.WorkerID]; ok {
			worker.Status = "idle"
			worker.CurrentFile = ""
			worker.FrameCompleted = 0
			worker.FrameTotal = 0
		}

		entry := JobLogEntry{Source: msg.Source, Processed: msg.Processed}
		if msg.Err != nil {
			entry.Error = msg.Err.Error()
		}
		m.entries = append(m.entries, entry)

		items := make([]list.Item, len(m.entries))
		for i, e := range m.entries {
			items[i] = e
		}
		m.jobList.SetItems(items)

	case BatchProgressMsg:
		m.completedJobs = msg.Completed

	case BatchDoneMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m BatchModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	header := HeaderStyle.Render(fmt.Sprintf("stickercut %s", m.version))

	overallPercent := 0.0
	if m.totalJobs > 0 {
		overallPercent = float64(m.completedJobs) / float64(m.totalJobs)
	}
	overallView := fmt.Sprintf("Overall Progress: %s (%d/%d)",
		m.overallProgress.ViewAs(overallPercent),
		m.completedJobs,
		m.totalJobs)

	workerViews := []string{"Worker Status:"}
	for i := 0; i < len(m.workerProgress); i++ {
		worker := m.workers[i]
		status := fmt.Sprintf("Worker %d: ", i+1)
		if worker.Status == "processing" {
			framePercent := 0.0
			if worker.FrameTotal > 0 {
				framePercent = float64(worker.FrameCompleted) / float64(worker.FrameTotal)
			}
			status += fmt.Sprintf("%s %s", m.workerProgress[i].ViewAs(framePercent), filepath.Base(worker.CurrentFile))
		} else {
			status += worker.Status
		}
		workerViews = append(workerViews, status)
	}

	sections := []string{
		header,
		overallView,
		strings.Join(workerViews, "\n"),
		m.jobList.View(),
		"Controls: [q] Quit",
	}

	return strings.Join(sections, "\n\n")
}

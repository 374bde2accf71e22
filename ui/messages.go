package ui

// TUI message types for worker communication

// JobStartedMsg reports a worker picking up a source file.
type JobStartedMsg struct {
	WorkerID int
	Source   string
}

// FrameProgressMsg reports per-frame progress within one job.
type FrameProgressMsg struct {
	WorkerID  int
	Completed int
	Total     int
}

// JobCompletedMsg reports the outcome of one source file.
type JobCompletedMsg struct {
	WorkerID  int
	Source    string
	Processed string
	Err       error
}

// BatchProgressMsg reports overall batch completion.
type BatchProgressMsg struct {
	Completed int
	Total     int
}

// BatchDoneMsg signals that every job has finished.
type BatchDoneMsg struct{}

package tui

// exportDoneMsg reports the outcome of an export started from the dashboard.
type exportDoneMsg struct {
	err  error
	page string
	rows int
}

// errorMsg surfaces an error in the status line.
type errorMsg struct {
	err error
}

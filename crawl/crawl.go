// Package crawl provides site structure discovery and the snapshot driver.
// It coordinates fetching, link extraction, content extraction, and storage
// of pages.
package crawl

// ProgressEvent reports progress during discovery or a snapshot walk.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Links     int // new nested links found on URL
	Outside   int // same-origin links outside the root path
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting progress.
type ProgressFunc func(event ProgressEvent)

func (f ProgressFunc) emit(event ProgressEvent) {
	if f != nil {
		f(event)
	}
}

// Result holds the outcome of a snapshot walk.
type Result struct {
	Saved   int
	Failed  int
	Skipped int
	Bytes   int
}

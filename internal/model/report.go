package model

import "time"

// Report is the persisted analysis result for one routine.
type Report struct {
	Source     Path
	Hash       string
	Routine    string
	Line       int
	Functional bool
	Reasons    []Reason
	CallSites  []CallSite
}

// FileResult holds the reports for a single source file.
type FileResult struct {
	Source  Source
	Reports []Report
}

// Execution is the outcome of invoking one routine repeatedly.
type Execution struct {
	Source    Path
	Routine   string
	Result    string
	Durations []time.Duration
	Hits      uint64
	Misses    uint64
	Err       error
}

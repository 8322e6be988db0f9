package datarecording

import (
	"os"
	"strings"
	"time"
)

const runInfoTimeFormat = "2006-01-02 15:04:05.000000000"

// runInfo is one property of a replay stored in the run_info table.
type runInfo struct {
	Property string
	Value    string
}

// A RunRecorder stores the configuration and the outcome of a replay in the
// run_info table, one property per row.
type RunRecorder struct {
	tableName string
	recorder  DataRecorder
	entries   []runInfo
}

// NewRunRecorder creates a RunRecorder that writes through the given
// recorder.
func NewRunRecorder(recorder DataRecorder) *RunRecorder {
	r := &RunRecorder{
		tableName: "run_info",
		recorder:  recorder,
	}

	r.recorder.CreateTable(r.tableName, runInfo{})

	return r
}

// Start records the time the replay started and the command that started
// it.
func (r *RunRecorder) Start() {
	startTime := time.Now().Format(runInfoTimeFormat)
	r.Record("Start Time", startTime)

	cmd := strings.Join(os.Args, " ")
	r.Record("Command", cmd)

	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	r.Record("Working Directory", wd)
}

// Record adds one property of the replay.
func (r *RunRecorder) Record(property, value string) {
	r.entries = append(r.entries, runInfo{Property: property, Value: value})
}

// End writes all the recorded properties along with the time the replay
// ended.
func (r *RunRecorder) End() {
	endTime := time.Now().Format(runInfoTimeFormat)
	r.Record("End Time", endTime)

	for _, entry := range r.entries {
		r.recorder.InsertData(r.tableName, entry)
	}

	r.entries = nil

	r.recorder.Flush()
}

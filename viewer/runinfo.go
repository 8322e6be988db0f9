package main

import (
	"encoding/json"
	"net/http"

	"github.com/sarchlab/memsim/datarecording"
)

type runInfoEntry struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// httpRuns lists the run properties recorded in the database, such as the
// trace file, the policy, and the final counters.
func httpRuns(w http.ResponseWriter, r *http.Request) {
	entries, _, err := reader.Query(
		r.Context(), "run_info", datarecording.QueryParams{})
	dieOnErr(err)

	if entries == nil {
		entries = []any{}
	}

	rsp, err := json.Marshal(entries)
	dieOnErr(err)

	_, err = w.Write(rsp)
	dieOnErr(err)
}

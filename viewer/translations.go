package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/sarchlab/memsim/datarecording"
)

// defaultPageSize bounds a translations response when no limit is given.
const defaultPageSize = 100

type translationEntry struct {
	Seq       int  `json:"seq"`
	Address   int  `json:"address"`
	Page      int  `json:"page"`
	Offset    int  `json:"offset"`
	Frame     int  `json:"frame"`
	Physical  int  `json:"physical"`
	Value     int  `json:"value"`
	TLBHit    bool `json:"tlb_hit"`
	PageFault bool `json:"page_fault"`
}

type faultEntry struct {
	Seq         int  `json:"seq"`
	Page        int  `json:"page"`
	Frame       int  `json:"frame"`
	Evicted     bool `json:"evicted"`
	EvictedPage int  `json:"evicted_page"`
}

// pageRsp wraps one page of query results with the total number of rows
// that match, so the dashboard can render pagination controls.
type pageRsp struct {
	Total   int   `json:"total"`
	Entries []any `json:"entries"`
}

func httpTranslations(w http.ResponseWriter, r *http.Request) {
	params := paramsFromRequest(r)

	if pageStr := r.FormValue("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		dieOnErr(err)

		params.Where = "Page = ?"
		params.Args = []any{page}
	}

	serveTablePage(w, r, "translations", params)
}

func httpFaults(w http.ResponseWriter, r *http.Request) {
	serveTablePage(w, r, "page_faults", paramsFromRequest(r))
}

func paramsFromRequest(r *http.Request) datarecording.QueryParams {
	params := datarecording.QueryParams{
		Limit:   defaultPageSize,
		OrderBy: "Seq",
	}

	if limitStr := r.FormValue("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		dieOnErr(err)

		params.Limit = limit
	}

	if offsetStr := r.FormValue("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		dieOnErr(err)

		params.Offset = offset
	}

	return params
}

func serveTablePage(
	w http.ResponseWriter,
	r *http.Request,
	table string,
	params datarecording.QueryParams,
) {
	entries, total, err := reader.Query(r.Context(), table, params)
	dieOnErr(err)

	if entries == nil {
		entries = []any{}
	}

	rsp, err := json.Marshal(pageRsp{Total: total, Entries: entries})
	dieOnErr(err)

	_, err = w.Write(rsp)
	dieOnErr(err)
}

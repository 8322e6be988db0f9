// Command viewer serves a dashboard over a recorded run database.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"

	"github.com/pkg/browser"

	"github.com/sarchlab/memsim/datarecording"
	"github.com/sarchlab/memsim/viewer/static"
)

var (
	httpFlag = flag.String("http",
		"0.0.0.0:3001",
		"HTTP service address (e.g., ':6060')")
	sqliteFileName = flag.String("sqlite",
		"",
		"Name of the SQLite file to read from.")
	openFlag = flag.Bool("open",
		false,
		"Open the dashboard in the default browser.")

	reader datarecording.DataReader
	fs     http.FileSystem
)

func main() {
	parseArgs()

	fs = static.GetAssets()

	startServer()
}

func parseArgs() {
	flag.Parse()
}

func startServer() {
	connectToDB()
	startAPIServer()
}

func connectToDB() {
	if *sqliteFileName == "" {
		panic("Must specify a SQLite file")
	}

	r := datarecording.NewSQLiteReader(*sqliteFileName)
	r.Init()
	r.MapTable("run_info", runInfoEntry{})
	r.MapTable("translations", translationEntry{})
	r.MapTable("page_faults", faultEntry{})

	reader = r
}

func startAPIServer() {
	http.Handle("/", http.FileServer(fs))
	http.HandleFunc("/dashboard", serveIndex)

	http.HandleFunc("/api/runs", httpRuns)
	http.HandleFunc("/api/translations", httpTranslations)
	http.HandleFunc("/api/faults", httpFaults)

	fmt.Printf("Listening %s\n", *httpFlag)

	if *openFlag {
		go openDashboard()
	}

	err := http.ListenAndServe(*httpFlag, nil)
	dieOnErr(err)
}

// openDashboard opens the dashboard in the default browser. The browser
// retries while the listener comes up, so no synchronization is needed.
func openDashboard() {
	host, port, err := net.SplitHostPort(*httpFlag)
	if err != nil {
		log.Printf("cannot derive dashboard URL from %s: %v", *httpFlag, err)
		return
	}

	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}

	err = browser.OpenURL(fmt.Sprintf("http://%s:%s", host, port))
	if err != nil {
		log.Printf("cannot open browser: %v", err)
	}
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	var err error
	f, err := fs.Open("index.html")
	dieOnErr(err)

	p, err := io.ReadAll(f)
	dieOnErr(err)

	_, err = w.Write(p)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}

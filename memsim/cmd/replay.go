package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/memsim/backingstore"
	"github.com/sarchlab/memsim/datarecording"
	"github.com/sarchlab/memsim/monitoring"
	"github.com/sarchlab/memsim/replacement"
	"github.com/sarchlab/memsim/replay"
	"github.com/sarchlab/memsim/trace"
	"github.com/sarchlab/memsim/tracing"
	"github.com/sarchlab/memsim/translator"
	"github.com/sarchlab/memsim/vm"
)

// envDefaults maps environment variables to the flags they provide defaults
// for. A flag given on the command line always wins over the environment.
var envDefaults = map[string]string{
	"MEMSIM_BACKING_STORE": "backing-store",
	"MEMSIM_FRAMES":        "frames",
	"MEMSIM_POLICY":        "policy",
}

// runConfig is a fully validated replay configuration.
type runConfig struct {
	tracePath   string
	storePath   string
	frames      int
	tlbEntries  int
	policy      replacement.Policy
	quiet       bool
	record      bool
	recordCSV   string
	monitor     bool
	monitorPort int
}

func init() {
	addReplayFlags(rootCmd)
}

func addReplayFlags(c *cobra.Command) {
	c.Flags().IntP("frames", "f", vm.NumPages,
		"number of physical frames, 1 to 256")
	c.Flags().StringP("policy", "p", "FIFO",
		"page replacement policy, one of FIFO, LRU, and OPT")
	c.Flags().String("backing-store", "BACKING_STORE.bin",
		"backing store image that serves faulted pages")
	c.Flags().Int("tlb-entries", 16,
		"number of entries in the TLB")
	c.Flags().Bool("quiet", false,
		"suppress the per-address trace lines")
	c.Flags().Bool("record", false,
		"record the run to a SQLite database")
	c.Flags().String("record-csv", "",
		"record the run to the named CSV file")
	c.Flags().Bool("monitor", false,
		"serve a live monitor over HTTP while the replay runs")
	c.Flags().Int("monitor-port", 0,
		"port for the monitor server, random when unset")
	c.Flags().String("env-file", "",
		"env file that provides MEMSIM_* defaults, ./.env when present")
}

func runReplay(cmd *cobra.Command, args []string) {
	cfg, err := configFromCommand(cmd, args)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	tr, err := trace.Load(cfg.tracePath)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	store, err := backingstore.OpenFileStore(cfg.storePath)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	t := translator.MakeBuilder().
		WithFrames(cfg.frames).
		WithTLBCapacity(cfg.tlbEntries).
		WithBackingStore(store).
		WithVictimFinder(
			replacement.NewVictimFinder(cfg.policy, tr.FutureReferences())).
		Build("Translator")

	if !cfg.quiet {
		tracing.CollectTrace(t, tracing.NewConsoleTracer(os.Stdout))
	}

	if cfg.recordCSV != "" {
		csvTracer := tracing.NewCSVTracer(cfg.recordCSV)
		csvTracer.Init()
		tracing.CollectTrace(t, csvTracer)
	}

	runRecorder := setupRecording(cfg, t)

	driver := replay.NewDriver(t, tr)
	if cfg.monitor {
		startMonitor(cfg, t, driver)
	}

	stats, runErr := driver.Run()

	tracing.NewStatsReporter(os.Stdout).Report(stats)

	if runRecorder != nil {
		recordStats(runRecorder, stats)
		runRecorder.End()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

// configFromCommand resolves flags, environment defaults, and built-in
// defaults into a runConfig. It returns an error before any translation
// work starts, so a bad configuration never produces partial output.
func configFromCommand(cmd *cobra.Command, args []string) (runConfig, error) {
	err := loadEnvFile(cmd)
	if err != nil {
		return runConfig{}, err
	}

	err = applyEnvDefaults(cmd)
	if err != nil {
		return runConfig{}, err
	}

	cfg := runConfig{tracePath: args[0]}

	cfg.frames, _ = cmd.Flags().GetInt("frames")
	if cfg.frames < 1 || cfg.frames > vm.NumPages {
		return runConfig{}, fmt.Errorf(
			"frames must be between 1 and %d, got %d", vm.NumPages, cfg.frames)
	}

	cfg.tlbEntries, _ = cmd.Flags().GetInt("tlb-entries")
	if cfg.tlbEntries < 1 {
		return runConfig{}, fmt.Errorf(
			"tlb-entries must be at least 1, got %d", cfg.tlbEntries)
	}

	policyName, _ := cmd.Flags().GetString("policy")
	cfg.policy, err = replacement.ParsePolicy(policyName)
	if err != nil {
		return runConfig{}, err
	}

	cfg.storePath, _ = cmd.Flags().GetString("backing-store")
	cfg.quiet, _ = cmd.Flags().GetBool("quiet")
	cfg.record, _ = cmd.Flags().GetBool("record")
	cfg.recordCSV, _ = cmd.Flags().GetString("record-csv")
	cfg.monitor, _ = cmd.Flags().GetBool("monitor")
	cfg.monitorPort, _ = cmd.Flags().GetInt("monitor-port")

	return cfg, nil
}

// loadEnvFile loads the env file named by --env-file. Without the flag, a
// ./.env file is loaded when it exists and its absence is not an error.
func loadEnvFile(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("env-file")
	if path != "" {
		return godotenv.Load(path)
	}

	_, err := os.Stat(".env")
	if err == nil {
		return godotenv.Load()
	}

	return nil
}

func applyEnvDefaults(cmd *cobra.Command) error {
	for env, flag := range envDefaults {
		value, ok := os.LookupEnv(env)
		if !ok || cmd.Flags().Changed(flag) {
			continue
		}

		err := cmd.Flags().Set(flag, value)
		if err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}

	return nil
}

// setupRecording prepares the SQLite run database when recording is
// requested. The returned recorder is nil when it is not.
func setupRecording(
	cfg runConfig,
	t *translator.Comp,
) *datarecording.RunRecorder {
	if !cfg.record {
		return nil
	}

	writer := datarecording.NewSQLiteWriter("")
	writer.Init()

	tracing.CollectTrace(t, tracing.NewDBTracer(writer))

	recorder := datarecording.NewRunRecorder(writer)
	recorder.Start()
	recorder.Record("Trace", cfg.tracePath)
	recorder.Record("Backing Store", cfg.storePath)
	recorder.Record("Policy", string(cfg.policy))
	recorder.Record("Frames", strconv.Itoa(cfg.frames))
	recorder.Record("TLB Entries", strconv.Itoa(cfg.tlbEntries))

	return recorder
}

func recordStats(r *datarecording.RunRecorder, stats translator.Stats) {
	r.Record("Accesses", strconv.FormatUint(stats.Accesses, 10))
	r.Record("Page Faults", strconv.FormatUint(stats.PageFaults, 10))
	r.Record("TLB Hits", strconv.FormatUint(stats.TLBHits, 10))
	r.Record("TLB Misses", strconv.FormatUint(stats.TLBMisses, 10))
}

func startMonitor(cfg runConfig, t *translator.Comp, d *replay.Driver) {
	m := monitoring.NewMonitor()
	if cfg.monitorPort > 0 {
		m.WithPortNumber(cfg.monitorPort)
	}

	m.RegisterTranslator(t)
	d.WithMonitor(m)
	m.StartServer()
}

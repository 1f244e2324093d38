// LineQualityTester plotter entrypoint.
//
// Reads each configured echo log (<dir>/<name>.log) and renders a dual-axis latency/loss chart
// to <dir>/<name>.png. Logs are processed one at a time; the first failure aborts the run.
//
// Without flags it plots LineDirectGZ, LineDirectHK, LineDirectSeoul, LineDirectUS and
// LineDirectFrance from the current directory.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/YicongCao/LineQualityTester/src/analysis"
	"github.com/YicongCao/LineQualityTester/src/config"
	"github.com/YicongCao/LineQualityTester/src/monitor"
	"github.com/YicongCao/LineQualityTester/src/render"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML config overriding the built-in log list and chart settings")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	dir := flag.String("dir", ".", "Directory holding <name>.log files; charts are written next to them")
	sortByTime := flag.Bool("sort", false, "Sort samples by time of day before plotting (default keeps file order)")
	annotate := flag.Bool("annotate", false, "Draw a summary footer onto each chart")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	// Explicit flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = *logLevel
		case "dir":
			cfg.Dir = *dir
		case "sort":
			cfg.SortByTime = *sortByTime
		case "annotate":
			cfg.Annotate = *annotate
		}
	})
	monitor.SetLogLevel(cfg.LogLevel)

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run plots every configured log in order and stops at the first error.
func run(cfg *config.Config) error {
	opts := render.Options{
		Dir:        cfg.Dir,
		Width:      cfg.Width,
		Height:     cfg.Height,
		LatencyMax: cfg.LatencyMax,
		LossMax:    cfg.LossMax,
		Annotate:   cfg.Annotate,
	}
	for _, name := range cfg.Logs {
		if err := plotOne(name, cfg.SortByTime, opts); err != nil {
			return err
		}
	}
	monitor.Infof("[plot] done: %d chart(s) in %s", len(cfg.Logs), cfg.Dir)
	return nil
}

func plotOne(name string, sortByTime bool, opts render.Options) error {
	defer monitor.TimeTrack(time.Now(), "plot "+name)
	logPath := filepath.Join(opts.Dir, name+".log")
	tbl, err := analysis.LoadTable(logPath)
	if err != nil {
		return err
	}
	if !tbl.IsChronological() {
		if sortByTime {
			monitor.Debugf("[%s] sorting samples by time of day", name)
			tbl = tbl.SortByTime()
		} else {
			monitor.Warnf("[%s] samples are not in time order; the chart will backtrack (use -sort)", name)
		}
	}
	if err := render.RenderChartWithOptions(tbl, name, opts); err != nil {
		return err
	}
	monitor.Infof("%s -> %s", analysis.Summarize(tbl), render.OutputPath(opts.Dir, name))
	return nil
}

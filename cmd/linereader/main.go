// linereader loads echo logs and prints one summary line per log without rendering charts.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/YicongCao/LineQualityTester/src/analysis"
	"github.com/YicongCao/LineQualityTester/src/config"
)

func main() {
	var dir, logs string
	flag.StringVar(&dir, "dir", ".", "Directory holding <name>.log files")
	flag.StringVar(&logs, "logs", strings.Join(config.DefaultLogs, ","), "Comma-separated log base names")
	flag.Parse()
	if err := summarize(os.Stdout, dir, splitNames(logs)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func splitNames(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func summarize(w io.Writer, dir string, names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("no logs given")
	}
	for _, name := range names {
		tbl, err := analysis.LoadTable(filepath.Join(dir, name+".log"))
		if err != nil {
			return err
		}
		fmt.Fprintln(w, analysis.Summarize(tbl))
	}
	return nil
}

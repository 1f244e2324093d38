// Package analysis loads LineQualityTester echo logs into a LogTable and summarizes them.
//
// A log is comma-delimited text with one header line (ignored) and one sample per row:
//
//	log_type, date_time, speed, latency, loss_percent, lost_count, sent_count, bandwidth
//	日志, 2019-05-04 12:14:44, 123pps, 42.5ms, 1.50%, 3lost, 200sent, 1.23Mbps
//
// Only latency and loss_percent are converted; the remaining columns pass through as text.
package analysis

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Columns are the fixed column names assigned regardless of the file's own header text.
var Columns = [8]string{"log_type", "date_time", "speed", "latency", "loss_percent", "lost_count", "sent_count", "bandwidth"}

const (
	colLogType = iota
	colDateTime
	colSpeed
	colLatency
	colLossPercent
	colLostCount
	colSentCount
	colBandwidth
)

// Record is one sample row.
type Record struct {
	LogType       string    `json:"log_type"`
	DateTime      time.Time `json:"date_time"`
	DateTimeText  string    `json:"date_time_text"`
	DateTimeFloat float64   `json:"date_time_float"` // fractional hour of day
	Speed         string    `json:"speed"`
	Latency       float64   `json:"latency_ms"`
	LossPercent   float64   `json:"loss_percent"`
	LostCount     string    `json:"lost_count"`
	SentCount     string    `json:"sent_count"`
	Bandwidth     string    `json:"bandwidth"`
}

// LogTable holds the records of one log in file order. Name is the log's base name.
type LogTable struct {
	Name    string
	Records []Record
}

// Len returns the number of records.
func (t *LogTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Hours returns DateTimeFloat per record in table order.
func (t *LogTable) Hours() []float64 {
	return t.column(func(r Record) float64 { return r.DateTimeFloat })
}

// Latencies returns latency (ms) per record in table order.
func (t *LogTable) Latencies() []float64 {
	return t.column(func(r Record) float64 { return r.Latency })
}

// LossPercents returns loss percent per record in table order.
func (t *LogTable) LossPercents() []float64 {
	return t.column(func(r Record) float64 { return r.LossPercent })
}

func (t *LogTable) column(sel func(Record) float64) []float64 {
	out := make([]float64, t.Len())
	for i := range out {
		out[i] = sel(t.Records[i])
	}
	return out
}

// IsChronological reports whether DateTimeFloat never decreases. Charts of a table that is
// not chronological show backtracking lines.
func (t *LogTable) IsChronological() bool {
	for i := 1; i < t.Len(); i++ {
		if t.Records[i].DateTimeFloat < t.Records[i-1].DateTimeFloat {
			return false
		}
	}
	return true
}

// SortByTime returns a copy of the table stably sorted by DateTimeFloat. The receiver is not modified.
func (t *LogTable) SortByTime() *LogTable {
	out := &LogTable{Name: t.Name, Records: append([]Record(nil), t.Records...)}
	sort.SliceStable(out.Records, func(i, j int) bool {
		return out.Records[i].DateTimeFloat < out.Records[j].DateTimeFloat
	})
	return out
}

// LoadTable reads one log file. The table is named after the file without its extension.
// Missing or unreadable files yield *IOError; malformed content yields *ParseError and no table.
func LoadTable(filename string) (*LogTable, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, &IOError{Op: "open", Path: filename, Err: err}
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	t, err := LoadTableFrom(name, f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.File = filename
			return nil, pe
		}
		var ioe *IOError
		if errors.As(err, &ioe) {
			ioe.Path = filename
		}
		return nil, err
	}
	return t, nil
}

// LoadTableFrom parses log content from r. The first non-empty line is the header and is discarded.
func LoadTableFrom(name string, r io.Reader) (*LogTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	t := &LogTable{Name: name}
	header := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{File: name, Line: csvErr.Line, Err: csvErr.Err}
			}
			return nil, &IOError{Op: "read", Path: name, Err: err}
		}
		if header {
			header = false
			continue
		}
		line, _ := cr.FieldPos(0)
		rec, err := parseRow(row)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.File = name
				pe.Line = line
				return nil, pe
			}
			return nil, err
		}
		t.Records = append(t.Records, rec)
	}
	if header {
		return nil, &ParseError{File: name, Err: ErrMissingHeader}
	}
	return t, nil
}

func parseRow(row []string) (Record, error) {
	if len(row) < len(Columns) {
		return Record{}, &ParseError{Text: strings.Join(row, ","), Err: ErrShortRow}
	}
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}
	rec := Record{
		LogType:      row[colLogType],
		DateTimeText: row[colDateTime],
		Speed:        row[colSpeed],
		LostCount:    row[colLostCount],
		SentCount:    row[colSentCount],
		Bandwidth:    row[colBandwidth],
	}
	var err error
	if rec.Latency, err = ParseQuantity(row[colLatency], "ms"); err != nil {
		return Record{}, withColumn(err, colLatency)
	}
	if rec.LossPercent, err = ParseQuantity(row[colLossPercent], "%"); err != nil {
		return Record{}, withColumn(err, colLossPercent)
	}
	if rec.DateTimeFloat, err = TimeToFloat(row[colDateTime]); err != nil {
		return Record{}, withColumn(err, colDateTime)
	}
	if rec.DateTime, err = ParseTimestamp(row[colDateTime]); err != nil {
		return Record{}, withColumn(err, colDateTime)
	}
	return rec, nil
}

func withColumn(err error, col int) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Column = Columns[col]
	}
	return err
}

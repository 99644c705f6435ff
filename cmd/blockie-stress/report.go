package main

import (
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/blockie/internal/metrics"
)

// Report collects the results of one stress run.
type Report struct {
	// Configuration
	Duration time.Duration
	Width    int
	Height   int
	Bounds   string
	Seed     uint64

	// Results
	TotalShots    int64
	Games         int64
	PeakRegions   int
	TotalTime     time.Duration
	ShotTime      Stats
	LargestTime   Stats
	Systems       []SystemLine
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats

	// Metrics is read back from the meter provider after the run.
	MetricsEnabled bool
	Metrics        metrics.Totals
}

// SystemLine is one row of the per-system timing table.
type SystemLine struct {
	Name  string
	Count int64
	Avg   time.Duration
	Max   time.Duration
}

// Stats summarises a set of duration samples.
type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

// Finalize computes the summary fields from Samples.
func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, sample := range sorted {
		total += sample
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Avg = total / time.Duration(len(sorted))
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

const reportTemplate = `
# Blockie Stress Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Grid:** {{.Width}}x{{.Height}} ({{.Bounds}})
- **Seed:** {{.Seed}}

## Results
- **Total Shots:** {{.TotalShots}}
- **Games Played:** {{.Games}}
- **Peak Regions:** {{.PeakRegions}}
- **Total Test Time:** {{.TotalTime}}
- **PlaceShot:**
  - **Avg:** {{.ShotTime.Avg}}
  - **Min:** {{.ShotTime.Min}}
  - **Max:** {{.ShotTime.Max}}
  - **P99:** {{.ShotTime.P99}}
- **LargestRegion:**
  - **Avg:** {{.LargestTime.Avg}}
  - **Max:** {{.LargestTime.Max}}

## Metrics
{{if .MetricsEnabled}}- **Shots Accepted:** {{.Metrics.Accepted}}
- **Shots Rejected:** {{.Metrics.Rejected}}
- **Regions Split:** {{.Metrics.Splits}}
- **Regions at End:** {{.Metrics.Regions}}
{{else}}- disabled
{{end}}
## Systems
{{range .Systems}}- {{.Name}}: {{.Count}} runs, avg {{.Avg}}, max {{.Max}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

// Generate writes the report as markdown.
func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}

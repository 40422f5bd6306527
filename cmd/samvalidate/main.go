// cmd/samvalidate/main.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// samvalidate loads every scenery pack under an X-Plane installation's
// Custom Scenery directory, reports parse errors, and (optionally) writes
// an HTML summary of what it found: pack count, jetway/stand counts per
// airport, and library-jetway templates with no instance referencing
// them.
package main

import (
	"flag"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/samkit/scenerymgr/log"
	"github.com/samkit/scenerymgr/scenery"
)

var (
	xpDir     = flag.String("xp", "", "path to the X-Plane installation to validate")
	logLevel  = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	htmlOut   = flag.String("html", "", "write an HTML validation report to this path")
	openHTML  = flag.Bool("open", false, "open the HTML report in the default browser once written")
	sysReport = flag.Bool("sysinfo", false, "print host CPU/memory stats alongside the report (useful when filing a slow-load bug)")
)

func main() {
	flag.Parse()
	if *xpDir == "" {
		fmt.Fprintln(os.Stderr, "samvalidate: -xp is required")
		os.Exit(1)
	}

	lg := log.New(*logLevel, "", 0)

	if *sysReport {
		printSysInfo()
	}

	reg, err := scenery.Load(*xpDir, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "samvalidate: %v\n", err)
		os.Exit(1)
	}

	report := buildReport(reg)
	printReport(report)

	if *htmlOut != "" {
		if err := writeHTMLReport(*htmlOut, report); err != nil {
			fmt.Fprintf(os.Stderr, "samvalidate: writing HTML report: %v\n", err)
			os.Exit(1)
		}
		if *openHTML {
			if err := browser.OpenFile(*htmlOut); err != nil {
				fmt.Fprintf(os.Stderr, "samvalidate: opening report: %v\n", err)
			}
		}
	}
}

type airportSummary struct {
	ICAO     string
	Jetways  int
	Stands   int
	Aligned  int // jetways carrying a manifest name
}

type validationReport struct {
	GeneratedAt  time.Time
	PackCount    int
	Airports     []airportSummary
	LibTemplates int
	UnusedLibs   []int
}

func buildReport(reg *scenery.Registry) validationReport {
	r := validationReport{
		GeneratedAt:  time.Now(),
		PackCount:    len(reg.Sceneries),
		LibTemplates: len(reg.LibJws),
	}

	used := make(map[int]bool)
	for _, sc := range reg.Sceneries {
		as := airportSummary{ICAO: sc.ICAO, Stands: len(sc.Stands)}
		for _, jw := range sc.Jetways {
			as.Jetways++
			if jw.LibraryID != 0 {
				used[jw.LibraryID] = true
			}
			if jw.Name != "" {
				as.Aligned++
			}
		}
		r.Airports = append(r.Airports, as)
	}
	sort.Slice(r.Airports, func(i, j int) bool { return r.Airports[i].ICAO < r.Airports[j].ICAO })

	for id := range reg.LibJws {
		if !used[id] {
			r.UnusedLibs = append(r.UnusedLibs, id)
		}
	}
	sort.Ints(r.UnusedLibs)

	return r
}

func printReport(r validationReport) {
	fmt.Printf("loaded %d scenery pack(s), %d library jetway template(s)\n", r.PackCount, r.LibTemplates)
	for _, a := range r.Airports {
		fmt.Printf("  %-5s  jetways=%-3d stands=%-3d named=%-3d\n", a.ICAO, a.Jetways, a.Stands, a.Aligned)
	}
	if len(r.UnusedLibs) > 0 {
		fmt.Printf("%d library jetway template(s) never referenced by an instance: %v\n", len(r.UnusedLibs), r.UnusedLibs)
	}
}

const reportTemplate = `<!DOCTYPE html>
<html><head><title>samvalidate report</title></head>
<body>
<h1>samvalidate report</h1>
<p>generated {{.GeneratedAt}}</p>
<p>{{.PackCount}} scenery pack(s), {{.LibTemplates}} library jetway template(s)</p>
<table border="1" cellpadding="4">
<tr><th>ICAO</th><th>Jetways</th><th>Stands</th><th>Named</th></tr>
{{range .Airports}}<tr><td>{{.ICAO}}</td><td>{{.Jetways}}</td><td>{{.Stands}}</td><td>{{.Aligned}}</td></tr>
{{end}}
</table>
{{if .UnusedLibs}}<p>unused library templates: {{.UnusedLibs}}</p>{{end}}
</body></html>
`

func writeHTMLReport(path string, r validationReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	t, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.Execute(f, r)
}

// printSysInfo reports the host's CPU and memory state, the same way a
// developer profiling a slow scenery load would attach to a bug report.
func printSysInfo() {
	pct, err := cpu.Percent(200*time.Millisecond, false)
	if err != nil {
		slog.Warn("cpu.Percent failed", "err", err)
	} else if len(pct) > 0 {
		fmt.Printf("cpu: %.1f%% busy\n", pct[0])
	}
	if vm, err := mem.VirtualMemory(); err != nil {
		slog.Warn("mem.VirtualMemory failed", "err", err)
	} else {
		fmt.Printf("mem: %.1f%% used (%d MB of %d MB)\n", vm.UsedPercent, vm.Used/1024/1024, vm.Total/1024/1024)
	}
}

// Package report renders batch progress, summaries, statistics and dry-run
// tables for the operator.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"codeberg.org/snonux/zhuyinaudio/internal/generator"
	"codeberg.org/snonux/zhuyinaudio/internal/plan"
	"codeberg.org/snonux/zhuyinaudio/internal/pronounce"
	"codeberg.org/snonux/zhuyinaudio/internal/stats"
)

// Printer writes human readable output.
type Printer struct {
	w     io.Writer
	total int
	done  int
}

// NewPrinter creates a printer writing to w, or stdout when w is nil.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w}
}

// Start announces a batch of total tasks and resets the progress counter.
func (p *Printer) Start(title string, total int) {
	p.total = total
	p.done = 0
	Title.Fprintf(p.w, "%s (%d tasks)\n", title, total)
}

// Result prints one task result. It is meant as generator.Executor.OnResult.
func (p *Printer) Result(r generator.Result) {
	p.done++
	prefix := fmt.Sprintf("[%d/%d]", p.done, p.total)

	switch r.Outcome {
	case generator.Generated:
		Success.Fprintf(p.w, "%s generated %s (%s)\n", prefix, r.Task.TargetPath, humanize.Bytes(uint64(r.Bytes)))
	case generator.Cached:
		Muted.Fprintf(p.w, "%s exists    %s\n", prefix, r.Task.TargetPath)
	case generator.Failed:
		Error.Fprintf(p.w, "%s failed    %s: %s\n", prefix, r.Task.TargetPath, r.Reason())
	}
}

// Summary prints the outcome counts of a batch. Interrupted batches also
// report how many tasks never ran.
func (p *Printer) Summary(c generator.Counts, interrupted bool) {
	fmt.Fprintln(p.w)
	if interrupted {
		Warning.Fprintln(p.w, "Interrupted.")
	}
	Title.Fprintln(p.w, "Summary:")
	Success.Fprintf(p.w, "  Generated: %d\n", c.Generated)
	Info.Fprintf(p.w, "  Cached:    %d\n", c.Cached)
	if c.Failed > 0 {
		Error.Fprintf(p.w, "  Failed:    %d\n", c.Failed)
	} else {
		fmt.Fprintf(p.w, "  Failed:    %d\n", c.Failed)
	}
	if interrupted || c.Cancelled > 0 {
		Warning.Fprintf(p.w, "  Cancelled: %d\n", c.Cancelled)
	}
}

// Failures lists failed tasks with their reasons.
func (p *Printer) Failures(failed []generator.Result) {
	if len(failed) == 0 {
		return
	}
	Error.Fprintln(p.w, "\nFailed tasks:")
	for _, r := range failed {
		fmt.Fprintf(p.w, "  %s: %s\n", r.Task.TargetPath, r.Reason())
	}
}

// Stats prints per-directory artifact counts and sizes.
func (p *Printer) Stats(report stats.Report) {
	Title.Fprintf(p.w, "\nAudio files in %s:\n", report.Root)
	if len(report.Dirs) == 0 {
		fmt.Fprintln(p.w, "  no audio files found")
		return
	}

	width := runewidth.StringWidth("total")
	for _, d := range report.Dirs {
		if w := runewidth.StringWidth(d.Dir); w > width {
			width = w
		}
	}

	for _, d := range report.Dirs {
		fmt.Fprintf(p.w, "  %s  %5d files  %10s\n", pad(d.Dir, width), d.Files, humanize.Bytes(uint64(d.Bytes)))
	}
	Info.Fprintf(p.w, "  %s  %5d files  %10s\n", pad("total", width), report.TotalFiles(), humanize.Bytes(uint64(report.TotalBytes())))
}

// Decisions prints how each consonant and vowel is pronounced under policy.
func (p *Printer) Decisions(policy pronounce.VowelPolicy, decisions []pronounce.Decision) {
	Title.Fprintf(p.w, "Pronunciation (policy %s):\n", policy.Name)

	rows := make([][]string, 0, len(decisions))
	for _, d := range decisions {
		note := ""
		if d.Overridden {
			note = "override"
		}
		rows = append(rows, []string{d.Unit.Kind.String(), d.Unit.Symbol, d.Unit.Romanization, d.Text, note})
	}
	p.table([]string{"kind", "symbol", "pinyin", "spoken", ""}, rows)
}

// Tasks prints planned tasks, marking those whose artifact already exists.
func (p *Printer) Tasks(tasks []plan.Task, exists func(plan.Task) bool) {
	Title.Fprintf(p.w, "\nPlanned tasks (%d):\n", len(tasks))

	rows := make([][]string, 0, len(tasks))
	pending := 0
	for _, t := range tasks {
		state := "new"
		if exists != nil && exists(t) {
			state = "exists"
		} else {
			pending++
		}
		rows = append(rows, []string{state, string(t.Category), t.Text, t.TargetPath})
	}
	p.table([]string{"state", "category", "text", "path"}, rows)
	Info.Fprintf(p.w, "%d of %d tasks would call the synthesis service\n", pending, len(tasks))
}

// Policies lists the registered vowel policies.
func (p *Printer) Policies(names []string, current string) {
	Title.Fprintln(p.w, "Vowel policies:")
	for _, name := range names {
		policy, err := pronounce.Lookup(name)
		if err != nil {
			continue
		}
		marker := " "
		if name == current {
			marker = "*"
		}
		fmt.Fprintf(p.w, "%s %-10s %s\n", marker, name, policy.Description)
	}
}

// Voices lists voice or model names of a provider.
func (p *Printer) Voices(provider string, voices []string) {
	Title.Fprintf(p.w, "Voices for %s:\n", provider)
	if len(voices) == 0 {
		fmt.Fprintln(p.w, "  none found")
		return
	}
	for _, v := range voices {
		fmt.Fprintf(p.w, "  %s\n", v)
	}
}

// Infof prints an informational line.
func (p *Printer) Infof(format string, args ...interface{}) {
	Info.Fprintf(p.w, format+"\n", args...)
}

// Warnf prints a warning line.
func (p *Printer) Warnf(format string, args ...interface{}) {
	Warning.Fprintf(p.w, format+"\n", args...)
}

// Errorf prints an error line.
func (p *Printer) Errorf(format string, args ...interface{}) {
	Error.Fprintf(p.w, format+"\n", args...)
}

// table prints rows in columns aligned by display width, so CJK glyphs
// take two cells.
func (p *Printer) table(header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = pad(cell, widths[i])
		}
		return "  " + strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	Muted.Fprintln(p.w, line(header))
	for _, row := range rows {
		fmt.Fprintln(p.w, line(row))
	}
}

func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"asset-cloner/feature/clone"
	"asset-cloner/feature/closure"
	"asset-cloner/feature/history"
	"asset-cloner/feature/publish"
	"asset-cloner/feature/records"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Faint(true).Width(20)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	missStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func line(w io.Writer, label string, value interface{}) {
	fmt.Fprintf(w, "  %s %v\n", labelStyle.Render(label), value)
}

func mark(ok bool) string {
	if ok {
		return okStyle.Render("found")
	}
	return missStyle.Render("missing")
}

func printReport(w io.Writer, r *clone.Report) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s %s -> %s", r.Kind, r.Source, r.NewName)))
	line(w, "run", r.RunID)
	line(w, "output", r.Output)
	line(w, "base archive", mark(r.BaseArchiveFound))
	line(w, "records", r.RecordsEmitted)
	line(w, "languages", strings.Join(r.Languages, ", "))
	line(w, "took", r.Duration.Round(time.Millisecond))

	if len(r.Tables) > 0 {
		fmt.Fprintln(w, titleStyle.Render("tables"))
		for _, t := range r.Tables {
			line(w, t.File, t.Records)
		}
	}
	if len(r.Archives) > 0 {
		fmt.Fprintln(w, titleStyle.Render("archives"))
		for _, a := range r.Archives {
			value := mark(a.Found)
			if a.Found {
				value = fmt.Sprintf("%s (%d entries, %s)", a.Archive, len(a.Entries), humanize.Bytes(uint64(a.Size)))
			}
			line(w, a.Source, value)
		}
	}
	printWarnings(w, r.Warnings)
}

func printWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("%d warnings", len(warnings))))
	for _, msg := range warnings {
		fmt.Fprintln(w, "  "+warnStyle.Render("!")+" "+msg)
	}
}

func printRecord(w io.Writer, rec *records.Record) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s %s", rec.Kind, rec.Name())))
	line(w, "source", rec.Source)
	for _, f := range rec.Fields() {
		line(w, f.Name, f.Value)
	}
}

func printClosure(w io.Writer, s closure.Summary) {
	fmt.Fprintln(w, titleStyle.Render("closure"))
	if s.Weapon != "" {
		line(w, "weapon", s.Weapon)
	}
	if s.Inventory != "" {
		inv := s.Inventory
		if s.InventoryFallback {
			inv += warnStyle.Render(" (fallback)")
		}
		line(w, "inventory", inv)
	}
	for _, it := range s.Items {
		value := it.Name
		if it.Mesh != "" {
			value += " " + lipgloss.NewStyle().Faint(true).Render(it.Mesh)
		}
		line(w, fmt.Sprintf("slot %d", it.Slot), value)
	}
	for _, name := range s.MissingProps {
		line(w, "missing prop", missStyle.Render(name))
	}
	if len(s.Upgrades) > 0 {
		line(w, "upgrades", strings.Join(s.Upgrades, ", "))
	}
	if len(s.StoreEntries) > 0 {
		line(w, "store entries", strings.Join(s.StoreEntries, ", "))
	}
	if s.MaterialLibrary != "" {
		line(w, "material library", s.MaterialLibrary)
	}
}

func printPublish(w io.Writer, res *publish.Result) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("published s3://%s/%s", res.Bucket, res.Prefix)))
	line(w, "uploaded", fmt.Sprintf("%d files, %s", len(res.Uploaded), humanize.Bytes(uint64(res.Bytes))))
	line(w, "unchanged", len(res.Skipped))
	line(w, "removed", len(res.Removed))
}

func printRuns(w io.Writer, runs []history.CloneRun) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "no clone runs recorded")
		return
	}
	for _, r := range runs {
		status := okStyle.Render(r.Status)
		if r.Status != history.StatusCompleted {
			status = missStyle.Render(r.Status)
		}
		fmt.Fprintf(w, "%s %-8s %-24s -> %-24s %s %s\n",
			lipgloss.NewStyle().Faint(true).Render(humanize.Time(r.CreatedAt)),
			r.Kind, r.Source, r.NewName, status, r.Reason)
	}
}

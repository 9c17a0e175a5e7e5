package clone

import (
	"time"

	"asset-cloner/feature/closure"
	"asset-cloner/feature/rename"
	"asset-cloner/feature/transcode"
)

// Request asks for one clone.
type Request struct {
	// Source is the name of the costume or skin to clone.
	Source string `json:"source"`
	// Name is the new base name.
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
	// Output is the output directory under the output root; it defaults to
	// Name. It is never read from request bodies.
	Output string `json:"-"`
}

// ArchiveReport describes one transcoded archive.
type ArchiveReport struct {
	Source  string                  `json:"source"`
	Archive string                  `json:"archive"`
	Group   string                  `json:"group"`
	Found   bool                    `json:"found"`
	Size    int                     `json:"size,omitempty"`
	Entries []transcode.EntryReport `json:"entries,omitempty"`
}

// TableReport describes one written table document.
type TableReport struct {
	File    string `json:"file"`
	Records int    `json:"records"`
}

// Report is the outcome of a clone run.
type Report struct {
	RunID   string `json:"run_id"`
	Kind    Kind   `json:"kind"`
	Source  string `json:"source"`
	NewName string `json:"new_name"`
	Output  string `json:"output"`
	Strict  bool   `json:"strict"`

	// BaseArchiveFound is false when the base mesh archive (or the skin's
	// material archive) does not exist; no records are emitted then.
	BaseArchiveFound bool            `json:"base_archive_found"`
	RecordsEmitted   int             `json:"records_emitted"`
	Tables           []TableReport   `json:"tables"`
	Archives         []ArchiveReport `json:"archives"`
	Languages        []string        `json:"languages"`
	Warnings         []string        `json:"warnings,omitempty"`
	Files            []string        `json:"files"`

	Closure *closure.Summary `json:"closure,omitempty"`
	Plan    *rename.Plan     `json:"plan,omitempty"`

	Duration time.Duration `json:"duration" swaggertype:"integer"`
}

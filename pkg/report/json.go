package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// FileError records a file that could not be processed.
type FileError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// ReviewItem records a call site left in place for manual review.
type ReviewItem struct {
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Message string `json:"message,omitempty"`
}

// Data represents the structure of the JSON report output.
// It maps directly to the required JSON schema for CI integration.
type Data struct {
	// FilesScanned is the number of Dart files read.
	FilesScanned int `json:"files_scanned"`
	// FilesWithLegacyCall is the number of files that mention the legacy call.
	FilesWithLegacyCall int `json:"files_with_legacy_call"`
	// FilesModified lists the unique paths of files that were migrated (or would be, in dry-run).
	FilesModified []string `json:"files_modified"`
	// FilesUnchanged is the number of candidate files left as they were.
	FilesUnchanged int `json:"files_unchanged"`
	// Errors lists files that failed to be read, parsed or written.
	Errors []FileError `json:"errors"`
	// CallsRewritten counts rewritten call sites by severity.
	CallsRewritten map[string]int `json:"calls_rewritten"`
	// CallsUntouched is the number of sites whose message could not be isolated.
	CallsUntouched int `json:"calls_untouched"`
	// NeedsReview lists sites no styling rule could classify.
	NeedsReview []ReviewItem `json:"needs_review"`
}

// Reporter collects statistics during the migration and generates structured output.
// It is safe for concurrent use.
type Reporter struct {
	mu      sync.Mutex
	data    Data
	fileSet map[string]struct{}
}

// New creates a new instance of Reporter with initialized maps.
func New() *Reporter {
	return &Reporter{
		fileSet: make(map[string]struct{}),
		data: Data{
			FilesModified:  []string{},
			Errors:         []FileError{},
			CallsRewritten: make(map[string]int),
			NeedsReview:    []ReviewItem{},
		},
	}
}

// AddFile records a file path as migrated.
// It creates a unique set of files, ignoring duplicates.
//
// path: The file path to record.
func (r *Reporter) AddFile(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fileSet[path]; !exists {
		r.fileSet[path] = struct{}{}
		r.data.FilesModified = append(r.data.FilesModified, path)
	}
}

// IncScanned counts a file that was read.
func (r *Reporter) IncScanned() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.FilesScanned++
}

// IncCandidate counts a file that contains the legacy call.
func (r *Reporter) IncCandidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.FilesWithLegacyCall++
}

// IncUnchanged counts a candidate file that needed no change.
func (r *Reporter) IncUnchanged() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.FilesUnchanged++
}

// AddError records a per-file failure.
//
// path: The file that failed.
// err: The failure.
func (r *Reporter) AddError(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.Errors = append(r.data.Errors, FileError{Path: path, Error: err.Error()})
}

// AddCall counts one rewritten call site of the given severity.
func (r *Reporter) AddCall(severity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.CallsRewritten[severity]++
}

// IncUntouched counts a site left as is because no message was found.
func (r *Reporter) IncUntouched() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.CallsUntouched++
}

// AddReview records a site that needs a human decision.
func (r *Reporter) AddReview(path string, line int, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.NeedsReview = append(r.data.NeedsReview, ReviewItem{Path: path, Line: line, Message: message})
}

// WriteJSON serializes the collected statistics to the provided writer in indented JSON format.
// Lists are sorted before writing to ensure deterministic output.
//
// w: The writer to output the JSON to.
func (r *Reporter) WriteJSON(w io.Writer) error {
	data := r.GetData()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteSummary prints the human readable summary block.
// Colours follow color.NoColor.
//
// w: The writer to print to.
func (r *Reporter) WriteSummary(w io.Writer) {
	d := r.GetData()
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	remaining := d.FilesWithLegacyCall - len(d.FilesModified)
	if remaining < 0 {
		remaining = 0
	}

	fmt.Fprintln(w, strings.Repeat("=", 50))
	bold.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  Files scanned: %d\n", d.FilesScanned)
	fmt.Fprintf(w, "  Files with legacy snack bars: %d\n", d.FilesWithLegacyCall)
	green.Fprintf(w, "  Files migrated: %d\n", len(d.FilesModified))
	if remaining > 0 {
		yellow.Fprintf(w, "  Files remaining: %d\n", remaining)
	} else {
		fmt.Fprintf(w, "  Files remaining: %d\n", remaining)
	}
	if len(d.Errors) > 0 {
		red.Fprintf(w, "  Errors: %d\n", len(d.Errors))
	} else {
		fmt.Fprintf(w, "  Errors: %d\n", len(d.Errors))
	}

	kinds := make([]string, 0, len(d.CallsRewritten))
	total := 0
	for k, n := range d.CallsRewritten {
		kinds = append(kinds, k)
		total += n
	}
	sort.Strings(kinds)
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s=%d", k, d.CallsRewritten[k]))
	}
	if len(parts) > 0 {
		fmt.Fprintf(w, "  Calls rewritten: %d (%s)\n", total, strings.Join(parts, ", "))
	} else {
		fmt.Fprintf(w, "  Calls rewritten: 0\n")
	}
	if d.CallsUntouched > 0 {
		yellow.Fprintf(w, "  Calls untouched: %d\n", d.CallsUntouched)
	}
	if len(d.NeedsReview) > 0 {
		yellow.Fprintf(w, "  Calls needing review: %d\n", len(d.NeedsReview))
		for _, item := range d.NeedsReview {
			fmt.Fprintf(w, "    %s:%d\n", item.Path, item.Line)
		}
	}
}

// GetData returns a copy of the internal data structure.
// This is primarily useful for testing or programmatic access aside from writing JSON.
func (r *Reporter) GetData() Data {
	r.mu.Lock()
	defer r.mu.Unlock()

	files := make([]string, len(r.data.FilesModified))
	copy(files, r.data.FilesModified)
	sort.Strings(files)

	errs := make([]FileError, len(r.data.Errors))
	copy(errs, r.data.Errors)
	sort.Slice(errs, func(i, j int) bool { return errs[i].Path < errs[j].Path })

	review := make([]ReviewItem, len(r.data.NeedsReview))
	copy(review, r.data.NeedsReview)
	sort.Slice(review, func(i, j int) bool {
		if review[i].Path != review[j].Path {
			return review[i].Path < review[j].Path
		}
		return review[i].Line < review[j].Line
	})

	calls := make(map[string]int, len(r.data.CallsRewritten))
	for k, v := range r.data.CallsRewritten {
		calls[k] = v
	}

	return Data{
		FilesScanned:        r.data.FilesScanned,
		FilesWithLegacyCall: r.data.FilesWithLegacyCall,
		FilesModified:       files,
		FilesUnchanged:      r.data.FilesUnchanged,
		Errors:              errs,
		CallsRewritten:      calls,
		CallsUntouched:      r.data.CallsUntouched,
		NeedsReview:         review,
	}
}

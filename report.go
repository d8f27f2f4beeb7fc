package exifmeta

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

type Op string

const (
	OpView    Op = "view"
	OpAdd     Op = "add"
	OpRemove  Op = "remove"
	OpReplace Op = "replace"
	OpVerify  Op = "verify"
)

// Result is the outcome of one unit of work: a file for view and verify, a
// (file, field) pair for the editing operations, or a rejected entry.
type Result struct {
	Op      Op
	Path    string
	Field   Field
	Key     string
	Entry   string
	Output  string
	Skipped bool
	Err     error
}

func (r Result) Failed() bool {
	return r.Err != nil
}

func (r Result) String() string {
	if r.Err != nil {
		if errors.Is(r.Err, ErrInvalidField) {
			return fmt.Sprintf("Invalid metadata format: %s. Use KEY=VALUE.", r.Entry)
		}
		switch r.Op {
		case OpView:
			return fmt.Sprintf("Error viewing metadata for %s: %v", r.Path, r.Err)
		case OpVerify:
			return fmt.Sprintf("Error verifying metadata for %s: %v", r.Path, r.Err)
		case OpAdd:
			return fmt.Sprintf("Error adding metadata to %s: %v", r.Path, r.Err)
		case OpRemove:
			return fmt.Sprintf("Error removing metadata from %s: %v", r.Path, r.Err)
		case OpReplace:
			return fmt.Sprintf("Error replacing metadata in %s: %v", r.Path, r.Err)
		}
		return fmt.Sprintf("Error processing %s: %v", r.Path, r.Err)
	}
	if r.Skipped {
		return fmt.Sprintf("Skipped %s: filter not matched", r.Path)
	}

	switch r.Op {
	case OpView:
		return dumpString("Metadata for "+r.Path+":", r.Output)
	case OpVerify:
		return dumpString("Verification of metadata for "+r.Path+":", r.Output)
	case OpAdd:
		return "Added metadata: " + r.Field.String()
	case OpRemove:
		return "Removed metadata: " + r.Key
	case OpReplace:
		return "Replaced metadata: " + r.Field.String()
	}
	return r.Path
}

// dumpString keeps the tool output byte for byte.
func dumpString(heading string, output string) string {
	return heading + "\n" + output
}

// Report collects results in order and prints each one as it arrives.
type Report struct {
	w       io.Writer
	Results []Result
}

func NewReport(w io.Writer) *Report {
	return &Report{w: w}
}

func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
	s := res.String()
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	io.WriteString(r.w, s)
}

func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Failed() {
			n++
		}
	}
	return n
}

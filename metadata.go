package exifmeta

import (
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Metadata holds the tags of one exiftool dump, keyed by tag name with the
// spaces removed ("File Name" becomes FileName).
type Metadata struct {
	Path string
	V    map[string]interface{}
}

// ParseDump reads the "Tag Name : value" lines exiftool prints by default.
// Numeric values are stored as float64, everything else as trimmed strings.
func ParseDump(path string, dump string) *Metadata {
	md := &Metadata{
		Path: path,
		V:    make(map[string]interface{}),
	}
	for _, line := range strings.Split(dump, "\n") {
		sep := strings.Index(line, ":")
		if sep <= 0 {
			continue
		}
		k := strings.Join(strings.Fields(line[:sep]), "")
		if k == "" {
			continue
		}
		s := strings.TrimSpace(line[sep+1:])
		if f64, err := strconv.ParseFloat(s, 64); err == nil {
			md.V[k] = f64
		} else {
			md.V[k] = s
		}
	}
	return md
}

// Eval evaluates expr with the tags as parameters. A malformed expression is
// an error; a failed evaluation (e.g. a tag the file does not carry) yields nil.
func (d *Metadata) Eval(expr string) (interface{}, error) {
	eval, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid filter [%s]", expr)
	}
	result, err := eval.Evaluate(d.V)
	if err != nil {
		log.WithFields(log.Fields{"path": d.Path, "expr": expr}).WithError(err).Debug("filter not evaluated")
		return nil, nil
	}
	return result, nil
}

// Filter reports whether expr holds for these tags. Non-empty strings and
// non-zero numbers count as true.
func (d *Metadata) Filter(expr string) (bool, error) {
	rs, err := d.Eval(expr)
	if err != nil {
		return false, err
	}
	switch v := rs.(type) {
	case bool:
		return v, nil
	case string:
		return len(v) > 0, nil
	case float64:
		return v != 0, nil
	}
	return false, nil
}

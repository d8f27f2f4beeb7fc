package exifmeta

import (
	"context"
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Dispatcher runs each operation as a sequence of exiftool invocations, one
// per file for dumps and one per (file, field) for edits. Results are printed
// to w as they happen.
type Dispatcher struct {
	runner Runner
	w      io.Writer
	filter string
}

type DispatcherOption func(*Dispatcher)

// WithFilter restricts view and verify output to files whose dump satisfies expr.
func WithFilter(expr string) DispatcherOption {
	return func(d *Dispatcher) {
		d.filter = expr
	}
}

func NewDispatcher(runner Runner, w io.Writer, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{runner: runner, w: w}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) View(ctx context.Context, paths []string) *Report {
	return d.dump(ctx, OpView, paths)
}

func (d *Dispatcher) Verify(ctx context.Context, paths []string) *Report {
	return d.dump(ctx, OpVerify, paths)
}

func (d *Dispatcher) dump(ctx context.Context, op Op, paths []string) *Report {
	report := NewReport(d.w)
	for _, path := range paths {
		inv, err := d.runner.Run(ctx, path)
		if err != nil {
			report.Add(Result{Op: op, Path: path, Err: err})
			continue
		}
		if d.filter != "" {
			matched, err := ParseDump(path, inv.Stdout).Filter(d.filter)
			if err != nil {
				report.Add(Result{Op: op, Path: path, Err: err})
				continue
			}
			if !matched {
				report.Add(Result{Op: op, Path: path, Skipped: true})
				continue
			}
		}
		report.Add(Result{Op: op, Path: path, Output: inv.Stdout})
	}
	d.logSummary(op, paths, report)
	return report
}

// Add merges entries over defaults and applies every resulting field to every
// file. A malformed entry aborts before any file is touched.
func (d *Dispatcher) Add(ctx context.Context, paths []string, defaults Fields, entries []string) *Report {
	report := NewReport(d.w)
	fields, err := MergeFields(defaults, entries)
	if err != nil {
		var fe *FieldError
		entry := ""
		if errors.As(err, &fe) {
			entry = fe.Entry
		}
		report.Add(Result{Op: OpAdd, Entry: entry, Err: err})
		return report
	}
	log.WithField("keys", fields.Keys()).Debug("applying fields")

	for _, path := range paths {
		for _, field := range fields {
			if _, err := d.runner.Run(ctx, field.Arg(), path); err != nil {
				report.Add(Result{Op: OpAdd, Path: path, Field: field, Err: err})
				break
			}
			report.Add(Result{Op: OpAdd, Path: path, Field: field})
		}
	}
	d.logSummary(OpAdd, paths, report)
	return report
}

// Remove clears each key on each file by assigning it an empty value.
func (d *Dispatcher) Remove(ctx context.Context, paths []string, keys []string) *Report {
	report := NewReport(d.w)
	for _, path := range paths {
		for _, key := range keys {
			if _, err := d.runner.Run(ctx, "-"+key+"=", path); err != nil {
				report.Add(Result{Op: OpRemove, Path: path, Key: key, Err: err})
				break
			}
			report.Add(Result{Op: OpRemove, Path: path, Key: key})
		}
	}
	d.logSummary(OpRemove, paths, report)
	return report
}

// Replace overwrites each field on each file. Unlike Add, a malformed entry
// only skips that entry.
func (d *Dispatcher) Replace(ctx context.Context, paths []string, entries []string) *Report {
	report := NewReport(d.w)
	for _, path := range paths {
		for _, entry := range entries {
			field, err := ParseField(entry)
			if err != nil {
				report.Add(Result{Op: OpReplace, Path: path, Entry: entry, Err: err})
				continue
			}
			if _, err := d.runner.Run(ctx, field.Arg(), path); err != nil {
				report.Add(Result{Op: OpReplace, Path: path, Field: field, Err: err})
				break
			}
			report.Add(Result{Op: OpReplace, Path: path, Field: field})
		}
	}
	d.logSummary(OpReplace, paths, report)
	return report
}

func (d *Dispatcher) logSummary(op Op, paths []string, report *Report) {
	log.WithFields(log.Fields{
		"op":      op,
		"files":   len(paths),
		"results": len(report.Results),
		"errors":  report.Failed(),
	}).Info("finished")
}

package exifmeta

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const DefaultBinary = "exiftool"

// Invocation captures one exiftool run. ExitCode is recorded but never turned
// into an error.
type Invocation struct {
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes the external metadata tool with args and blocks until it exits.
type Runner interface {
	Run(ctx context.Context, args ...string) (Invocation, error)
}

type Exiftool struct {
	Binary   string
	InitArgs []string
}

// NewExiftool applies initFuncs in order to a runner using the exiftool found
// on PATH.
func NewExiftool(initFuncs ...func(*Exiftool) error) (*Exiftool, error) {
	et := &Exiftool{Binary: DefaultBinary}
	for _, initFunc := range initFuncs {
		if err := initFunc(et); err != nil {
			return nil, errors.Wrap(err, "[Exiftool] init")
		}
	}
	return et, nil
}

func (et *Exiftool) args(args []string) []string {
	return append(append([]string{}, et.InitArgs...), args...)
}

func (et *Exiftool) Run(ctx context.Context, args ...string) (Invocation, error) {
	inv := Invocation{Args: et.args(args)}
	log.WithFields(log.Fields{"binary": et.Binary, "args": inv.Args}).Debug("running exiftool")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, et.Binary, inv.Args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	inv.Stdout, inv.Stderr = stdout.String(), stderr.String()

	if ctx.Err() != nil {
		return inv, errors.Wrapf(ctx.Err(), "%s interrupted", et.Binary)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return inv, errors.Wrapf(err, "unable to run %s", et.Binary)
		}
		inv.ExitCode = exitErr.ExitCode()
	}
	if inv.ExitCode != 0 || inv.Stderr != "" {
		log.WithFields(log.Fields{
			"binary": et.Binary,
			"args":   inv.Args,
			"code":   inv.ExitCode,
			"stderr": strings.TrimSpace(inv.Stderr),
		}).Warn("exiftool reported a problem")
	}
	return inv, nil
}

// DryRunner prints each invocation instead of executing it.
type DryRunner struct {
	W        io.Writer
	Binary   string
	InitArgs []string
}

func (r *DryRunner) Run(_ context.Context, args ...string) (Invocation, error) {
	all := append(append([]string{}, r.InitArgs...), args...)
	binary := r.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	fmt.Fprintln(r.W, "+ "+strings.Join(append([]string{binary}, all...), " "))
	return Invocation{Args: all}, nil
}

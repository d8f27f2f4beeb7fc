package exifmeta

import (
	"context"
)

// fakeRunner records every invocation and answers from canned output keyed
// by the target path (the last argument).
type fakeRunner struct {
	calls  [][]string
	stdout map[string]string
	fail   map[string]error
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (Invocation, error) {
	f.calls = append(f.calls, append([]string(nil), args...))
	path := args[len(args)-1]
	if err := f.fail[path]; err != nil {
		return Invocation{Args: args}, err
	}
	return Invocation{Args: args, Stdout: f.stdout[path]}, nil
}

// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"hyprforge/internal/execx"
)

// Call records one command handed to a FakeRunner.
type Call struct {
	// Name is the command name.
	Name string
	// Args are the command arguments.
	Args []string
	// AsUser is the re-identification account, "" for none.
	AsUser string
	// Stdin is what the command would have read from standard input.
	Stdin string
}

// FakeRunner is a scripted execx.Runner. Responses are keyed by command
// name; commands without an entry get Default (or success when Default
// is nil). Safe for concurrent use: theme restarts fan out from
// goroutines.
type FakeRunner struct {
	mu sync.Mutex

	// Responses maps a command name to its scripted result.
	Responses map[string]*execx.Result
	// Default is returned for commands not in Responses.
	Default *execx.Result

	calls []Call
}

// Run implements execx.Runner.
func (f *FakeRunner) Run(_ context.Context, spec execx.CmdSpec) *execx.Result {
	stdin := ""
	if spec.Stdin != nil {
		if data, err := io.ReadAll(spec.Stdin); err == nil {
			stdin = string(data)
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, Call{
		Name:   spec.Name,
		Args:   append([]string(nil), spec.Args...),
		AsUser: spec.AsUser,
		Stdin:  stdin,
	})
	f.mu.Unlock()

	if r, ok := f.Responses[spec.Name]; ok {
		return r
	}
	if f.Default != nil {
		return f.Default
	}
	return Ok()
}

// Calls returns a snapshot of everything run so far.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallNames returns just the command names, in execution order.
func (f *FakeRunner) CallNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, len(f.calls))
	for i, c := range f.calls {
		names[i] = c.Name
	}
	return names
}

// Ran reports whether the named command was executed at least once.
func (f *FakeRunner) Ran(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c.Name == name {
			return true
		}
	}
	return false
}

// FakeScriptRunner is a scripted execx.ScriptRunner that records the
// script sources handed to it.
type FakeScriptRunner struct {
	mu sync.Mutex

	// Result is returned from every RunScript call (success when nil).
	Result *execx.Result

	scripts []string
}

// RunScript implements execx.ScriptRunner.
func (f *FakeScriptRunner) RunScript(_ context.Context, spec execx.ScriptSpec) *execx.Result {
	f.mu.Lock()
	f.scripts = append(f.scripts, spec.Script)
	f.mu.Unlock()

	if f.Result != nil {
		return f.Result
	}
	return Ok()
}

// Scripts returns the recorded script sources in execution order.
func (f *FakeScriptRunner) Scripts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.scripts...)
}

// Ok returns a successful empty result.
func Ok() *execx.Result {
	return &execx.Result{}
}

// OkOutput returns a successful result with the given stdout.
func OkOutput(out string) *execx.Result {
	return &execx.Result{Output: out}
}

// Fail returns a non-zero result with the given stderr.
func Fail(code int, errOut string) *execx.Result {
	return &execx.Result{ExitCode: code, ErrOutput: errOut}
}

// DiscardLogger returns a logger that writes nowhere.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard)
}

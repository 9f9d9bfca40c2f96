package adapter

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Binding exposes host functions to interpreted code as an importable package.
type Binding struct {
	ImportPath string
	Name       string
	Symbols    map[string]any
}

// EngineAdapter compiles Go source into an executable unit. It is the
// execution collaborator of the domain layer: the domain decides what to run,
// the engine decides how.
type EngineAdapter interface {
	Compile(src []byte, bindings ...Binding) (Unit, error)
}

// Unit is a compiled program whose zero-argument functions can be resolved.
type Unit interface {
	// Func resolves pkg.name to a callable returning a single value.
	Func(pkg, name string) (func() any, error)
}

// YaegiEngineAdapter runs programs in an embedded yaegi interpreter with the
// standard library available.
type YaegiEngineAdapter struct {
	stdout io.Writer
	stderr io.Writer
}

// NewYaegiEngineAdapter constructs an engine whose programs print to stdout/stderr.
func NewYaegiEngineAdapter(stdout, stderr io.Writer) *YaegiEngineAdapter {
	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	return &YaegiEngineAdapter{stdout: stdout, stderr: stderr}
}

// Compile evaluates src once. Package-level declarations, init functions and
// variable initialisers run here.
func (a *YaegiEngineAdapter) Compile(src []byte, bindings ...Binding) (unit Unit, err error) {
	defer func() {
		if r := recover(); r != nil {
			unit, err = nil, fmt.Errorf("interpreter panic: %v", r)
		}
	}()

	i := interp.New(interp.Options{Stdout: a.stdout, Stderr: a.stderr})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("failed to load stdlib symbols: %w", err)
	}

	for _, b := range bindings {
		exports := make(map[string]reflect.Value, len(b.Symbols))
		for name, sym := range b.Symbols {
			exports[name] = reflect.ValueOf(sym)
		}

		if err := i.Use(interp.Exports{b.ImportPath + "/" + b.Name: exports}); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", b.ImportPath, err)
		}
	}

	if _, err := i.Eval(string(src)); err != nil {
		return nil, err
	}

	return &yaegiUnit{interp: i}, nil
}

type yaegiUnit struct {
	interp *interp.Interpreter
}

func (u *yaegiUnit) Func(pkg, name string) (func() any, error) {
	v, err := u.interp.Eval(pkg + "." + name)
	if err != nil {
		return nil, err
	}

	if !v.IsValid() || !v.CanInterface() {
		return nil, fmt.Errorf("%s.%s is not a function", pkg, name)
	}

	fn, ok := v.Interface().(func() any)
	if !ok {
		return nil, fmt.Errorf("%s.%s has type %s, want func() any", pkg, name, v.Type())
	}

	return fn, nil
}

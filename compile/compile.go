package compile

import (
	"fmt"

	"github.com/fxrazen/fxsema/algos"
	"github.com/fxrazen/fxsema/check"
	"github.com/fxrazen/fxsema/diagnostics"
	"github.com/fxrazen/fxsema/files"
	"github.com/fxrazen/fxsema/parse"
	"github.com/fxrazen/fxsema/semantics"
	"github.com/fxrazen/fxsema/source"
	"github.com/fxrazen/fxsema/tree"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const DefaultMaxPasses = 16

// Result is the outcome of one expression statement. Value is nil when the
// expression was diagnosed or never resolved.
type Result struct {
	Location source.Location
	Text     string
	Expr     tree.Expr
	Value    semantics.Value
}

// Unit verifies programs against one host. Every directive becomes a task;
// tasks that defer are retried in later passes until all complete or a
// pass makes no progress.
type Unit struct {
	host *semantics.Host
	list *diagnostics.List
	log  *zap.Logger

	MaxPasses int

	tasks   []*task
	results []*Result
	passes  int
}

func NewUnit(host *semantics.Host) *Unit {
	return &Unit{
		host:      host,
		list:      diagnostics.NewList(),
		log:       host.Logger().Named("compile"),
		MaxPasses: DefaultMaxPasses,
	}
}

func (u *Unit) WithLogger(log *zap.Logger) *Unit {
	u.log = log.Named("compile")
	return u
}

func (u *Unit) Host() *semantics.Host {
	return u.host
}

func (u *Unit) Diagnostics() *diagnostics.List {
	return u.list
}

// Passes is the number of passes the last Run took.
func (u *Unit) Passes() int {
	return u.passes
}

func (u *Unit) Results() []*Result {
	return u.results
}

// AddFile reads and loads a program. Syntax errors are reported as
// diagnostics; only I/O errors are returned.
func (u *Unit) AddFile(path string) error {
	text, err := files.ReadSource(path)
	if err != nil {
		return err
	}
	u.AddSource(path, text)
	return nil
}

func (u *Unit) AddSource(path, text string) {
	prog, err := parse.ParseProgram(path, text)
	if err != nil {
		var perr *parse.Error
		if !errors.As(err, &perr) {
			panic(fmt.Errorf("unexpected parse failure: %w", err))
		}
		u.list.AddVerifyError(perr.Location, diagnostics.SyntaxError, perr.Message)
		return
	}
	u.LoadProgram(prog)
}

// LoadProgram declares the program's variables in the top level package and
// queues a task per directive. Each program gets its own package scope, so
// imports do not leak between programs.
func (u *Unit) LoadProgram(prog *tree.Program) {
	f := u.host.Factory()
	scope := f.CreatePackageScope(u.host.TopLevelPackage(), nil)
	v := check.NewVerifier(u.host, u.list, scope).WithLogger(u.log)

	u.log.Debug("loading program", zap.String("path", prog.Path), zap.Int("directives", len(prog.Directives)))

	for _, d := range prog.Directives {
		switch d := d.(type) {
		case *tree.VarDirective:
			u.tasks = append(u.tasks, u.varTask(v, d))
		case *tree.ImportDirective:
			u.tasks = append(u.tasks, u.importTask(v, d))
		case *tree.ExprDirective:
			r := &Result{Location: d.Loc(), Text: prog.Source(d.Loc()), Expr: d.Expr}
			u.results = append(u.results, r)
			u.tasks = append(u.tasks, u.exprTask(v, d, r))
		default:
			panic(fmt.Errorf("unexpected directive %T", d))
		}
	}
}

// Run verifies every queued task and returns the errors reported, combined.
func (u *Unit) Run() error {
	pending := u.order(u.tasks)
	u.tasks = nil
	incomplete := true

	pass := 0
	for len(pending) > 0 {
		if pass == u.MaxPasses {
			u.log.Warn("pass limit reached", zap.Int("passes", pass), zap.Int("pending", len(pending)))
			break
		}
		pass++

		var deferred []*task
		for _, t := range pending {
			t.verifier.Incomplete = incomplete
			if err := t.run(); err != nil {
				if !errors.Is(err, semantics.ErrDefer) {
					panic(fmt.Errorf("task %v: %w", t.name, err))
				}
				deferred = append(deferred, t)
			}
		}

		u.log.Debug("pass done",
			zap.Int("pass", pass),
			zap.Int("completed", len(pending)-len(deferred)),
			zap.Int("deferred", len(deferred)),
			zap.Bool("incomplete", incomplete))

		progress := len(deferred) < len(pending)
		pending = deferred
		if !progress {
			if !incomplete {
				break
			}
			// Nothing left to declare. Undefined names are errors from here on.
			incomplete = false
		}
	}
	u.passes = pass

	u.reportStalled(pending)
	return u.list.Err()
}

// order puts declarations before the tasks that reference them, keeping
// source order otherwise.
func (u *Unit) order(tasks []*task) []*task {
	keys := make([]int, len(tasks))
	nodes := make(map[int]*task, len(tasks))
	declaredBy := map[string][]int{}
	for i, t := range tasks {
		keys[i] = i
		nodes[i] = t
		if t.declares != "" {
			declaredBy[t.declares] = append(declaredBy[t.declares], i)
		}
	}
	return algos.TopologicalSort(keys, nodes, func(t *task) []int {
		var deps []int
		for name := range t.refs {
			deps = append(deps, declaredBy[name]...)
		}
		return deps
	})
}

// reportStalled diagnoses tasks that never completed. Declarations that
// wait on each other are reported as a circular reference.
func (u *Unit) reportStalled(stalled []*task) {
	if len(stalled) == 0 {
		return
	}

	named := map[string]*task{}
	for _, t := range stalled {
		if t.declares != "" {
			named[t.declares] = t
		}
	}
	inCycle := map[*task]bool{}
	for {
		cycle := algos.FindCycle(named, func(t *task) []string {
			return t.refs.Slice()
		})
		if cycle == nil {
			break
		}
		for _, t := range cycle {
			inCycle[t] = true
			delete(named, t.declares)
			u.list.AddVerifyError(t.loc, diagnostics.CircularReference, t.declares)
		}
	}

	for _, t := range stalled {
		if !inCycle[t] {
			u.list.AddVerifyError(t.loc, diagnostics.UnresolvedReference, t.name)
		}
	}
}

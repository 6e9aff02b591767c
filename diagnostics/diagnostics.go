package diagnostics

import (
	"fmt"
	"strings"

	"github.com/fxrazen/fxsema/source"
	"github.com/google/btree"
	"go.uber.org/multierr"
)

type Diagnostic struct {
	Location source.Location
	Kind     Kind
	Args     []string
	Warning  bool
}

func (d *Diagnostic) Message() string {
	args := make([]interface{}, len(d.Args))
	for i, a := range d.Args {
		args[i] = a
	}
	return d.Kind.Format(args...)
}

func (d *Diagnostic) Error() string {
	severity := "error"
	if d.Warning {
		severity = "warning"
	}
	return fmt.Sprintf("%v: %s: %s", d.Location, severity, d.Message())
}

func less(a, b *Diagnostic) bool {
	if a.Location != b.Location {
		return a.Location.Less(b.Location)
	}
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if a.Warning != b.Warning {
		return !a.Warning
	}
	return strings.Join(a.Args, "\x00") < strings.Join(b.Args, "\x00")
}

// Sink receives diagnostics from the verifier. Arguments are formatted
// with fmt.Sprint.
type Sink interface {
	AddVerifyError(loc source.Location, kind Kind, args ...interface{})
	AddWarning(loc source.Location, kind Kind, args ...interface{})
}

// List is a Sink that keeps diagnostics ordered by location. Reporting
// the same diagnostic twice keeps one copy, so retried verification does
// not duplicate output.
type List struct {
	tree   *btree.BTreeG[*Diagnostic]
	errors int
}

func NewList() *List {
	return &List{tree: btree.NewG[*Diagnostic](8, less)}
}

func (l *List) add(d *Diagnostic) {
	if _, replaced := l.tree.ReplaceOrInsert(d); !replaced && !d.Warning {
		l.errors++
	}
}

func stringify(args []interface{}) []string {
	result := make([]string, len(args))
	for i, a := range args {
		result[i] = fmt.Sprint(a)
	}
	return result
}

func (l *List) AddVerifyError(loc source.Location, kind Kind, args ...interface{}) {
	l.add(&Diagnostic{Location: loc, Kind: kind, Args: stringify(args)})
}

func (l *List) AddWarning(loc source.Location, kind Kind, args ...interface{}) {
	l.add(&Diagnostic{Location: loc, Kind: kind, Args: stringify(args), Warning: true})
}

func (l *List) Len() int {
	return l.tree.Len()
}

func (l *List) ErrorCount() int {
	return l.errors
}

func (l *List) HasErrors() bool {
	return l.errors > 0
}

// Items returns every diagnostic in location order.
func (l *List) Items() []*Diagnostic {
	items := make([]*Diagnostic, 0, l.tree.Len())
	l.tree.Ascend(func(d *Diagnostic) bool {
		items = append(items, d)
		return true
	})
	return items
}

// Err combines the errors, ignoring warnings. It is nil when there are no
// errors.
func (l *List) Err() error {
	var err error
	l.tree.Ascend(func(d *Diagnostic) bool {
		if !d.Warning {
			err = multierr.Append(err, d)
		}
		return true
	})
	return err
}

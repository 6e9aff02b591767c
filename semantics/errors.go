package semantics

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrDefer reports that verification depends on a declaration that is not
// available yet. It propagates unchanged up to the pass driver.
var ErrDefer = errors.New("defer")

type LookupErrorKind int

const (
	LookupAmbiguous LookupErrorKind = iota
	LookupDefer
	LookupVoidBase
	LookupNullableObject
)

func (k LookupErrorKind) String() string {
	switch k {
	case LookupAmbiguous:
		return "ambiguous"
	case LookupDefer:
		return "defer"
	case LookupVoidBase:
		return "void base"
	case LookupNullableObject:
		return "nullable object"
	default:
		panic("unreachable")
	}
}

// LookupError is the failure taxonomy of property lookup. Name is only set
// for LookupAmbiguous.
type LookupError struct {
	Kind LookupErrorKind
	Name string
}

func (e *LookupError) Error() string {
	if e.Kind == LookupAmbiguous {
		return fmt.Sprintf("ambiguous reference to %s", e.Name)
	}
	return e.Kind.String()
}

// Is lets errors.Is(err, ErrDefer) match deferred lookups.
func (e *LookupError) Is(target error) bool {
	return e.Kind == LookupDefer && target == ErrDefer
}

var errLookupDefer = &LookupError{Kind: LookupDefer}

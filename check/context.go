package check

import (
	"github.com/fxrazen/fxsema/semantics"
	"github.com/pkg/errors"
)

type Mode int

const (
	ModeRead Mode = iota
	ModeWrite
	ModeDelete
)

// Context configures the verification of one expression. It is never
// stored.
type Context struct {
	// ExpectedType is the contextual type, or nil.
	ExpectedType semantics.Type
	Mode         Mode
	// PrecededByNegative is set for the operand of unary minus so that
	// numeric literals absorb the sign.
	PrecededByNegative bool
	// FollowedByTypeArguments is set for the base of `.<...>`.
	FollowedByTypeArguments bool
}

type OutcomeKind int

const (
	// OutcomeValue carries a verified entity.
	OutcomeValue OutcomeKind = iota
	// OutcomeDiagnosed means an error was reported; callers continue as if
	// the expression had type *.
	OutcomeDiagnosed
	// OutcomeDefer means verification must be retried in a later pass.
	OutcomeDefer
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeValue:
		return "value"
	case OutcomeDiagnosed:
		return "diagnosed"
	case OutcomeDefer:
		return "defer"
	default:
		panic("unreachable")
	}
}

// Outcome classifies the result pair returned by the verifier.
func Outcome(result semantics.Thingy, err error) OutcomeKind {
	switch {
	case errors.Is(err, semantics.ErrDefer):
		return OutcomeDefer
	case err != nil:
		panic(err)
	case result == nil:
		return OutcomeDiagnosed
	default:
		return OutcomeValue
	}
}

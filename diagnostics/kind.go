package diagnostics

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

type Kind int

const (
	AmbiguousReference Kind = iota
	AccessOfVoid
	AccessOfNullable
	UndefinedProperty
	UndefinedPropertyWithStaticType
	IncorrectNumArguments
	IncorrectNumArgumentsNoMoreThan
	CouldNotExpandInlineConstant
	CouldNotParseNumber
	EntityIsNotAType
	EntityIsReadOnly
	EntityIsWriteOnly
	ImplicitCoercionToUnrelatedType
	InapplicableDescendants
	InapplicableFilter
	NoMatchingEnumMember
	NonParameterizedType
	NullNotExpectedHere
	OperandMustBeNumber
	ReferenceIsAlreadyNonNullable
	UnexpectedNewBase
	UnexpectedThis
	YieldIsNotSupported
	AwaitOperandMustBeAPromise
	CallOnArrayType
	CallOnNonFunction
	SuperOutsideInstanceMethod
	SuperWithoutSuperclass
	UnresolvedReference
	CircularReference
	SyntaxError
	UnsupportedExpression
)

var kindNames = map[Kind]string{
	AmbiguousReference:              "AmbiguousReference",
	AccessOfVoid:                    "AccessOfVoid",
	AccessOfNullable:                "AccessOfNullable",
	UndefinedProperty:               "UndefinedProperty",
	UndefinedPropertyWithStaticType: "UndefinedPropertyWithStaticType",
	IncorrectNumArguments:           "IncorrectNumArguments",
	IncorrectNumArgumentsNoMoreThan: "IncorrectNumArgumentsNoMoreThan",
	CouldNotExpandInlineConstant:    "CouldNotExpandInlineConstant",
	CouldNotParseNumber:             "CouldNotParseNumber",
	EntityIsNotAType:                "EntityIsNotAType",
	EntityIsReadOnly:                "EntityIsReadOnly",
	EntityIsWriteOnly:               "EntityIsWriteOnly",
	ImplicitCoercionToUnrelatedType: "ImplicitCoercionToUnrelatedType",
	InapplicableDescendants:         "InapplicableDescendants",
	InapplicableFilter:              "InapplicableFilter",
	NoMatchingEnumMember:            "NoMatchingEnumMember",
	NonParameterizedType:            "NonParameterizedType",
	NullNotExpectedHere:             "NullNotExpectedHere",
	OperandMustBeNumber:             "OperandMustBeNumber",
	ReferenceIsAlreadyNonNullable:   "ReferenceIsAlreadyNonNullable",
	UnexpectedNewBase:               "UnexpectedNewBase",
	UnexpectedThis:                  "UnexpectedThis",
	YieldIsNotSupported:             "YieldIsNotSupported",
	AwaitOperandMustBeAPromise:      "AwaitOperandMustBeAPromise",
	CallOnArrayType:                 "CallOnArrayType",
	CallOnNonFunction:               "CallOnNonFunction",
	SuperOutsideInstanceMethod:      "SuperOutsideInstanceMethod",
	SuperWithoutSuperclass:          "SuperWithoutSuperclass",
	UnresolvedReference:             "UnresolvedReference",
	CircularReference:               "CircularReference",
	SyntaxError:                     "SyntaxError",
	UnsupportedExpression:           "UnsupportedExpression",
}

var templates = map[Kind]string{
	AmbiguousReference:              "Ambiguous reference to %v.",
	AccessOfVoid:                    "Accessing property of void.",
	AccessOfNullable:                "Accessing property of nullable object.",
	UndefinedProperty:               "Access of undefined property %v.",
	UndefinedPropertyWithStaticType: "Access of possibly undefined property %v through a reference with static type %v.",
	IncorrectNumArguments:           "Incorrect number of arguments. Expected %v.",
	IncorrectNumArgumentsNoMoreThan: "Incorrect number of arguments. Expected no more than %v.",
	CouldNotExpandInlineConstant:    "Could not expand inline constant.",
	CouldNotParseNumber:             "Could not parse number %v.",
	EntityIsNotAType:                "%v is not a type.",
	EntityIsReadOnly:                "%v is read-only.",
	EntityIsWriteOnly:               "%v is write-only.",
	ImplicitCoercionToUnrelatedType: "Implicit coercion of a value of type %v to an unrelated type %v.",
	InapplicableDescendants:         "The descendants operator does not apply to type %v.",
	InapplicableFilter:              "The filter operator does not apply to type %v.",
	NoMatchingEnumMember:            "%v is not a member of %v.",
	NonParameterizedType:            "%v is not a parameterized type.",
	NullNotExpectedHere:             "null is not expected here.",
	OperandMustBeNumber:             "Operand must be a number.",
	ReferenceIsAlreadyNonNullable:   "Reference is already non-nullable.",
	UnexpectedNewBase:               "Unexpected new expression base.",
	UnexpectedThis:                  "Unexpected this.",
	YieldIsNotSupported:             "yield is not supported.",
	AwaitOperandMustBeAPromise:      "The await operand must be a Promise, found %v.",
	CallOnArrayType:                 "Calling Array as a function is equivalent to new Array.",
	CallOnNonFunction:               "Calling a value of type %v, which is not a function.",
	SuperOutsideInstanceMethod:      "A super expression can be used only inside instance methods of a class.",
	SuperWithoutSuperclass:          "A super expression can be used only in subclasses.",
	UnresolvedReference:             "Could not resolve %v.",
	CircularReference:               "Circular reference involving %v.",
	SyntaxError:                     "%v",
	UnsupportedExpression:           "%v is not supported in this context.",
}

var printer = newPrinter()

func newPrinter() *message.Printer {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for kind, tmpl := range templates {
		if err := builder.SetString(language.English, kind.String(), tmpl); err != nil {
			panic(err)
		}
	}
	return message.NewPrinter(language.English, message.Catalog(builder))
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		panic("unreachable")
	}
	return name
}

// Format renders the message of kind with args.
func (k Kind) Format(args ...interface{}) string {
	return printer.Sprintf(k.String(), args...)
}

package diagnostics

import (
	"testing"

	"github.com/fxrazen/fxsema/source"
	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "Incorrect number of arguments. Expected no more than 0.", IncorrectNumArgumentsNoMoreThan.Format(0))
	assert.Equal(t, "Ambiguous reference to x.", AmbiguousReference.Format("x"))
	assert.Equal(t, "Could not expand inline constant.", CouldNotExpandInlineConstant.Format())
}

func TestEveryKindHasTemplate(t *testing.T) {
	for kind := range kindNames {
		_, ok := templates[kind]
		assert.True(t, ok, kind.String())
	}
	assert.Len(t, templates, len(kindNames))
}

func TestListOrderingAndDedup(t *testing.T) {
	file := source.NewFile("a.as", "first\nsecond\n")
	late := file.Location(6, 12)
	early := file.Location(0, 5)

	list := NewList()
	list.AddVerifyError(late, UndefinedProperty, "y")
	list.AddVerifyError(early, UndefinedProperty, "x")
	list.AddVerifyError(late, UndefinedProperty, "y")
	list.AddWarning(early, CallOnArrayType)

	assert.Equal(t, 3, list.Len())
	assert.Equal(t, 2, list.ErrorCount())
	assert.True(t, list.HasErrors())

	items := list.Items()
	assert.Equal(t, "a.as:1:1: error: Access of undefined property x.", items[0].Error())
	assert.True(t, items[1].Warning)
	assert.Equal(t, "a.as:2:1: error: Access of undefined property y.", items[2].Error())

	errs := multierr.Errors(list.Err())
	assert.Len(t, errs, 2)
}

func TestEmptyList(t *testing.T) {
	list := NewList()
	list.AddWarning(source.Location{}, CallOnArrayType)
	assert.NoError(t, list.Err())
	assert.False(t, list.HasErrors())
}

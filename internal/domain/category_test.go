package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryPatch_AppliesOnlyProvidedFields(t *testing.T) {
	c := &Category{Name: "Work", Color: "#fff"}

	CategoryPatch{Color: "#000000"}.Apply(c)
	assert.Equal(t, "Work", c.Name)
	assert.Equal(t, "#000000", c.Color)

	CategoryPatch{Name: "Home", Color: " "}.Apply(c)
	assert.Equal(t, "Home", c.Name)
	assert.Equal(t, "#000000", c.Color)
}

func TestNotFoundErrorsWrapGeneric(t *testing.T) {
	assert.True(t, errors.Is(ErrItemNotFound, ErrNotFound))
	assert.True(t, errors.Is(ErrCategoryNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrItemNotFound, ErrCategoryNotFound))
	assert.True(t, errors.Is(Validationf("name %q", "x"), ErrValidation))
}

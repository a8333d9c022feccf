package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathTail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "ShallowDebug", want: "ShallowDebug"},
		{in: "shallow_debug::ShallowDebug", want: "ShallowDebug"},
		{in: " a :: b :: C ", want: "C"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, PathTail(tt.in))
		})
	}
}

func TestSquashSpace(t *testing.T) {
	assert.Equal(t, "T: Clone + Send", SquashSpace("  T:\n\tClone +   Send "))
	assert.Empty(t, SquashSpace(" \n "))
}

func TestSliceHelpers(t *testing.T) {
	assert.True(t, IsEmpty([]int(nil)))
	assert.False(t, IsEmpty([]int{1}))
	assert.False(t, IsMultiple([]int{1}))
	assert.True(t, IsMultiple([]int{1, 2}))

	first, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", first)

	_, ok = First([]string{})
	assert.False(t, ok)

	assert.Equal(t, []string{"A", "B"}, Map([]string{"a", "b"}, strings.ToUpper))
	assert.Nil(t, Map([]string(nil), strings.ToUpper))
}

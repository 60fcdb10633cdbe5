package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Red Shirt", "red-shirt"},
		{"  Red   Shirt  ", "red-shirt"},
		{"Men's T-Shirt (XL)", "men-s-t-shirt-xl"},
		{"Crème Brûlée", "creme-brulee"},
		{"iPhone 15 Pro", "iphone-15-pro"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, Make(tt.title))
		})
	}
}

func TestNext(t *testing.T) {
	t.Run("free base is used as is", func(t *testing.T) {
		assert.Equal(t, "red-shirt", Next("red-shirt", nil))
		assert.Equal(t, "red-shirt", Next("red-shirt", []string{"red-shirt-2"}))
	})

	t.Run("second identical title gets a suffix", func(t *testing.T) {
		assert.Equal(t, "red-shirt-2", Next("red-shirt", []string{"red-shirt"}))
	})

	t.Run("suffix counts prefix matches", func(t *testing.T) {
		assert.Equal(t, "red-shirt-3", Next("red-shirt", []string{"red-shirt", "red-shirt-2"}))
	})

	t.Run("skips suffixes already taken", func(t *testing.T) {
		got := Next("red-shirt", []string{"red-shirt", "red-shirt-3"})
		assert.Equal(t, "red-shirt-4", got)
	})

	t.Run("result is never in the existing set", func(t *testing.T) {
		existing := []string{"a", "a-2", "a-3", "a-4", "a-6"}
		got := Next("a", existing)
		assert.NotContains(t, existing, got)
	})
}

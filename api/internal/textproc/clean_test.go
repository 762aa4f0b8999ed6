package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "What  is\n\t2+2?", "What is 2+2?"},
		{"trims", "  solve for x  ", "solve for x"},
		{"keeps operators", `3 * (4 - 1) = ? "easy", right: yes; maybe!`, `3 * (4 - 1) = ? "easy", right: yes; maybe!`},
		{"drops noise chars", "price: 5$ & 10% #off", "price: 5 10 off"},
		{"empty", "", ""},
		{"only noise", "@#$%^&", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"What  is\n2+2?",
		"  Solve: 2x + 5 = 13  ",
		"plain text",
		"",
		"1. first 2. second",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "Clean must be idempotent for %q", in)
	}
}

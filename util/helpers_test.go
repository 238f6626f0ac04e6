package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty("  x  "))

	assert.False(t, IsNotEmpty(" "))
	assert.True(t, IsNotEmpty("x"))
}

func TestStorageFilename(t *testing.T) {
	tests := []struct {
		name     string
		millis   int64
		input    string
		expected string
	}{
		{"single word", 1700000000000, "Alice", "1700000000000_Alice.html"},
		{"spaces to underscores", 1700000000000, "Alice Kim", "1700000000000_Alice_Kim.html"},
		{"runs of whitespace collapse", 1, "a \t b", "1_a_b.html"},
		{"empty name", 42, "", "42_.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StorageFilename(tt.millis, tt.input))
		})
	}
}

package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPath(t *testing.T) {
	tests := []struct {
		path   string
		result string
	}{
		// Already clean
		{"/", "/"},
		{"/abc", "/abc"},
		{"/a/b/c", "/a/b/c"},

		// Remove trailing slash
		{"/abc/", "/abc"},
		{"/a/b/c/", "/a/b/c"},

		// Missing root
		{"", "/"},
		{"a/", "/a"},
		{"abc", "/abc"},
		{"abc/def", "/abc/def"},
		{"a/b/c", "/a/b/c"},

		// Remove doubled slash
		{"//", "/"},
		{"/abc//", "/abc"},
		{"/abc/def//", "/abc/def"},
		{"/abc//def//ghi", "/abc/def/ghi"},
		{"//abc", "/abc"},
		{"///abc", "/abc"},
		{"//abc//", "/abc"},

		// Remove . elements
		{".", "/"},
		{"./", "/"},
		{"/abc/./def", "/abc/def"},
		{"/./abc/def", "/abc/def"},
		{"/abc/.", "/abc"},

		// Remove .. elements
		{"..", "/"},
		{"../", "/"},
		{"../../", "/"},
		{"../..", "/"},
		{"../../abc", "/abc"},
		{"/abc/def/ghi/../jkl", "/abc/def/jkl"},
		{"/abc/def/../ghi/../jkl", "/abc/jkl"},
		{"/abc/def/..", "/abc"},
		{"/abc/def/../..", "/"},
		{"/abc/def/../../..", "/"},
		{"/abc/def/../../../ghi/jkl/../../../mno", "/mno"},

		// .. can never escape above root
		{"/a/../../b", "/b"},

		// Combinations
		{"abc/./../def", "/def"},
		{"abc//./../def", "/def"},
		{"abc/../../././../def", "/def"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.result, CleanPath(tt.path), "CleanPath(%q)", tt.path)

		// Cleaning must be idempotent.
		assert.Equal(t, tt.result, CleanPath(tt.result), "CleanPath(%q) not idempotent", tt.result)
	}
}

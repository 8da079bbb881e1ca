package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsByName(t *testing.T) {
	ps := Params{
		{"param1", "value1"},
		{"param2", "value2"},
		{"param3", "value3"},
		{"param2", "shadowed"},
	}

	for i, p := range ps[:3] {
		assert.Equal(t, p.Value, ps.ByName(p.Key))
		assert.Equal(t, p.Value, ps[i].Value, "positional access mismatch at %d", i)
	}

	// Duplicate keys are legal; the first match wins.
	assert.Equal(t, "value2", ps.ByName("param2"))

	assert.Equal(t, "", ps.ByName("noKey"))
	assert.Equal(t, "", Params(nil).ByName("noKey"))
}

package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		context   string
		minLength int
	}{
		{ContextGlobal, 5},
		{ContextPlayback, 9},
		{ContextPlaylist, 6},
		{"unknown", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.context, func(t *testing.T) {
			result := ByContext(tt.context)
			assert.GreaterOrEqual(t, len(result), tt.minLength)
			if tt.minLength == 0 {
				assert.Empty(t, result)
			}
			for _, b := range result {
				assert.Equal(t, tt.context, b.Context)
			}
		})
	}
}

func TestBindings_NoDuplicateKeys(t *testing.T) {
	seen := make(map[string]Action)
	for _, b := range Bindings {
		require.NotEmpty(t, b.Keys, "action %s has no keys", b.Action)
		for _, k := range b.Keys {
			if prev, ok := seen[k]; ok {
				t.Errorf("key %q bound to both %s and %s", k, prev, b.Action)
			}
			seen[k] = b.Action
		}
	}
}

func TestBinding_Help(t *testing.T) {
	b := Binding{ActionPlayPause, []string{" "}, "Play/pause", ContextPlayback}
	h := b.Help()
	assert.Equal(t, "space", h.Help().Key)
	assert.Equal(t, "Play/pause", h.Help().Desc)
	assert.Equal(t, []string{" "}, h.Keys())
}

func TestNewHelpMap(t *testing.T) {
	h := NewHelpMap(Bindings, ActionPlayPause, ActionGenerate, Action("missing"))

	short := h.ShortHelp()
	require.Len(t, short, 2)
	assert.Equal(t, "Play/pause", short[0].Help().Desc)
	assert.Equal(t, "Generate track", short[1].Help().Desc)

	full := h.FullHelp()
	require.Len(t, full, 3)
	assert.Len(t, full[0], len(ByContext(ContextGlobal)))
	assert.Len(t, full[1], len(ByContext(ContextPlayback)))
	assert.Len(t, full[2], len(ByContext(ContextPlaylist)))
}

package clipboard

import (
	"testing"

	atotto "github.com/atotto/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinLines(t *testing.T) {
	assert.Equal(t, "a\nb\nc\n", JoinLines([]string{"a", "b", "c"}))
	assert.Equal(t, "only\n", JoinLines([]string{"only"}))
	assert.Equal(t, "\n", JoinLines(nil))
}

func TestMemoryWriter(t *testing.T) {
	var w Writer = &Memory{}
	require.NoError(t, w.WriteAll("wowa add curse:bagnon\n"))
	assert.Equal(t, "wowa add curse:bagnon\n", w.(*Memory).Text)
}

func TestDefault(t *testing.T) {
	assert.IsType(t, System{}, Default())
}

func TestDefault_UnsupportedFailsLoudly(t *testing.T) {
	prev := atotto.Unsupported
	atotto.Unsupported = true
	t.Cleanup(func() { atotto.Unsupported = prev })

	w := Default()
	_, inMemory := w.(*Memory)
	assert.False(t, inMemory, "an unsupported clipboard must not swallow copies")

	err := w.WriteAll("https://curseforge.com/wow/addons/bagnon\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

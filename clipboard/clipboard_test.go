package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	var w Writer = &Memory{}

	require.NoError(t, w.Write("Platform: Desktop"))

	mem := w.(*Memory)
	got, err := mem.Read()
	require.NoError(t, err)
	assert.Equal(t, "Platform: Desktop", got)
}

func TestMemoryErrors(t *testing.T) {
	mem := &Memory{
		WriteErr: errors.New("no display"),
		ReadErr:  errors.New("no display"),
	}

	assert.Error(t, mem.Write("x"))
	assert.Empty(t, mem.Contents, "failed writes do not store")

	_, err := mem.Read()
	assert.Error(t, err)
}

package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New("2", 9, 20)
	require.NoError(t, err)
	assert.Equal(t, 3, p.NumPages)
	assert.Equal(t, 9, p.Offset())
	assert.Equal(t, 9, p.Limit())
	assert.True(t, p.HasNext())
	assert.True(t, p.HasPrevious())
	assert.Equal(t, 10, p.StartIndex())
	assert.Equal(t, 18, p.EndIndex())
	assert.Equal(t, []int{1, 2, 3}, p.Range())
}

func TestNewLastAndDefault(t *testing.T) {
	p, err := New("last", 6, 13)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Number)
	assert.Equal(t, 13, p.EndIndex())
	assert.False(t, p.HasNext())

	p, err = New("", 6, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 0, p.StartIndex())
	assert.False(t, p.HasOtherPages())
}

func TestNewRejectsBadPages(t *testing.T) {
	_, err := New("abc", 9, 20)
	assert.ErrorIs(t, err, ErrInvalidPage)

	_, err = New("4", 9, 20)
	assert.ErrorIs(t, err, ErrEmptyPage)

	_, err = New("0", 9, 20)
	assert.ErrorIs(t, err, ErrEmptyPage)
}

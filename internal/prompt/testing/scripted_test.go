package testing

import (
	"errors"
	"testing"

	"github.com/microsoft/deployr-cli/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScripted_ReplaysInOrder(t *testing.T) {
	s := New(Pick("b"), Yes(), Text("alice"), Text("secret"))

	idx, err := s.Select("letters", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	ok, err := s.Confirm("sure?")
	require.NoError(t, err)
	assert.True(t, ok)

	name, err := s.Input("Username:", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	pw, err := s.Password("Password:", nil)
	require.NoError(t, err)
	assert.Equal(t, "secret", pw)

	assert.Equal(t, 0, s.Remaining())
	_, err = s.Confirm("again?")
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestScripted_ValidationRetries(t *testing.T) {
	s := New(Text("ab"), Text("abc"))
	short := func(v string) error {
		if len(v) < 3 {
			return errors.New("too short")
		}
		return nil
	}

	got, err := s.Input("Username:", "", short)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	require.Len(t, s.Asked, 2)
	assert.Equal(t, "too short", s.Asked[0].Invalid)
	assert.Empty(t, s.Asked[1].Invalid)
}

func TestScripted_Mismatches(t *testing.T) {
	s := New(Pick("missing"), Yes())

	_, err := s.Select("letters", []string{"a"})
	assert.Error(t, err)

	_, err = s.Input("Username:", "", nil)
	assert.Error(t, err, "confirm answer cannot satisfy an input prompt")
}

func TestScripted_Abort(t *testing.T) {
	s := New(Abort())

	_, err := s.Password("Password:", nil)
	assert.ErrorIs(t, err, prompt.ErrAborted)
}

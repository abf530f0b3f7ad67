package nativefs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gofs "io/fs"
)

func TestCodeIdentifiers(t *testing.T) {
	expected := map[Code]string{
		NoError:                "NO_ERROR",
		ErrUnknown:             "ERR_UNKNOWN",
		ErrInvalidParams:       "ERR_INVALID_PARAMS",
		ErrNotFound:            "ERR_NOT_FOUND",
		ErrCantRead:            "ERR_CANT_READ",
		ErrUnsupportedEncoding: "ERR_UNSUPPORTED_ENCODING",
		ErrCantWrite:           "ERR_CANT_WRITE",
		ErrOutOfSpace:          "ERR_OUT_OF_SPACE",
		ErrNotFile:             "ERR_NOT_FILE",
		ErrNotDirectory:        "ERR_NOT_DIRECTORY",
	}

	assert.Len(t, Codes(), len(expected))
	for i, c := range Codes() {
		assert.Equal(t, Code(i), c)
		assert.Equal(t, expected[c], c.String())

		parsed, err := ParseCode(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	assert.Equal(t, uint8(3), uint8(ErrNotFound))
	assert.Equal(t, uint8(8), uint8(ErrNotFile))
}

func TestCodeText(t *testing.T) {
	b, err := ErrCantWrite.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ERR_CANT_WRITE", string(b))

	var c Code
	require.NoError(t, c.UnmarshalText([]byte("err_not_file")))
	assert.Equal(t, ErrNotFile, c)

	assert.Error(t, c.UnmarshalText([]byte("ERR_BOGUS")))

	_, err = Code(200).MarshalText()
	assert.Error(t, err)
	assert.False(t, Code(200).Valid())
	assert.Equal(t, "Code(200)", Code(200).String())
}

func TestError(t *testing.T) {
	cause := &gofs.PathError{Op: "open", Path: "/x", Err: gofs.ErrNotExist}
	err := fmt.Errorf("wrapped: %w", newError(ErrNotFound, OpReadFile, "/x", cause))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrCantRead)
	assert.ErrorIs(t, err, gofs.ErrNotExist)
	assert.Equal(t, ErrNotFound, CodeOf(err))
	assert.Contains(t, err.Error(), "readFile /x: not found")

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, OpReadFile, e.Op)
	assert.Equal(t, "/x", e.Path)

	assert.Equal(t, "nativefs: stat: invalid parameters", newError(ErrInvalidParams, OpStat, "", nil).Error())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, NoError, CodeOf(nil))
	assert.Equal(t, ErrUnknown, CodeOf(errors.New("boom")))
	assert.Equal(t, ErrNotFile, CodeOf(ErrNotFile))
	assert.Equal(t, ErrCantRead, CodeOf(fmt.Errorf("x: %w", ErrCantRead)))
}

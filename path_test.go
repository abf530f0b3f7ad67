package nativefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separatorFS is a provider stub that only reports a path separator.
type separatorFS struct {
	FS
	sep string
}

func (s separatorFS) PathSeparator() string {
	return s.sep
}

func TestCleanPath(t *testing.T) {
	slash := separatorFS{sep: "/"}

	testCases := []struct {
		path     string
		expected string
	}{
		{path: "/", expected: "/"},
		{path: "base", expected: "/base"},
		{path: "/base/sub/", expected: "/base/sub"},
		{path: "/base//sub/./file.txt", expected: "/base/sub/file.txt"},
		{path: "/base/sub/../file.txt", expected: "/base/file.txt"},
		{path: "../../escape", expected: "/escape"},
	}

	for _, tc := range testCases {
		p, err := CleanPath(slash, tc.path)
		require.NoError(t, err, tc.path)
		assert.Equal(t, tc.expected, p, tc.path)
	}

	p, err := CleanPath(separatorFS{sep: `\`}, `base\sub\..\file.txt`)
	require.NoError(t, err)
	assert.Equal(t, `\base\file.txt`, p)

	_, err = CleanPath(slash, "")
	assert.Error(t, err)

	_, err = CleanPath(slash, "/base\x00/file.txt")
	assert.Error(t, err)

	_, err = CleanPath(nil, "/base")
	assert.Error(t, err)
}

func TestSplitPath(t *testing.T) {
	slash := separatorFS{sep: "/"}

	e, err := SplitPath(slash, "/base//sub/file.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "sub", "file.txt"}, e)

	e, err = SplitPath(slash, "/")
	require.NoError(t, err)
	assert.Empty(t, e)

	_, err = SplitPath(slash, "")
	assert.Error(t, err)
}

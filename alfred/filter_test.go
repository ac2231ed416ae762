package alfred

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/cocoa-bridge/errors"
)

var sample = []Item{
	{Title: "PATH", Subtitle: "/usr/bin:/bin", Arg: "PATH"},
	{Title: "HOME", Subtitle: "/Users/me", Arg: "HOME"},
	{Title: "SECRET", Invalid: true},
}

func titles(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{`valid`, []string{"PATH", "HOME"}},
		{`title startsWith "P"`, []string{"PATH"}},
		{`subtitle contains "/Users" || !valid`, []string{"HOME", "SECRET"}},
		{`arg == ""`, []string{"SECRET"}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := CompileFilter(tt.expr)
			require.NoError(t, err)
			got, err := f.Apply(sample)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestFilterNilMatchesAll(t *testing.T) {
	var f *Filter
	got, err := f.Apply(sample)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestCompileFilterErrors(t *testing.T) {
	for _, src := range []string{`title +`, `title`, `nosuchfield == 1`} {
		_, err := CompileFilter(src)
		require.Error(t, err, src)
		assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseRender, Kind: errors.KindInvalidInput})
	}
}

func TestLoadItems(t *testing.T) {
	src := `
items:
  - title: Safari
    uid: safari
    arg: Safari
    icon:
      fileicon: /Applications/Safari.app
  - title: Notes
    icon: notes.png
    valid: false
  - title: Folder
    icon: {filetype: public.folder}
`
	items, err := LoadItems(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, Item{
		Title: "Safari",
		UID:   "safari",
		Arg:   "Safari",
		Icon:  &Icon{FileIcon: "/Applications/Safari.app"},
	}, items[0])
	assert.Equal(t, &Icon{Path: "notes.png"}, items[1].Icon)
	assert.True(t, items[1].Invalid)
	assert.Equal(t, &Icon{FileType: "public.folder"}, items[2].Icon)
	assert.True(t, items[2].Valid())
}

func TestLoadItemsEmpty(t *testing.T) {
	items, err := LoadItems(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoadItemsInvalid(t *testing.T) {
	_, err := LoadItems(strings.NewReader("items: [unclosed"))
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidData})
}

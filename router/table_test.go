package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileAll(t *testing.T, raws ...string) []*Pattern {
	t.Helper()
	out := make([]*Pattern, 0, len(raws))
	for _, raw := range raws {
		p, err := Compile(raw, nil)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func TestTable_FirstRegisteredWins(t *testing.T) {
	table := NewTable()
	table.Register(NativeScheme, []string{"app"}, compileAll(t, "/item/:id", "/item/new", "/item/*"))

	m, ok := table.Match(NativeScheme, "app", []string{"item", "new"})
	require.True(t, ok)
	assert.Equal(t, "/item/:id", m.Pattern.String())
	assert.Equal(t, map[string]string{"id": "new"}, m.Params)

	m, ok = table.Match(NativeScheme, "app", []string{"item", "a", "b"})
	require.True(t, ok)
	assert.Equal(t, "/item/*", m.Pattern.String())
}

func TestTable_ReorderChangesWinnerOnlyOnOverlap(t *testing.T) {
	forward := NewTable()
	forward.Register(NativeScheme, []string{"app"}, compileAll(t, "/a/:x", "/a/b", "/c"))
	reversed := NewTable()
	reversed.Register(NativeScheme, []string{"app"}, compileAll(t, "/c", "/a/b", "/a/:x"))

	// Both /a/:x and /a/b match: order decides.
	m1, _ := forward.Match(NativeScheme, "app", []string{"a", "b"})
	m2, _ := reversed.Match(NativeScheme, "app", []string{"a", "b"})
	assert.Equal(t, "/a/:x", m1.Pattern.String())
	assert.Equal(t, "/a/b", m2.Pattern.String())

	// Only one pattern matches: order is irrelevant.
	for _, segs := range [][]string{{"c"}, {"a", "z"}} {
		m1, ok1 := forward.Match(NativeScheme, "app", segs)
		m2, ok2 := reversed.Match(NativeScheme, "app", segs)
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, m1.Pattern.String(), m2.Pattern.String())
	}
}

func TestTable_RegisterReplaces(t *testing.T) {
	table := NewTable()
	table.Register(NativeScheme, []string{"x"}, compileAll(t, "/a"))
	table.Register(NativeScheme, []string{"x"}, compileAll(t, "/b"))

	_, ok := table.Match(NativeScheme, "x", []string{"a"})
	assert.False(t, ok)
	_, ok = table.Match(NativeScheme, "x", []string{"b"})
	assert.True(t, ok)
	assert.Len(t, table.Patterns(NativeScheme, "x"), 1)
}

func TestTable_ReplaceOnlyTouchesGivenDiscriminators(t *testing.T) {
	table := NewTable()
	table.Register(NativeScheme, []string{"x", "y"}, compileAll(t, "/a"))
	table.Register(NativeScheme, []string{"x"}, compileAll(t, "/b"))

	_, ok := table.Match(NativeScheme, "y", []string{"a"})
	assert.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, table.Discriminators(NativeScheme))
}

func TestTable_ClassesAreSeparate(t *testing.T) {
	table := NewTable()
	table.Register(LinkHost, []string{"example.com"}, compileAll(t, "/a"))

	assert.True(t, table.IsRegistered(LinkHost, "example.com"))
	assert.False(t, table.IsRegistered(NativeScheme, "example.com"))
	_, ok := table.Match(NativeScheme, "example.com", []string{"a"})
	assert.False(t, ok)
}

func TestTable_IsRegisteredCaseInsensitive(t *testing.T) {
	table := NewTable()
	table.Register(NativeScheme, []string{"App"}, compileAll(t, "/a"))

	assert.True(t, table.IsRegistered(NativeScheme, "app"))
	assert.True(t, table.IsRegistered(NativeScheme, "APP"))
	assert.False(t, table.IsRegistered(NativeScheme, "other"))

	m, ok := table.Match(NativeScheme, "aPp", []string{"a"})
	require.True(t, ok)
	assert.Equal(t, "app", m.Discriminator)
}

func TestTable_EmptySequenceIsRegistered(t *testing.T) {
	table := NewTable()
	table.Register(LinkHost, []string{"example.com"}, nil)

	assert.True(t, table.IsRegistered(LinkHost, "example.com"))
	_, ok := table.Match(LinkHost, "example.com", nil)
	assert.False(t, ok)
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "native_scheme", NativeScheme.String())
	assert.Equal(t, "link_host", LinkHost.String())
	assert.Equal(t, "unknown", Class(9).String())
}

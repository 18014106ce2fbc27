package index

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mwiater/holonet/internal/swapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	pages map[int][]string
	fail  int
	calls []int
}

func (f *fakeLister) ListPage(_ context.Context, page int) (swapi.Page, error) {
	f.calls = append(f.calls, page)
	if page == f.fail {
		return swapi.Page{}, swapi.ErrUnavailable
	}
	var out swapi.Page
	for _, n := range f.pages[page] {
		out.Results = append(out.Results, swapi.Character{Name: n})
	}
	return out, nil
}

func TestNewOffsets(t *testing.T) {
	idx := New([]string{"Luke Skywalker", "C-3PO"})

	assert.Equal(t, "Luke Skywalker C-3PO", idx.Joined())
	assert.Equal(t, []int{0, 15}, idx.Offsets())

	name, ok := idx.NameAt(0)
	require.True(t, ok)
	assert.Equal(t, "Luke Skywalker", name)

	name, ok = idx.NameAt(15)
	require.True(t, ok)
	assert.Equal(t, "C-3PO", name)

	_, ok = idx.NameAt(5)
	assert.False(t, ok)
}

func TestOffsetsAreNameBoundaries(t *testing.T) {
	names := []string{"Luke Skywalker", "C-3PO", "R2-D2", "Darth Vader", "Leia Organa", "Owen Lars"}
	idx := New(names)
	offsets := idx.Offsets()
	joined := idx.Joined()

	for i, off := range offsets {
		if i > 0 {
			assert.Greater(t, off, offsets[i-1])
			assert.Equal(t, byte(' '), joined[off-1])
		}
		assert.True(t, strings.HasPrefix(joined[off:], names[i]))
	}
}

func TestOwner(t *testing.T) {
	idx := New([]string{"Luke Skywalker", "C-3PO"})

	cases := []struct {
		pos  int
		want string
		ok   bool
	}{
		{0, "Luke Skywalker", true},
		{5, "Luke Skywalker", true},
		{14, "Luke Skywalker", true}, // separator
		{15, "C-3PO", true},
		{19, "C-3PO", true},
		{20, "", false},
		{-1, "", false},
	}
	for _, tc := range cases {
		got, ok := idx.Owner(tc.pos)
		assert.Equal(t, tc.ok, ok, "pos %d", tc.pos)
		assert.Equal(t, tc.want, got, "pos %d", tc.pos)
	}

	_, ok := New(nil).Owner(0)
	assert.False(t, ok)
}

func TestMatchMidNameResolvesOwner(t *testing.T) {
	idx := New([]string{"Luke Skywalker", "C-3PO"})
	assert.Equal(t, []string{"Luke Skywalker"}, idx.Match("Sky"))
}

func TestMatch(t *testing.T) {
	idx := New([]string{
		"Luke Skywalker", "C-3PO", "Anakin Skywalker", "Darth Vader",
		"Shmi Skywalker", "Padmé Amidala", "Ayla Secura",
	})

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{"case insensitive", "skywalker", []string{"Luke Skywalker", "Anakin Skywalker", "Shmi Skywalker"}},
		{"repeated in one name", "a", []string{"Luke Skywalker", "Anakin Skywalker", "Darth Vader", "Shmi Skywalker", "Padmé Amidala", "Ayla Secura"}},
		{"overlapping", "aa", nil},
		{"spans separator", "walker c-3", nil},
		{"separator alone", "r c", nil},
		{"ends at name end", "walker", []string{"Luke Skywalker", "Anakin Skywalker", "Shmi Skywalker"}},
		{"last name", "secura", []string{"Ayla Secura"}},
		{"non ascii", "PADMÉ", []string{"Padmé Amidala"}},
		{"no match", "Jar Jar", nil},
		{"blank", "   ", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, idx.Match(tc.query)); diff != "" {
				t.Fatalf("Match(%q) mismatch (-want +got):\n%s", tc.query, diff)
			}
		})
	}
}

func TestMatchOverlappingOccurrences(t *testing.T) {
	idx := New([]string{"Aaa", "Baab"})
	// "aa" occurs at offsets 0 and 1 of "aaa" and at 1 of "baab".
	assert.Equal(t, []string{"Aaa", "Baab"}, idx.Match("aa"))
}

func TestMatchFoldingChangesLength(t *testing.T) {
	// U+0130 lower-cases to two runes, shifting later folded offsets.
	idx := New([]string{"İzmir", "Kenobi"})
	assert.Equal(t, []string{"Kenobi"}, idx.Match("kenobi"))
	assert.Equal(t, []string{"İzmir"}, idx.Match("zmir"))
}

func TestMatchEmptyIndex(t *testing.T) {
	assert.Nil(t, New(nil).Match("luke"))
}

func TestBuild(t *testing.T) {
	lister := &fakeLister{pages: map[int][]string{
		1: {"Luke Skywalker", "C-3PO"},
		2: {"R2-D2"},
		3: {"Darth Vader"},
	}}

	idx, err := Build(context.Background(), lister, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, lister.calls)
	assert.Equal(t, []string{"Luke Skywalker", "C-3PO", "R2-D2", "Darth Vader"}, idx.Names())
	assert.Equal(t, "Luke Skywalker C-3PO R2-D2 Darth Vader", idx.Joined())
	assert.Equal(t, 4, idx.Len())
}

func TestBuildFailsWithoutPartialIndex(t *testing.T) {
	lister := &fakeLister{pages: map[int][]string{1: {"Luke Skywalker"}}, fail: 2}

	idx, err := Build(context.Background(), lister, 3)
	require.Error(t, err)
	assert.Nil(t, idx)
	assert.True(t, errors.Is(err, swapi.ErrUnavailable))
	assert.Equal(t, []int{1, 2}, lister.calls)
}

func TestBuildWithProgressReportsEachPage(t *testing.T) {
	lister := &fakeLister{pages: map[int][]string{1: {"Luke Skywalker"}, 2: {"R2-D2"}}, fail: 3}

	var seen [][2]int
	_, err := BuildWithProgress(context.Background(), lister, 3, func(done, total int) {
		seen = append(seen, [2]int{done, total})
	})
	require.Error(t, err)
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}}, seen)
}

func TestBuildRejectsZeroPages(t *testing.T) {
	_, err := Build(context.Background(), &fakeLister{}, 0)
	assert.ErrorIs(t, err, ErrNoPages)
}

func TestNamesIsACopy(t *testing.T) {
	idx := New([]string{"Yoda"})
	names := idx.Names()
	names[0] = "Mutated"
	assert.Equal(t, []string{"Yoda"}, idx.Names())
}

// Package index builds the in-memory character name index used for substring
// fallback search.
//
// A NameIndex is constructed once and never modified afterwards, so it can be
// shared by any number of concurrent readers without locking.
package index

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mwiater/holonet/internal/logging"
	"github.com/mwiater/holonet/internal/swapi"
)

// ErrNoPages is returned by Build when asked for fewer than one page.
var ErrNoPages = errors.New("index: page count must be at least 1")

// PageLister fetches one page of character records. *swapi.Client satisfies it.
type PageLister interface {
	ListPage(ctx context.Context, page int) (swapi.Page, error)
}

// NameIndex holds the ordered character names, their space-joined form and
// the byte offset at which each name starts in that joined string.
type NameIndex struct {
	names   []string
	joined  string
	offsets []int // offsets[i] is where names[i] starts in joined
	byStart map[int]string

	// folded mirrors joined in lower case. Lower-casing can change byte
	// lengths for some runes, so it keeps its own start table.
	folded        string
	foldedOffsets []int
}

// New builds an index over names in the given order.
func New(names []string) *NameIndex {
	idx := &NameIndex{
		names:         append([]string(nil), names...),
		offsets:       make([]int, 0, len(names)),
		byStart:       make(map[int]string, len(names)),
		foldedOffsets: make([]int, 0, len(names)),
	}

	var joined, folded strings.Builder
	start, foldedStart := 0, 0
	for i, name := range idx.names {
		if i > 0 {
			joined.WriteByte(' ')
			folded.WriteByte(' ')
		}
		idx.offsets = append(idx.offsets, start)
		idx.byStart[start] = name
		joined.WriteString(name)
		start += len(name) + 1

		lower := strings.ToLower(name)
		idx.foldedOffsets = append(idx.foldedOffsets, foldedStart)
		folded.WriteString(lower)
		foldedStart += len(lower) + 1
	}
	idx.joined = joined.String()
	idx.folded = folded.String()
	return idx
}

// Progress is told after each listing page is indexed.
type Progress func(done, total int)

// Build fetches listing pages 1 through pages, in order, and indexes every
// character name they contain. Any failed page aborts the build.
func Build(ctx context.Context, lister PageLister, pages int) (*NameIndex, error) {
	return BuildWithProgress(ctx, lister, pages, nil)
}

// BuildWithProgress is Build, calling progress (when non-nil) after every
// page that was fetched successfully.
func BuildWithProgress(ctx context.Context, lister PageLister, pages int, progress Progress) (*NameIndex, error) {
	if pages < 1 {
		return nil, ErrNoPages
	}
	var names []string
	for page := 1; page <= pages; page++ {
		p, err := lister.ListPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("build name index: %w", err)
		}
		for _, c := range p.Results {
			names = append(names, c.Name)
		}
		if progress != nil {
			progress(page, pages)
		}
	}
	idx := New(names)
	logging.LogEvent("name index built: %d names from %d pages", idx.Len(), pages)
	return idx, nil
}

// Names returns a copy of the indexed names in insertion order.
func (x *NameIndex) Names() []string {
	return append([]string(nil), x.names...)
}

// Joined returns every name joined by single spaces.
func (x *NameIndex) Joined() string { return x.joined }

// Len reports how many names are indexed.
func (x *NameIndex) Len() int { return len(x.names) }

// Offsets returns a copy of the start offset of each name, aligned with Names.
func (x *NameIndex) Offsets() []int {
	return append([]int(nil), x.offsets...)
}

// NameAt returns the name that starts exactly at offset in Joined.
func (x *NameIndex) NameAt(offset int) (string, bool) {
	name, ok := x.byStart[offset]
	return name, ok
}

// Owner returns the name containing byte pos of Joined: the name with the
// greatest start offset not after pos. A position on a separator belongs to
// the name before it.
func (x *NameIndex) Owner(pos int) (string, bool) {
	i, ok := owner(x.offsets, len(x.joined), pos)
	if !ok {
		return "", false
	}
	return x.names[i], true
}

func owner(starts []int, size, pos int) (int, bool) {
	if len(starts) == 0 || pos < 0 || pos >= size {
		return 0, false
	}
	// first start strictly after pos, minus one
	i := sort.Search(len(starts), func(i int) bool { return starts[i] > pos }) - 1
	if i < 0 {
		return 0, false
	}
	return i, true
}

// Match returns every indexed name containing query, ignoring case.
// Overlapping occurrences are all considered; an occurrence running past the
// end of its name into the next one does not count. Names are returned once
// each, in order of their first occurrence.
func (x *NameIndex) Match(query string) []string {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	needle := strings.ToLower(query)

	var matched []string
	seen := make(map[string]struct{})
	for from := 0; from+len(needle) <= len(x.folded); {
		at := strings.Index(x.folded[from:], needle)
		if at < 0 {
			break
		}
		pos := from + at
		if i, ok := owner(x.foldedOffsets, len(x.folded), pos); ok && pos+len(needle) <= x.foldedEnd(i) {
			name := x.names[i]
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				matched = append(matched, name)
			}
		}
		from = pos + 1
	}
	return matched
}

// foldedEnd returns the offset just past names[i] in the folded string.
func (x *NameIndex) foldedEnd(i int) int {
	if i+1 < len(x.foldedOffsets) {
		return x.foldedOffsets[i+1] - 1
	}
	return len(x.folded)
}

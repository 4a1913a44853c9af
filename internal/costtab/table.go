// Package costtab maps free-text type/material labels to unit prices via
// ordered keyword tables. Tables are built once at startup and treated as
// read-only constants.
package costtab

import "strings"

// Entry pairs a lowercase keyword with a unit price.
type Entry struct {
	Keyword string
	Price   float64
}

// Table is an ordered keyword→unit-price mapping with a mandatory "general"
// fallback. Keywords are matched first-declared-wins, so tables are
// hand-ordered with specific keywords ahead of generic ones ("tempered"
// before "glass").
type Table struct {
	entries  []Entry
	fallback float64
}

// New builds a Table from ordered entries. Exactly one entry must use the
// "general" keyword; it becomes the fallback and is excluded from substring
// matching. New panics on a missing fallback because tables are package
// constants — a missing "general" is a programming error, not input.
func New(entries ...Entry) Table {
	t := Table{entries: make([]Entry, 0, len(entries))}
	found := false
	for _, e := range entries {
		if e.Keyword == "general" {
			t.fallback = e.Price
			found = true
			continue
		}
		t.entries = append(t.entries, Entry{Keyword: strings.ToLower(e.Keyword), Price: e.Price})
	}
	if !found {
		panic("costtab: table missing mandatory \"general\" entry")
	}
	return t
}

// Resolve returns the unit price for a free-text type label: the first
// declared keyword found as a case-insensitive substring of the label wins;
// otherwise the "general" fallback applies.
func (t Table) Resolve(label string) float64 {
	label = strings.ToLower(label)
	for _, e := range t.entries {
		if strings.Contains(label, e.Keyword) {
			return e.Price
		}
	}
	return t.fallback
}

// ResolveKeyword is Resolve plus the matched keyword ("general" on fallback).
func (t Table) ResolveKeyword(label string) (string, float64) {
	label = strings.ToLower(label)
	for _, e := range t.entries {
		if strings.Contains(label, e.Keyword) {
			return e.Keyword, e.Price
		}
	}
	return "general", t.fallback
}

// Fallback returns the "general" price.
func (t Table) Fallback() float64 {
	return t.fallback
}

// Override returns a copy of the table with the given keyword prices
// replaced. Unknown keywords are appended ahead of the fallback; "general"
// replaces the fallback itself.
func (t Table) Override(prices map[string]float64) Table {
	out := Table{entries: make([]Entry, len(t.entries)), fallback: t.fallback}
	copy(out.entries, t.entries)

	seen := make(map[string]int, len(out.entries))
	for i, e := range out.entries {
		seen[e.Keyword] = i
	}

	for kw, price := range prices {
		kw = strings.ToLower(kw)
		if kw == "general" {
			out.fallback = price
			continue
		}
		if i, ok := seen[kw]; ok {
			out.entries[i].Price = price
			continue
		}
		out.entries = append(out.entries, Entry{Keyword: kw, Price: price})
	}
	return out
}

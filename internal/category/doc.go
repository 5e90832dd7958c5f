// Package category owns the static classification tables: the closed set of
// destination buckets, the extension table, and the ordered content-keyword
// rules.
//
// Both tables are immutable process-wide data. Keyword rules are declared in
// matching precedence order and evaluated first-match-wins, so reordering them
// changes classification results; the extension table is disjoint by
// construction. Others is the fallback bucket and never the result of a
// failure.
package category

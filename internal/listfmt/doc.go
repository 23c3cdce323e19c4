// Package listfmt implements the line-oriented text encoding for ranked
// lists: one item per line as "Title" or "Title (relation, relation, ...)".
// Parsing is permissive and never fails; malformed relation tokens degrade
// to inert unparseable entries that are excluded from numeric computation
// and dropped on serialization.
package listfmt

package listfmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jswann/ladder-api/internal/domain"
)

// SerializeItem renders one item in the list grammar. Relation values are
// floor-truncated to two decimal digits. Unparseable relations are dropped
// entirely from the output, so malformed input does not survive a round
// trip; this is deliberate lossy behavior, not a defect. An item whose
// relations are all dropped serializes as a bare title.
func SerializeItem(item domain.Item) string {
	encoded := SerializeRelations(item.Relations)
	if encoded == "" {
		return item.Title
	}

	return fmt.Sprintf("%s (%s)", item.Title, encoded)
}

// SerializeRelations renders relations as the comma-separated token list used
// inside an item line's parenthesized group. The store layer persists an
// item's relation history in this same encoding, so stored histories carry the
// format's two-decimal truncation and drop unparseable entries.
func SerializeRelations(relations []domain.Relation) string {
	var tokens []string
	for _, r := range relations {
		switch r.Kind {
		case domain.RelationEqual:
			tokens = append(tokens, formatValue(r.Value))
		case domain.RelationLessThan:
			tokens = append(tokens, "<"+formatValue(r.Value))
		case domain.RelationGreaterThan:
			tokens = append(tokens, ">"+formatValue(r.Value))
		}
	}

	return strings.Join(tokens, ", ")
}

// SerializeList renders items one per line in the order given. Callers that
// want canonical ordering sort before serializing (ParseList and the store
// layer both return canonical order).
func SerializeList(items []domain.Item) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, SerializeItem(item))
	}

	return strings.Join(lines, "\n")
}

// formatValue truncates toward negative infinity at two decimal digits and
// trims trailing zeros, so 650.0 renders as "650" and 664.5 as "664.5".
func formatValue(v float64) string {
	truncated := math.Floor(v*100) / 100

	s := strconv.FormatFloat(truncated, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

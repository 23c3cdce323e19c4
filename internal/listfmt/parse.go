package listfmt

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jswann/ladder-api/internal/domain"
	"github.com/jswann/ladder-api/internal/domain/rating"
)

// numberPrefix matches the leading numeric prefix of a relation token.
// Trailing non-numeric text is ignored, matching the permissive
// numeric-literal convention of the text format.
var numberPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Codec parses and serializes the ranked-list text encoding. The rating
// service supplies strength estimates eagerly during parsing so that
// downstream consumers never observe an item with a stale strength.
type Codec struct {
	rating rating.Service
}

// NewCodec creates a new Codec backed by the given rating service.
func NewCodec(ratingService rating.Service) *Codec {
	if ratingService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("ratingService cannot be nil")
	}

	return &Codec{rating: ratingService}
}

// ParseRelation converts one textual constraint token into a typed relation.
// A leading "<" or ">" selects the bound kind; anything else is an equality.
// The remainder is parsed as a leading numeric prefix. Malformed tokens
// degrade to an unparseable relation; no error is ever raised.
func ParseRelation(token string) domain.Relation {
	token = strings.TrimSpace(token)

	kind := domain.RelationEqual
	switch {
	case strings.HasPrefix(token, "<"):
		kind = domain.RelationLessThan
		token = token[1:]
	case strings.HasPrefix(token, ">"):
		kind = domain.RelationGreaterThan
		token = token[1:]
	}

	match := numberPrefix.FindString(strings.TrimSpace(token))
	if match == "" {
		return domain.NewUnparseableRelation()
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return domain.NewUnparseableRelation()
	}

	return domain.Relation{Kind: kind, Value: value}
}

// ParseRelations converts a comma-separated token list into relations.
// Blank input yields no relations. Used for the inner part of an item line
// and for the stored form of an item's relation history, which uses the
// same encoding.
func ParseRelations(s string) []domain.Relation {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var relations []domain.Relation
	for _, token := range strings.Split(s, ",") {
		relations = append(relations, ParseRelation(token))
	}

	return relations
}

// ParseItem converts one line of text into an Item. A line whose last
// parenthesized group is its suffix is split into a title (the text before
// the first opening parenthesis) and comma-separated relation tokens;
// any other line is a bare title with no relations. The strength estimate is
// computed and stored immediately.
//
// The returned item carries no identity or list membership; callers that
// persist parsed items assign those.
func (c *Codec) ParseItem(line string) domain.Item {
	line = strings.TrimSpace(line)

	var item domain.Item
	if open, ok := relationGroup(line); ok {
		item.Title = strings.TrimSpace(line[:strings.Index(line, "(")])
		item.Relations = ParseRelations(line[open+1 : len(line)-1])
	} else {
		item.Title = line
	}

	item.Strength = float64(c.rating.Estimate(item.Relations))
	return item
}

// ParseList splits multi-line text into items, dropping blank lines, and
// returns them in canonical order: descending strength, ties keeping input
// order. Positions record the input order for stable downstream sorting.
func (c *Codec) ParseList(text string) []domain.Item {
	var items []domain.Item
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		item := c.ParseItem(line)
		item.Position = len(items)
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Strength > items[j].Strength
	})

	return items
}

// relationGroup reports whether the trimmed line ends with a parenthesized
// group and returns the index of that group's opening parenthesis (the last
// "(" on the line).
func relationGroup(line string) (int, bool) {
	if !strings.HasSuffix(line, ")") {
		return 0, false
	}

	open := strings.LastIndex(line, "(")
	if open < 0 {
		return 0, false
	}

	return open, true
}

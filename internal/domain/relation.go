package domain

import (
	"encoding/json"
	"math"
)

// RelationKind identifies how a relation constrains an item's true strength.
type RelationKind string

// Possible relation kinds.
const (
	RelationEqual       RelationKind = "equal"
	RelationLessThan    RelationKind = "less_than"
	RelationGreaterThan RelationKind = "greater_than"
	RelationUnparseable RelationKind = "unparseable"
)

// Relation is one piece of evidence about an item's true strength. Equal pins
// the value; LessThan and GreaterThan are strict bounds derived from a past
// comparison against another item's estimate at the time of that comparison.
// Unparseable carries no numeric meaning and exists only so that malformed
// input survives until serialization decides what to do with it.
type Relation struct {
	Kind  RelationKind `json:"kind"`
	Value float64      `json:"value"`
}

// NewEqualRelation returns a relation pinning the strength to the given value.
func NewEqualRelation(value float64) Relation {
	return Relation{Kind: RelationEqual, Value: value}
}

// NewLessThanRelation returns a relation bounding the strength strictly below
// the given value.
func NewLessThanRelation(value float64) Relation {
	return Relation{Kind: RelationLessThan, Value: value}
}

// NewGreaterThanRelation returns a relation bounding the strength strictly
// above the given value.
func NewGreaterThanRelation(value float64) Relation {
	return Relation{Kind: RelationGreaterThan, Value: value}
}

// NewUnparseableRelation returns the inert relation used for tokens that did
// not contain a usable number. The NaN value is a sentinel only; numeric code
// must skip unparseable relations rather than rely on NaN propagation.
func NewUnparseableRelation() Relation {
	return Relation{Kind: RelationUnparseable, Value: math.NaN()}
}

// Parseable reports whether the relation carries a usable numeric value.
func (r Relation) Parseable() bool {
	return r.Kind != RelationUnparseable
}

// relationJSON is the wire shape of a Relation. The value is a pointer so an
// unparseable relation serializes with a null value instead of NaN, which
// encoding/json cannot represent.
type relationJSON struct {
	Kind  RelationKind `json:"kind"`
	Value *float64     `json:"value"`
}

// MarshalJSON implements json.Marshaler.
func (r Relation) MarshalJSON() ([]byte, error) {
	out := relationJSON{Kind: r.Kind}
	if r.Parseable() {
		v := r.Value
		out.Value = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. A missing or null value restores
// the NaN sentinel for unparseable relations.
func (r *Relation) UnmarshalJSON(data []byte) error {
	var in relationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	r.Kind = in.Kind
	if in.Value != nil {
		r.Value = *in.Value
	} else {
		r.Value = math.NaN()
	}
	return nil
}

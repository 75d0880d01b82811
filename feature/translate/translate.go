package translate

import (
	"context"
	"encoding/json"
	"slices"
	"sort"

	"broad-babel/feature/lookup"

	"go.uber.org/zap"
)

// Runner executes raw lookups. *lookup.Engine satisfies it.
type Runner interface {
	RunQuery(ctx context.Context, q lookup.Query, input lookup.Column, outputs []lookup.Column, op lookup.Operator) ([]lookup.Row, error)
}

// Translation is either a single value or a mapping keyed by identifier.
type Translation struct {
	Value   string
	Mapping map[string]string
}

// IsScalar reports whether the translation came from a single identifier.
func (t Translation) IsScalar() bool {
	return t.Mapping == nil
}

// MarshalJSON renders {"value": ...} or {"mapping": {...}}.
func (t Translation) MarshalJSON() ([]byte, error) {
	if t.IsScalar() {
		return json.Marshal(struct {
			Value string `json:"value"`
		}{t.Value})
	}
	return json.Marshal(struct {
		Mapping map[string]string `json:"mapping"`
	}{t.Mapping})
}

// Translator turns lookup rows into strict one-to-one translations.
type Translator struct {
	runner Runner
	logger *zap.Logger
}

// New creates a translator over runner.
func New(runner Runner, logger *zap.Logger) *Translator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Translator{runner: runner, logger: logger}
}

// BroadToStandard translates broad sample ids into standard keys.
func (t *Translator) BroadToStandard(ctx context.Context, q lookup.Query) (Translation, error) {
	return t.Translate(ctx, q, lookup.BroadSample, lookup.StandardKey)
}

// Translate maps every identifier of q from one column to another.
//
// A single identifier must match exactly one distinct value. A collection
// yields a mapping with one entry per distinct identifier, paired through
// each row's own input value so row order does not matter.
func (t *Translator) Translate(ctx context.Context, q lookup.Query, from, to lookup.Column) (Translation, error) {
	if !q.IsMany() {
		return t.single(ctx, q, from, to)
	}
	return t.many(ctx, q, from, to)
}

func (t *Translator) single(ctx context.Context, q lookup.Query, from, to lookup.Column) (Translation, error) {
	rows, err := t.runner.RunQuery(ctx, q, from, []lookup.Column{to}, lookup.OpEqual)
	if err != nil {
		return Translation{}, err
	}

	values := distinct(rows, 0)
	switch len(values) {
	case 0:
		return Translation{}, &CountMismatchError{Expected: 1, Got: 0, Missing: []string{q.Value()}}
	case 1:
		return Translation{Value: values[0]}, nil
	default:
		return Translation{}, &MultipleResultsError{Identifier: q.Value(), Values: values}
	}
}

func (t *Translator) many(ctx context.Context, q lookup.Query, from, to lookup.Column) (Translation, error) {
	rows, err := t.runner.RunQuery(ctx, q, from, []lookup.Column{from, to}, lookup.OpIn)
	if err != nil {
		return Translation{}, err
	}

	requested := dedupe(q.Values())
	groups := make(map[string][]string)
	for _, row := range rows {
		id, value := row[0], row[1]
		if !slices.Contains(groups[id], value) {
			groups[id] = append(groups[id], value)
		}
	}

	// Report ambiguity in request order, then for unexpected identifiers.
	order := append(slices.Clip(requested), extras(groups, requested)...)
	for _, id := range order {
		if values := groups[id]; len(values) > 1 {
			return Translation{}, &MultipleResultsError{Identifier: id, Values: values}
		}
	}

	var missing []string
	for _, id := range requested {
		if _, ok := groups[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 || len(groups) != len(requested) {
		t.logger.Debug("Translation incomplete",
			zap.Int("expected", len(requested)),
			zap.Int("got", len(groups)),
			zap.Strings("missing", missing),
		)
		return Translation{}, &CountMismatchError{Expected: len(requested), Got: len(groups), Missing: missing}
	}

	mapping := make(map[string]string, len(groups))
	for id, values := range groups {
		mapping[id] = values[0]
	}
	return Translation{Mapping: mapping}, nil
}

func distinct(rows []lookup.Row, col int) []string {
	var out []string
	for _, row := range rows {
		if !slices.Contains(out, row[col]) {
			out = append(out, row[col])
		}
	}
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// extras returns the group keys that were not requested, sorted.
func extras(groups map[string][]string, requested []string) []string {
	want := make(map[string]struct{}, len(requested))
	for _, id := range requested {
		want[id] = struct{}{}
	}
	var out []string
	for id := range groups {
		if _, ok := want[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

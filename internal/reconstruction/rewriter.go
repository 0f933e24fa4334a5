package reconstruction

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrInvalidPlan is returned for plans whose items or order are inconsistent.
var ErrInvalidPlan = errors.New("invalid rewrite plan")

// Item is one reorderable node and the bytes it owns.
type Item struct {
	Start int
	End   int
	// Text replaces content[Start:End] when non-nil, e.g. a declaration
	// whose own children were reordered as well.
	Text []byte
}

// SeparatorFunc returns the text placed between two adjacent output items,
// given their indices in the original sequence.
type SeparatorFunc func(prev, next int) string

// Plan describes one consolidated rewrite of a reorder domain.
type Plan struct {
	// Items in original source order. They must not overlap.
	Items []Item
	// Order lists item indices in their target order.
	Order []int
	// Separator overrides the original separators when set.
	Separator SeparatorFunc
}

// Edit replaces content[Start:End] with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Rewrite synthesizes the replacement text for the span covering every item.
//
// Items are emitted in target order. Between output positions i and i+1 the
// original separator found between original positions i and i+1 is written,
// so blank lines, commas and inline comments stay where they were. With the
// identity order and no Separator the result equals the original span.
func Rewrite(content []byte, plan Plan) (Edit, error) {
	if err := plan.validate(len(content)); err != nil {
		return Edit{}, err
	}

	n := len(plan.Items)
	var result bytes.Buffer

	for pos, idx := range plan.Order {
		result.Write(plan.Items[idx].text(content))

		if pos == n-1 {
			break
		}
		if plan.Separator != nil {
			result.WriteString(plan.Separator(idx, plan.Order[pos+1]))
		} else {
			result.Write(content[plan.Items[pos].End:plan.Items[pos+1].Start])
		}
	}

	return Edit{
		Start: plan.Items[0].Start,
		End:   plan.Items[n-1].End,
		Text:  result.String(),
	}, nil
}

func (it Item) text(content []byte) []byte {
	if it.Text != nil {
		return it.Text
	}
	return content[it.Start:it.End]
}

func (p Plan) validate(size int) error {
	if len(p.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidPlan)
	}
	if len(p.Order) != len(p.Items) {
		return fmt.Errorf("%w: order has %d entries for %d items", ErrInvalidPlan, len(p.Order), len(p.Items))
	}

	prevEnd := 0
	for i, it := range p.Items {
		if it.Start < prevEnd || it.End < it.Start || it.End > size {
			return fmt.Errorf("%w: item %d spans [%d, %d)", ErrInvalidPlan, i, it.Start, it.End)
		}
		prevEnd = it.End
	}

	seen := make([]bool, len(p.Items))
	for _, idx := range p.Order {
		if idx < 0 || idx >= len(p.Items) || seen[idx] {
			return fmt.Errorf("%w: order is not a permutation", ErrInvalidPlan)
		}
		seen[idx] = true
	}
	return nil
}

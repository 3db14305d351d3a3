package scoring

import (
	"unicode/utf8"

	"traductor/internal/domain"
)

// Budget walks the ranking in order and selects the items whose combined
// text length stays within maxContextLength characters. Lengths are counted
// in runes, not bytes, so accented corpus text is not overcounted. Packing
// is best-effort: an oversized item is skipped and the walk continues, so a
// large top-ranked passage never starves smaller lower-ranked ones. Included
// items keep their ranked order.
//
// An empty result is valid: it means the translation proceeds without
// corpus context.
func Budget(ranked domain.RankedContext, maxContextLength int) domain.ContextSelection {
	var sel domain.ContextSelection
	if maxContextLength <= 0 {
		return sel
	}
	for _, m := range ranked.Matches {
		n := utf8.RuneCountInString(m.Item.Text)
		if sel.ContextLength+n > maxContextLength {
			continue
		}
		sel.Items = append(sel.Items, m)
		sel.ContextLength += n
	}
	sel.TotalResults = len(sel.Items)
	return sel
}

package service

import (
	"cmp"
	"slices"
	"strings"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
)

// SearchSemantics describes the ranking applied by rankItems. It is returned
// verbatim with every search result.
const SearchSemantics = "category match + score=#keyword exact matches (case-insensitive); " +
	"quantity>0; sorted by score desc then net_feedback desc then price asc then item_id asc; " +
	"if no keywords, returns all in category"

type scoredItem struct {
	item  *domain.Item
	score int
}

// rankItems filters items to the category with stock left and orders them
// by score desc, net feedback desc, price asc, then item key asc. With no
// keywords every in-stock item of the category scores 0; otherwise items
// matching none of the keywords are dropped.
func rankItems(items map[domain.ItemKey]*domain.Item, category int, keywords []string) []ports.ItemView {
	query := normalizeKeywords(keywords)

	candidates := make([]scoredItem, 0)
	for _, it := range items {
		if it.Key.Category != category || it.Quantity <= 0 {
			continue
		}
		score := 0
		if len(query) > 0 {
			score = matchScore(query, it.Keywords)
			if score == 0 {
				continue
			}
		}
		candidates = append(candidates, scoredItem{item: it, score: score})
	}

	slices.SortFunc(candidates, func(a, b scoredItem) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		if c := cmp.Compare(b.item.Feedback.Net(), a.item.Feedback.Net()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.item.Price, b.item.Price); c != 0 {
			return c
		}
		return a.item.Key.Compare(b.item.Key)
	})

	out := make([]ports.ItemView, 0, len(candidates))
	for _, c := range candidates {
		v := ports.NewItemView(c.item)
		score := c.score
		v.Score = &score
		out = append(out, v)
	}
	return out
}

// normalizeKeywords trims, lower-cases and drops blank query keywords.
// Duplicates are kept: each occurrence counts toward the score.
func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		out = append(out, strings.ToLower(k))
	}
	return out
}

// matchScore counts query keywords equal to any of the item's keywords,
// ignoring case.
func matchScore(query, itemKeywords []string) int {
	have := make(map[string]struct{}, len(itemKeywords))
	for _, k := range itemKeywords {
		have[strings.ToLower(k)] = struct{}{}
	}
	score := 0
	for _, q := range query {
		if _, ok := have[q]; ok {
			score++
		}
	}
	return score
}

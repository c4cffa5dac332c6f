package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
)

func searchKeys(t *testing.T, s *ProductStore, category int, keywords ...string) ([]domain.ItemKey, []int) {
	t.Helper()
	out, err := s.SearchItemsForSale(context.Background(), ports.SearchInput{Category: ptr(category), Keywords: keywords})
	require.NoError(t, err)
	require.Equal(t, SearchSemantics, out.Semantics)
	keys := make([]domain.ItemKey, 0, len(out.Items))
	scores := make([]int, 0, len(out.Items))
	for _, it := range out.Items {
		keys = append(keys, it.ItemID)
		require.NotNil(t, it.Score)
		scores = append(scores, *it.Score)
	}
	return keys, scores
}

func TestSearch_ScoreAndFilter(t *testing.T) {
	s := newTestProductStore(t, &memSnapshot{})
	red := register(t, s, listing{seller: 1, category: 1, name: "red", keywords: []string{"Red"}, price: 10, qty: 1})
	both := register(t, s, listing{seller: 1, category: 1, name: "both", keywords: []string{"red", "BIG"}, price: 50, qty: 1})
	register(t, s, listing{seller: 1, category: 1, name: "blue", keywords: []string{"blue"}, price: 1, qty: 1})
	register(t, s, listing{seller: 1, category: 1, name: "soldout", keywords: []string{"red", "big"}, price: 1, qty: 0})
	register(t, s, listing{seller: 1, category: 2, name: "elsewhere", keywords: []string{"red"}, price: 1, qty: 1})

	keys, scores := searchKeys(t, s, 1, " RED ", "big", "")
	require.Equal(t, []domain.ItemKey{both, red}, keys)
	require.Equal(t, []int{2, 1}, scores)

	keys, _ = searchKeys(t, s, 1, "green")
	require.Empty(t, keys)
}

func TestSearch_NoKeywordsTieBreaks(t *testing.T) {
	ctx := context.Background()
	s := newTestProductStore(t, &memSnapshot{})
	cheap := register(t, s, listing{seller: 1, category: 5, name: "cheap", price: 1, qty: 1})
	liked := register(t, s, listing{seller: 1, category: 5, name: "liked", price: 99, qty: 1})
	sameA := register(t, s, listing{seller: 1, category: 5, name: "sameA", price: 5, qty: 1})
	sameB := register(t, s, listing{seller: 1, category: 5, name: "sameB", price: 5, qty: 1})
	disliked := register(t, s, listing{seller: 1, category: 5, name: "disliked", price: 0.5, qty: 1})

	_, err := s.ProvideFeedback(ctx, ports.ItemFeedbackInput{ItemID: keyPtr(liked), Vote: domain.VoteUp})
	require.NoError(t, err)
	_, err = s.ProvideFeedback(ctx, ports.ItemFeedbackInput{ItemID: keyPtr(disliked), Vote: domain.VoteDown})
	require.NoError(t, err)

	keys, scores := searchKeys(t, s, 5)
	require.Equal(t, []domain.ItemKey{liked, cheap, sameA, sameB, disliked}, keys)
	require.Equal(t, []int{0, 0, 0, 0, 0}, scores)

	blank, _ := searchKeys(t, s, 5, "  ", "")
	require.Equal(t, keys, blank, "blank keywords behave like none")
}

func TestSearch_Deterministic(t *testing.T) {
	s := newTestProductStore(t, &memSnapshot{})
	for i := range 20 {
		register(t, s, listing{seller: 1, category: 1, name: "x", keywords: []string{"k"}, price: float64(i % 3), qty: 1})
	}

	first, _ := searchKeys(t, s, 1, "k")
	for range 5 {
		again, _ := searchKeys(t, s, 1, "k")
		require.Equal(t, first, again)
	}
}

package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
)

// ProductStore owns the catalog and the buyers' carts. Locking follows
// CustomerStore: one mutex per store, held across read-modify-persist.
type ProductStore struct {
	mu   sync.Mutex
	snap ports.SnapshotStore
	log  zerolog.Logger

	items        map[domain.ItemKey]*domain.Item
	nextSeqByCat map[int]int
	carts        map[int64]*domain.Cart
}

// NewProductStore loads the last snapshot, if any, and returns a ready store.
func NewProductStore(ctx context.Context, snap ports.SnapshotStore, log zerolog.Logger) (*ProductStore, error) {
	s := &ProductStore{
		snap:         snap,
		log:          log,
		items:        make(map[domain.ItemKey]*domain.Item),
		nextSeqByCat: make(map[int]int),
		carts:        make(map[int64]*domain.Cart),
	}

	var raw productSnapshot
	found, err := snap.Load(ctx, &raw)
	if err != nil {
		return nil, fmt.Errorf("load product snapshot: %w", err)
	}
	if found {
		if err := s.restore(raw); err != nil {
			return nil, fmt.Errorf("restore product snapshot: %w", err)
		}
		log.Info().Int("items", len(s.items)).Int("carts", len(s.carts)).Msg("product snapshot loaded")
	}
	return s, nil
}

// RegisterItemForSale validates the listing and assigns the next sequence id
// in its category. Sequence ids are never reused.
func (s *ProductStore) RegisterItemForSale(ctx context.Context, in ports.RegisterItemInput) (*ports.ItemRegistered, error) {
	switch {
	case in.Category == nil:
		return nil, &domain.MissingFieldError{Field: "item_category"}
	case in.Price == nil:
		return nil, &domain.MissingFieldError{Field: "sale_price"}
	case in.Quantity == nil:
		return nil, &domain.MissingFieldError{Field: "quantity"}
	}
	category, price, quantity := *in.Category, *in.Price, *in.Quantity
	if err := domain.ValidateListing(in.Name, in.Keywords, in.Condition, quantity); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.nextSeqByCat[category]
	if !ok {
		seq = 1
	}
	s.nextSeqByCat[category] = seq + 1

	key := domain.ItemKey{Category: category, ID: seq}
	s.items[key] = &domain.Item{
		Key:       key,
		Name:      in.Name,
		Keywords:  append([]string{}, in.Keywords...),
		Condition: in.Condition,
		Price:     price,
		Quantity:  quantity,
		SellerID:  in.SellerID,
	}
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return &ports.ItemRegistered{ItemID: key}, nil
}

// ownedItemLocked returns the item when sellerID owns it.
func (s *ProductStore) ownedItemLocked(sellerID int64, key *domain.ItemKey) (*domain.Item, error) {
	it, err := s.itemLocked(key)
	if err != nil {
		return nil, err
	}
	if it.SellerID != sellerID {
		return nil, domain.ErrNotItemOwner
	}
	return it, nil
}

func (s *ProductStore) itemLocked(key *domain.ItemKey) (*domain.Item, error) {
	if key == nil {
		return nil, domain.ErrItemNotFound
	}
	it, ok := s.items[*key]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return it, nil
}

func (s *ProductStore) ChangeItemPrice(ctx context.Context, in ports.ChangePriceInput) (*ports.PriceChanged, error) {
	if in.NewPrice == nil {
		return nil, &domain.MissingFieldError{Field: "new_price"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.ownedItemLocked(in.SellerID, in.ItemID)
	if err != nil {
		return nil, err
	}
	it.Price = *in.NewPrice
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return &ports.PriceChanged{Updated: true}, nil
}

// UpdateUnitsForSale removes units from the owner's listing and returns what
// is left.
func (s *ProductStore) UpdateUnitsForSale(ctx context.Context, in ports.UpdateUnitsInput) (*ports.UnitsUpdated, error) {
	if in.RemoveQuantity == nil {
		return nil, &domain.MissingFieldError{Field: "remove_quantity"}
	}
	remove := *in.RemoveQuantity

	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.ownedItemLocked(in.SellerID, in.ItemID)
	if err != nil {
		return nil, err
	}
	if remove < 0 {
		return nil, domain.ErrNegativeRemoval
	}
	if remove > it.Quantity {
		return nil, domain.ErrInsufficientQuantity
	}
	it.Quantity -= remove
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return &ports.UnitsUpdated{Updated: true, RemainingQuantity: it.Quantity}, nil
}

func (s *ProductStore) DisplayItemsForSale(_ context.Context, in ports.SellerItemsInput) (*ports.ItemList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := make([]*domain.Item, 0)
	for _, it := range s.items {
		if it.SellerID == in.SellerID {
			owned = append(owned, it)
		}
	}
	slices.SortFunc(owned, func(a, b *domain.Item) int { return a.Key.Compare(b.Key) })

	out := &ports.ItemList{Items: make([]ports.ItemView, 0, len(owned))}
	for _, it := range owned {
		out.Items = append(out.Items, ports.NewItemView(it))
	}
	return out, nil
}

func (s *ProductStore) SearchItemsForSale(_ context.Context, in ports.SearchInput) (*ports.SearchResult, error) {
	if in.Category == nil {
		return nil, &domain.MissingFieldError{Field: "item_category"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return &ports.SearchResult{
		Items:     rankItems(s.items, *in.Category, in.Keywords),
		Semantics: SearchSemantics,
	}, nil
}

func (s *ProductStore) GetItem(_ context.Context, in ports.GetItemInput) (*ports.ItemView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.itemLocked(in.ItemID)
	if err != nil {
		return nil, err
	}
	v := ports.NewItemView(it)
	return &v, nil
}

// cartLocked returns the buyer's cart, creating it on first use.
func (s *ProductStore) cartLocked(buyerID int64) *domain.Cart {
	c, ok := s.carts[buyerID]
	if !ok {
		c = domain.NewCart(buyerID)
		s.carts[buyerID] = c
	}
	return c
}

// AddItemToCart checks current stock only; nothing is reserved.
func (s *ProductStore) AddItemToCart(ctx context.Context, in ports.CartChangeInput) (*ports.CartAdded, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrNonPositiveQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.itemLocked(in.ItemID)
	if err != nil {
		return nil, err
	}
	if it.Quantity <= 0 {
		return nil, domain.ErrItemUnavailable
	}
	cart := s.cartLocked(in.BuyerID)
	if err := cart.Add(it.Key, in.Quantity); err != nil {
		return nil, err
	}
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return &ports.CartAdded{Added: true, CartSize: len(cart.Items)}, nil
}

func (s *ProductStore) RemoveItemFromCart(ctx context.Context, in ports.CartChangeInput) (*ports.CartRemoved, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrNonPositiveQuantity
	}
	if in.ItemID == nil {
		return nil, domain.ErrNotInCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[in.BuyerID]
	if !ok {
		return nil, domain.ErrNotInCart
	}
	if err := cart.Remove(*in.ItemID, in.Quantity); err != nil {
		return nil, err
	}
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return &ports.CartRemoved{Removed: true, CartSize: len(cart.Items)}, nil
}

func (s *ProductStore) SaveCart(ctx context.Context, in ports.BuyerInput) (*ports.CartSaved, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cartLocked(in.BuyerID).Saved = true
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return &ports.CartSaved{Saved: true}, nil
}

func (s *ProductStore) ClearCart(ctx context.Context, in ports.BuyerInput) (*ports.CartCleared, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cartLocked(in.BuyerID).Clear()
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return &ports.CartCleared{Cleared: true}, nil
}

func (s *ProductStore) DisplayCart(_ context.Context, in ports.BuyerInput) (*ports.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := &ports.CartView{Items: []ports.CartEntry{}}
	cart, ok := s.carts[in.BuyerID]
	if !ok {
		return out, nil
	}
	for _, key := range cart.Keys() {
		out.Items = append(out.Items, ports.CartEntry{ItemID: key, Quantity: cart.Items[key]})
	}
	return out, nil
}

// ProvideFeedback records a vote on the item and reports its owner so the
// caller can apply the same vote to the seller.
func (s *ProductStore) ProvideFeedback(ctx context.Context, in ports.ItemFeedbackInput) (*ports.ItemFeedback, error) {
	if !in.Vote.Valid() {
		return nil, domain.ErrInvalidVote
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.itemLocked(in.ItemID)
	if err != nil {
		return nil, err
	}
	it.Feedback.Apply(in.Vote)
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return &ports.ItemFeedback{
		Updated:    true,
		ThumbsUp:   it.Feedback.ThumbsUp,
		ThumbsDown: it.Feedback.ThumbsDown,
		SellerID:   it.SellerID,
	}, nil
}

// LogoutCleanup empties the buyer's cart unless it was saved. Calling it
// again is a no-op.
func (s *ProductStore) LogoutCleanup(ctx context.Context, in ports.BuyerInput) (*ports.CleanupResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[in.BuyerID]
	if !ok || cart.Saved || len(cart.Items) == 0 {
		return &ports.CleanupResult{OK: true}, nil
	}
	cart.Clear()
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return &ports.CleanupResult{OK: true}, nil
}

// --- Snapshot ---

type productSnapshot struct {
	NextItemSeqByCat map[string]int `json:"next_item_seq_by_cat"`
	Items            []*domain.Item `json:"items"`
	Carts            []cartRecord   `json:"carts"`
}

// cartRecord keys quantities by the colon-joined item key.
type cartRecord struct {
	BuyerID int64          `json:"buyer_id"`
	Items   map[string]int `json:"items"`
	Saved   bool           `json:"saved"`
}

func (s *ProductStore) persistLocked(ctx context.Context) error {
	raw := productSnapshot{
		NextItemSeqByCat: make(map[string]int, len(s.nextSeqByCat)),
		Items:            sortedValues(s.items, func(a, b *domain.Item) int { return a.Key.Compare(b.Key) }),
		Carts:            make([]cartRecord, 0, len(s.carts)),
	}
	for cat, seq := range s.nextSeqByCat {
		raw.NextItemSeqByCat[strconv.Itoa(cat)] = seq
	}
	for _, c := range sortedValues(s.carts, func(a, b *domain.Cart) int { return cmp.Compare(a.BuyerID, b.BuyerID) }) {
		rec := cartRecord{BuyerID: c.BuyerID, Items: make(map[string]int, len(c.Items)), Saved: c.Saved}
		for k, q := range c.Items {
			rec.Items[k.String()] = q
		}
		raw.Carts = append(raw.Carts, rec)
	}
	if err := s.snap.Save(ctx, raw); err != nil {
		s.log.Error().Err(err).Msg("product snapshot write failed")
		return &persistError{err: err}
	}
	return nil
}

func (s *ProductStore) restore(raw productSnapshot) error {
	for cat, seq := range raw.NextItemSeqByCat {
		c, err := strconv.Atoi(cat)
		if err != nil {
			return fmt.Errorf("category %q: %w", cat, err)
		}
		s.nextSeqByCat[c] = seq
	}
	for _, it := range raw.Items {
		if it.Keywords == nil {
			it.Keywords = []string{}
		}
		s.items[it.Key] = it
		if s.nextSeqByCat[it.Key.Category] <= it.Key.ID {
			s.nextSeqByCat[it.Key.Category] = it.Key.ID + 1
		}
	}
	for _, rec := range raw.Carts {
		c := domain.NewCart(rec.BuyerID)
		c.Saved = rec.Saved
		for ks, q := range rec.Items {
			k, err := domain.ParseItemKey(ks)
			if err != nil {
				return err
			}
			if q > 0 {
				c.Items[k] = q
			}
		}
		s.carts[rec.BuyerID] = c
	}
	return nil
}

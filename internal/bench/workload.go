// Package bench drives the two frontends with concurrent simulated sellers
// and buyers and reports latency and throughput.
package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
	"github.com/99minutos/marketplace-system/internal/infrastructure/rpcclient"
	"github.com/99minutos/marketplace-system/internal/protocol"
)

// Per-client round counts. A seller round is 4 calls and a buyer round 5, so
// each client issues 1000 calls.
const (
	SellerRounds = 250
	BuyerRounds  = 200
)

type sellerAccount struct {
	ID      int64
	Session string
	Items   []domain.ItemKey
}

type buyerAccount struct {
	ID      int64
	Session string
}

// session issues calls on one connection and records their latency.
type session struct {
	c   rpcclient.Caller
	rec *recorder
	id  string
}

// do sends one call. It reports whether the call succeeded; failures are
// counted as skipped and never stop the workload.
func (s *session) do(ctx context.Context, api protocol.API, role string, payload, out any) bool {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.rec.skip()
		return false
	}
	start := time.Now()
	resp, err := s.c.Call(ctx, &protocol.Request{API: api, Role: role, SessionID: s.id, Payload: raw})
	s.rec.observe(time.Since(start))
	if err != nil || !resp.OK {
		s.rec.skip()
		return false
	}
	if out != nil {
		if err := resp.DecodeData(out); err != nil {
			s.rec.skip()
			return false
		}
	}
	return true
}

func sellerUsername(i int) string { return fmt.Sprintf("seller%d", i) }

func buyerUsername(i int) string { return fmt.Sprintf("buyer%d", i) }

// setupSellers creates (or reuses) n seller accounts, logs each in and lists
// itemsPerSeller items for it. Setup calls are not recorded.
func setupSellers(ctx context.Context, c rpcclient.Caller, n, itemsPerSeller, category int) ([]sellerAccount, error) {
	s := &session{c: c, rec: newRecorder()}
	sellers := make([]sellerAccount, 0, n)
	for i := range n {
		username := sellerUsername(i)
		// An existing account from an earlier run is fine.
		s.do(ctx, protocol.APICreateAccount, protocol.RoleSeller,
			map[string]string{"seller_name": fmt.Sprintf("Seller%d", i), "username": username, "password": "pw"}, nil)

		var login ports.LoginResult
		if !s.do(ctx, protocol.APILogin, protocol.RoleSeller, map[string]string{"username": username, "password": "pw"}, &login) {
			return nil, fmt.Errorf("seller %s login failed", username)
		}

		acct := sellerAccount{ID: login.SellerID, Session: login.SessionID}
		ls := &session{c: c, rec: s.rec, id: login.SessionID}
		for j := range itemsPerSeller {
			var reg ports.ItemRegistered
			ok := ls.do(ctx, protocol.APIRegisterItemForSale, protocol.RoleSeller, map[string]any{
				"item_name":     truncate(fmt.Sprintf("item%d_%d", i, j), domain.MaxNameLength),
				"item_category": category,
				"condition":     domain.ConditionNew,
				"sale_price":    10.0,
				"quantity":      100,
				"keywords": []string{
					truncate(fmt.Sprintf("s%d", login.SellerID), domain.MaxKeywordLength),
					"common",
					truncate(fmt.Sprintf("it%d", j), domain.MaxKeywordLength),
				},
			}, &reg)
			if ok {
				acct.Items = append(acct.Items, reg.ItemID)
			}
		}
		sellers = append(sellers, acct)
	}
	return sellers, nil
}

// setupBuyers creates (or reuses) n buyer accounts and logs each in.
func setupBuyers(ctx context.Context, c rpcclient.Caller, n int) ([]buyerAccount, error) {
	s := &session{c: c, rec: newRecorder()}
	buyers := make([]buyerAccount, 0, n)
	for i := range n {
		username := buyerUsername(i)
		s.do(ctx, protocol.APICreateAccount, protocol.RoleBuyer,
			map[string]string{"buyer_name": fmt.Sprintf("Buyer%d", i), "username": username, "password": "pw"}, nil)

		var login ports.LoginResult
		if !s.do(ctx, protocol.APILogin, protocol.RoleBuyer, map[string]string{"username": username, "password": "pw"}, &login) {
			return nil, fmt.Errorf("buyer %s login failed", username)
		}
		buyers = append(buyers, buyerAccount{ID: login.BuyerID, Session: login.SessionID})
	}
	return buyers, nil
}

// sellerWorkload checks the rating, lists its items and reprices two of them
// each round.
func sellerWorkload(ctx context.Context, s *session, items []domain.ItemKey, rounds int) {
	if len(items) == 0 {
		for range rounds * 2 {
			s.do(ctx, protocol.APIGetSellerRating, protocol.RoleSeller, nil, nil)
			s.do(ctx, protocol.APIDisplayItemsForSale, protocol.RoleSeller, nil, nil)
		}
		return
	}
	for t := range rounds {
		if ctx.Err() != nil {
			return
		}
		s.do(ctx, protocol.APIGetSellerRating, protocol.RoleSeller, nil, nil)
		s.do(ctx, protocol.APIDisplayItemsForSale, protocol.RoleSeller, nil, nil)

		price1, price2 := 10.99, 9.49
		if t%2 == 0 {
			price1, price2 = 9.99, 10.49
		}
		it1 := items[t%len(items)]
		it2 := items[(t+1)%len(items)]
		s.do(ctx, protocol.APIChangeItemPrice, protocol.RoleSeller, map[string]any{"item_id": it1, "new_price": price1}, nil)
		s.do(ctx, protocol.APIChangeItemPrice, protocol.RoleSeller, map[string]any{"item_id": it2, "new_price": price2}, nil)
	}
}

// buyerWorkload searches, inspects an item, adds and removes one unit and
// votes, alternating up and down. A failed search skips the round.
func buyerWorkload(ctx context.Context, s *session, category, pick, rounds int) {
	for t := range rounds {
		if ctx.Err() != nil {
			return
		}
		var found ports.SearchResult
		if !s.do(ctx, protocol.APISearchItemsForSale, protocol.RoleBuyer,
			map[string]any{"item_category": category, "keywords": []string{"common"}}, &found) || len(found.Items) == 0 {
			continue
		}
		it := found.Items[pick%len(found.Items)].ItemID

		s.do(ctx, protocol.APIGetItem, protocol.RoleBuyer, map[string]any{"item_id": it}, nil)
		s.do(ctx, protocol.APIAddItemToCart, protocol.RoleBuyer, map[string]any{"item_id": it, "quantity": 1}, nil)
		s.do(ctx, protocol.APIRemoveItemFromCart, protocol.RoleBuyer, map[string]any{"item_id": it, "quantity": 1}, nil)

		vote := domain.VoteDown
		if t%2 == 0 {
			vote = domain.VoteUp
		}
		s.do(ctx, protocol.APIProvideFeedback, protocol.RoleBuyer, map[string]any{"item_id": it, "vote": vote}, nil)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

package ports

//go:generate mockgen -source=product_service.go -destination=mocks/mock_product_service.go -package=mocks

import (
	"context"

	"github.com/99minutos/marketplace-system/internal/core/domain"
)

// RegisterItemInput lists a new item. SellerID is injected by the seller
// frontend from the validated session. Numeric fields are pointers so that a
// missing field is told apart from an explicit zero.
type RegisterItemInput struct {
	SellerID  int64            `json:"seller_id"`
	Name      string           `json:"item_name" validate:"required"`
	Category  *int             `json:"item_category" validate:"required"`
	Keywords  []string         `json:"keywords"`
	Condition domain.Condition `json:"condition" validate:"required"`
	Price     *float64         `json:"sale_price" validate:"required"`
	Quantity  *int             `json:"quantity" validate:"required"`
}

type ItemRegistered struct {
	ItemID domain.ItemKey `json:"item_id"`
}

type ChangePriceInput struct {
	SellerID int64           `json:"seller_id"`
	ItemID   *domain.ItemKey `json:"item_id" validate:"required"`
	NewPrice *float64        `json:"new_price" validate:"required"`
}

type PriceChanged struct {
	Updated bool `json:"updated"`
}

type UpdateUnitsInput struct {
	SellerID       int64           `json:"seller_id"`
	ItemID         *domain.ItemKey `json:"item_id" validate:"required"`
	RemoveQuantity *int            `json:"remove_quantity" validate:"required"`
}

type UnitsUpdated struct {
	Updated           bool `json:"updated"`
	RemainingQuantity int  `json:"remaining_quantity"`
}

type SellerItemsInput struct {
	SellerID int64 `json:"seller_id"`
}

// ItemView is the wire representation of a catalog item. Score is set only
// on search results.
type ItemView struct {
	ItemID       domain.ItemKey   `json:"item_id"`
	ItemName     string           `json:"item_name"`
	ItemCategory int              `json:"item_category"`
	Keywords     []string         `json:"keywords"`
	Condition    domain.Condition `json:"condition"`
	SalePrice    float64          `json:"sale_price"`
	Quantity     int              `json:"quantity"`
	SellerID     int64            `json:"seller_id"`
	Feedback     domain.Feedback  `json:"feedback"`
	Score        *int             `json:"score,omitempty"`
}

// NewItemView copies it into its wire form.
func NewItemView(it *domain.Item) ItemView {
	kw := make([]string, len(it.Keywords))
	copy(kw, it.Keywords)
	return ItemView{
		ItemID:       it.Key,
		ItemName:     it.Name,
		ItemCategory: it.Key.Category,
		Keywords:     kw,
		Condition:    it.Condition,
		SalePrice:    it.Price,
		Quantity:     it.Quantity,
		SellerID:     it.SellerID,
		Feedback:     it.Feedback,
	}
}

type ItemList struct {
	Items []ItemView `json:"items"`
}

type SearchInput struct {
	Category *int     `json:"item_category" validate:"required"`
	Keywords []string `json:"keywords" validate:"max=5"`
}

// SearchResult is the ranked item list plus a description of the ranking.
type SearchResult struct {
	Items     []ItemView `json:"items"`
	Semantics string     `json:"semantics"`
}

type GetItemInput struct {
	ItemID *domain.ItemKey `json:"item_id" validate:"required"`
}

type CartChangeInput struct {
	BuyerID  int64           `json:"buyer_id"`
	ItemID   *domain.ItemKey `json:"item_id" validate:"required"`
	Quantity int             `json:"quantity"`
}

type CartAdded struct {
	Added    bool `json:"added"`
	CartSize int  `json:"cart_size"`
}

type CartRemoved struct {
	Removed  bool `json:"removed"`
	CartSize int  `json:"cart_size"`
}

// BuyerInput addresses a buyer's cart.
type BuyerInput struct {
	BuyerID int64 `json:"buyer_id"`
}

type CartSaved struct {
	Saved bool `json:"saved"`
}

type CartCleared struct {
	Cleared bool `json:"cleared"`
}

type CartEntry struct {
	ItemID   domain.ItemKey `json:"item_id"`
	Quantity int            `json:"quantity"`
}

type CartView struct {
	Items []CartEntry `json:"items"`
}

type CleanupResult struct {
	OK bool `json:"ok"`
}

type ItemFeedbackInput struct {
	ItemID *domain.ItemKey `json:"item_id" validate:"required"`
	Vote   domain.Vote     `json:"vote"`
}

// ItemFeedback reports the item's counters after a vote and its owner.
// SellerRatingUpdated is filled by the buyer frontend once the vote has been
// propagated (or not) to the seller's aggregate.
type ItemFeedback struct {
	Updated             bool  `json:"updated"`
	ThumbsUp            int   `json:"thumbs_up"`
	ThumbsDown          int   `json:"thumbs_down"`
	SellerID            int64 `json:"seller_id"`
	SellerRatingUpdated *bool `json:"seller_rating_updated,omitempty"`
}

// ProductService is the catalog and cart store contract.
type ProductService interface {
	RegisterItemForSale(ctx context.Context, in RegisterItemInput) (*ItemRegistered, error)
	ChangeItemPrice(ctx context.Context, in ChangePriceInput) (*PriceChanged, error)
	UpdateUnitsForSale(ctx context.Context, in UpdateUnitsInput) (*UnitsUpdated, error)
	DisplayItemsForSale(ctx context.Context, in SellerItemsInput) (*ItemList, error)
	SearchItemsForSale(ctx context.Context, in SearchInput) (*SearchResult, error)
	GetItem(ctx context.Context, in GetItemInput) (*ItemView, error)
	AddItemToCart(ctx context.Context, in CartChangeInput) (*CartAdded, error)
	RemoveItemFromCart(ctx context.Context, in CartChangeInput) (*CartRemoved, error)
	SaveCart(ctx context.Context, in BuyerInput) (*CartSaved, error)
	ClearCart(ctx context.Context, in BuyerInput) (*CartCleared, error)
	DisplayCart(ctx context.Context, in BuyerInput) (*CartView, error)
	ProvideFeedback(ctx context.Context, in ItemFeedbackInput) (*ItemFeedback, error)
	LogoutCleanup(ctx context.Context, in BuyerInput) (*CleanupResult, error)
}

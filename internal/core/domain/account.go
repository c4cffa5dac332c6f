package domain

import "unicode/utf8"

// MaxNameLength bounds display names and item names, in characters.
const MaxNameLength = 32

// Role identifies which namespace an account or session belongs to.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// Valid reports whether r is buyer or seller.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// Vote is a thumbs-up or thumbs-down.
type Vote string

const (
	VoteUp   Vote = "up"
	VoteDown Vote = "down"
)

func (v Vote) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// Feedback counts votes. Counters only ever increase.
type Feedback struct {
	ThumbsUp   int `json:"thumbs_up"`
	ThumbsDown int `json:"thumbs_down"`
}

// Apply increments the counter matching v.
func (f *Feedback) Apply(v Vote) {
	if v == VoteUp {
		f.ThumbsUp++
		return
	}
	f.ThumbsDown++
}

// Net is thumbs-up minus thumbs-down.
func (f Feedback) Net() int {
	return f.ThumbsUp - f.ThumbsDown
}

// Seller is an account allowed to list items.
type Seller struct {
	ID        int64    `json:"seller_id"`
	Name      string   `json:"seller_name"`
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	Feedback  Feedback `json:"feedback"`
	ItemsSold int      `json:"items_sold"`
}

// Buyer is an account allowed to search, fill a cart and vote.
type Buyer struct {
	ID           int64  `json:"buyer_id"`
	Name         string `json:"buyer_name"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	NumPurchased int    `json:"num_purchased"`
}

// ValidName reports whether s fits the display-name limit.
func ValidName(s string) bool {
	return utf8.RuneCountInString(s) <= MaxNameLength
}

package domain

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Listing limits.
const (
	MaxKeywords      = 5
	MaxKeywordLength = 8
)

// Condition of a listed item.
type Condition string

const (
	ConditionNew  Condition = "New"
	ConditionUsed Condition = "Used"
)

func (c Condition) Valid() bool {
	return c == ConditionNew || c == ConditionUsed
}

// ItemKey identifies a catalog entry: the category plus a sequence id that is
// allocated per category starting at 1.
//
// On the wire it is the object {"category": c, "id": n}; the colon-joined
// form "c:n" is accepted on decode and used as a map key in snapshots.
type ItemKey struct {
	Category int `json:"category"`
	ID       int `json:"id"`
}

func (k ItemKey) String() string {
	return strconv.Itoa(k.Category) + ":" + strconv.Itoa(k.ID)
}

// Compare orders keys by category, then sequence id.
func (k ItemKey) Compare(o ItemKey) int {
	if c := cmp.Compare(k.Category, o.Category); c != 0 {
		return c
	}
	return cmp.Compare(k.ID, o.ID)
}

// ParseItemKey parses the colon-joined form produced by String.
func ParseItemKey(s string) (ItemKey, error) {
	cat, id, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return ItemKey{}, fmt.Errorf("%w: %q", ErrInvalidItemKey, s)
	}
	c, err := strconv.Atoi(cat)
	if err != nil {
		return ItemKey{}, fmt.Errorf("%w: %q", ErrInvalidItemKey, s)
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return ItemKey{}, fmt.Errorf("%w: %q", ErrInvalidItemKey, s)
	}
	return ItemKey{Category: c, ID: n}, nil
}

// UnmarshalJSON accepts both the object form and the "c:n" string form.
func (k *ItemKey) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := ParseItemKey(s)
		if err != nil {
			return err
		}
		*k = parsed
		return nil
	}
	type plain ItemKey
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*k = ItemKey(p)
	return nil
}

// Item is a catalog listing owned by one seller.
type Item struct {
	Key       ItemKey   `json:"item_id"`
	Name      string    `json:"item_name"`
	Keywords  []string  `json:"keywords"`
	Condition Condition `json:"condition"`
	Price     float64   `json:"sale_price"`
	Quantity  int       `json:"quantity"`
	SellerID  int64     `json:"seller_id"`
	Feedback  Feedback  `json:"feedback"`
}

// ValidateListing checks the listing rules shared by registration.
func ValidateListing(name string, keywords []string, cond Condition, quantity int) error {
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrItemNameTooLong
	}
	if len(keywords) > MaxKeywords {
		return ErrTooManyKeywords
	}
	for _, kw := range keywords {
		if utf8.RuneCountInString(kw) > MaxKeywordLength {
			return ErrKeywordTooLong
		}
	}
	if !cond.Valid() {
		return ErrInvalidCondition
	}
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// Clone returns a deep copy safe to hand outside the owning store.
func (it *Item) Clone() *Item {
	c := *it
	c.Keywords = make([]string, len(it.Keywords))
	copy(c.Keywords, it.Keywords)
	return &c
}

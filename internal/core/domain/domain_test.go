package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestItemKey_JSONForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want ItemKey
	}{
		{name: "object", in: `{"category":3,"id":7}`, want: ItemKey{Category: 3, ID: 7}},
		{name: "string", in: `"3:7"`, want: ItemKey{Category: 3, ID: 7}},
		{name: "string with spaces", in: `" 12:1 "`, want: ItemKey{Category: 12, ID: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var k ItemKey
			require.NoError(t, json.Unmarshal([]byte(tc.in), &k))
			require.Equal(t, tc.want, k)

			out, err := json.Marshal(k)
			require.NoError(t, err)
			require.JSONEq(t, `{"category":`+itoa(tc.want.Category)+`,"id":`+itoa(tc.want.ID)+`}`, string(out))

			back, err := ParseItemKey(k.String())
			require.NoError(t, err)
			require.Equal(t, k, back)
		})
	}
}

func TestItemKey_InvalidString(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "3", "a:1", "1:b", "1-2"} {
		_, err := ParseItemKey(s)
		require.ErrorIs(t, err, ErrInvalidItemKey, s)
	}
	var k ItemKey
	require.Error(t, json.Unmarshal([]byte(`"x:y"`), &k))
}

func TestItemKey_Compare(t *testing.T) {
	t.Parallel()

	a := ItemKey{Category: 1, ID: 9}
	b := ItemKey{Category: 2, ID: 1}
	c := ItemKey{Category: 2, ID: 3}
	require.Negative(t, a.Compare(b))
	require.Negative(t, b.Compare(c))
	require.Positive(t, c.Compare(a))
	require.Zero(t, c.Compare(c))
}

func TestValidateListing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		itemName string
		keywords []string
		cond     Condition
		qty      int
		wantErr  error
	}{
		{name: "ok", itemName: "widget", keywords: []string{"red"}, cond: ConditionNew, qty: 1},
		{name: "zero quantity", itemName: "widget", cond: ConditionUsed, qty: 0},
		{name: "name too long", itemName: "abcdefghijklmnopqrstuvwxyz0123456", cond: ConditionNew, wantErr: ErrItemNameTooLong},
		{name: "too many keywords", itemName: "w", keywords: []string{"a", "b", "c", "d", "e", "f"}, cond: ConditionNew, wantErr: ErrTooManyKeywords},
		{name: "keyword too long", itemName: "w", keywords: []string{"ninechars"}, cond: ConditionNew, wantErr: ErrKeywordTooLong},
		{name: "bad condition", itemName: "w", cond: "Broken", wantErr: ErrInvalidCondition},
		{name: "negative quantity", itemName: "w", cond: ConditionNew, qty: -1, wantErr: ErrNegativeQuantity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateListing(tc.itemName, tc.keywords, tc.cond, tc.qty)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidName_CountsCharacters(t *testing.T) {
	t.Parallel()

	// 32 two-byte runes is still within the limit.
	name := ""
	for range MaxNameLength {
		name += "é"
	}
	require.True(t, ValidName(name))
	require.False(t, ValidName(name+"x"))
}

func TestCart_AddRemove(t *testing.T) {
	t.Parallel()

	k1 := ItemKey{Category: 1, ID: 1}
	k2 := ItemKey{Category: 1, ID: 2}
	c := NewCart(7)
	c.Saved = true

	require.NoError(t, c.Add(k2, 2))
	require.False(t, c.Saved, "add must clear saved")
	require.NoError(t, c.Add(k1, 1))
	require.Equal(t, []ItemKey{k1, k2}, c.Keys())

	c.Saved = true
	require.ErrorIs(t, c.Remove(k2, 3), ErrExceedsCartQuantity)
	require.True(t, c.Saved, "failed remove must not touch saved")
	require.Equal(t, 2, c.Items[k2])

	require.NoError(t, c.Remove(k2, 2))
	require.False(t, c.Saved)
	_, ok := c.Items[k2]
	require.False(t, ok, "zeroed entry must be deleted")

	require.ErrorIs(t, c.Remove(k2, 1), ErrNotInCart)
	require.ErrorIs(t, c.Add(k1, 0), ErrNonPositiveQuantity)
	require.ErrorIs(t, c.Remove(k1, -1), ErrNonPositiveQuantity)
}

func TestSession_Touch(t *testing.T) {
	t.Parallel()

	const timeout = 5 * time.Minute
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := &Session{ID: "sess_x", UserType: RoleBuyer, UserID: 4, LastActivity: t0, Active: true}

	left, err := s.Touch(t0.Add(timeout-time.Second), timeout)
	require.NoError(t, err)
	require.Equal(t, time.Second, left)
	require.Equal(t, t0.Add(timeout-time.Second), s.LastActivity, "touch refreshes last activity")

	// Still valid relative to the refreshed timestamp.
	_, err = s.Touch(t0.Add(2*timeout-2*time.Second), timeout)
	require.NoError(t, err)

	_, err = s.Touch(s.LastActivity.Add(timeout), timeout)
	var expired *SessionExpiredError
	require.ErrorAs(t, err, &expired)
	require.ErrorIs(t, err, ErrSessionExpired)
	require.Equal(t, RoleBuyer, expired.UserType)
	require.EqualValues(t, 4, expired.UserID)
	require.Equal(t, "Session expired after 5 minutes of inactivity.", expired.Error())
	require.False(t, s.Active)

	// Inactive is terminal.
	_, err = s.Touch(s.LastActivity, timeout)
	require.True(t, errors.Is(err, ErrInvalidSession))
	require.False(t, s.Deactivate())
}

func TestFeedback(t *testing.T) {
	t.Parallel()

	var f Feedback
	f.Apply(VoteUp)
	f.Apply(VoteUp)
	f.Apply(VoteDown)
	require.Equal(t, Feedback{ThumbsUp: 2, ThumbsDown: 1}, f)
	require.Equal(t, 1, f.Net())
	require.False(t, Vote("sideways").Valid())
	require.False(t, Role("admin").Valid())
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

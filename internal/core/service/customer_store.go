package service

import (
	"cmp"
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
)

// DefaultSessionTimeout is the idle period after which a session expires.
const DefaultSessionTimeout = 5 * time.Minute

const purchasesNote = "MakePurchase is not implemented, so purchase history remains empty."

// CustomerStore owns sellers, buyers and sessions. Every exported method holds
// mu for its whole read-modify-persist cycle; helpers suffixed Locked expect
// mu to be held already.
type CustomerStore struct {
	mu       sync.Mutex
	snap     ports.SnapshotStore
	timeout  time.Duration
	now      func() time.Time
	newToken func() (string, error)
	log      zerolog.Logger

	nextSellerID     int64
	nextBuyerID      int64
	sellers          map[int64]*domain.Seller
	buyers           map[int64]*domain.Buyer
	sellerByUsername map[string]int64
	buyerByUsername  map[string]int64
	sessions         map[string]*domain.Session
}

// CustomerOption customises a CustomerStore.
type CustomerOption func(*CustomerStore)

// WithClock replaces time.Now, mainly for session-expiry tests.
func WithClock(now func() time.Time) CustomerOption {
	return func(s *CustomerStore) { s.now = now }
}

// WithTokenGenerator replaces the random session token source.
func WithTokenGenerator(gen func() (string, error)) CustomerOption {
	return func(s *CustomerStore) { s.newToken = gen }
}

// NewCustomerStore loads the last snapshot, if any, and returns a ready store.
func NewCustomerStore(ctx context.Context, snap ports.SnapshotStore, timeout time.Duration, log zerolog.Logger, opts ...CustomerOption) (*CustomerStore, error) {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	s := &CustomerStore{
		snap:             snap,
		timeout:          timeout,
		now:              time.Now,
		newToken:         newSessionToken,
		log:              log,
		nextSellerID:     1,
		nextBuyerID:      1,
		sellers:          make(map[int64]*domain.Seller),
		buyers:           make(map[int64]*domain.Buyer),
		sellerByUsername: make(map[string]int64),
		buyerByUsername:  make(map[string]int64),
		sessions:         make(map[string]*domain.Session),
	}
	for _, opt := range opts {
		opt(s)
	}

	var raw customerSnapshot
	found, err := snap.Load(ctx, &raw)
	if err != nil {
		return nil, fmt.Errorf("load customer snapshot: %w", err)
	}
	if found {
		s.restore(raw)
		log.Info().
			Int("sellers", len(s.sellers)).
			Int("buyers", len(s.buyers)).
			Int("sessions", len(s.sessions)).
			Msg("customer snapshot loaded")
	}
	return s, nil
}

// newSessionToken returns "sess_" followed by 24 random bytes, URL-safe encoded.
func newSessionToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	return "sess_" + base64.RawURLEncoding.EncodeToString(b), nil
}

func (s *CustomerStore) CreateAccount(ctx context.Context, in ports.CreateAccountInput) (*ports.AccountCreated, error) {
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	name, field := in.BuyerName, "buyer_name"
	if in.Role == domain.RoleSeller {
		name, field = in.SellerName, "seller_name"
	}
	if !domain.ValidName(name) {
		return nil, fmt.Errorf("%s %w", field, domain.ErrNameTooLong)
	}
	if in.Username == "" {
		return nil, domain.ErrMissingUsername
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usernameTakenLocked(in.Username) {
		return nil, domain.ErrUsernameTaken
	}

	var out ports.AccountCreated
	switch in.Role {
	case domain.RoleSeller:
		id := s.nextSellerID
		s.nextSellerID++
		s.sellers[id] = &domain.Seller{ID: id, Name: name, Username: in.Username, Password: in.Password}
		s.sellerByUsername[in.Username] = id
		out.SellerID = id
	default:
		id := s.nextBuyerID
		s.nextBuyerID++
		s.buyers[id] = &domain.Buyer{ID: id, Name: name, Username: in.Username, Password: in.Password}
		s.buyerByUsername[in.Username] = id
		out.BuyerID = id
	}
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

// usernameTakenLocked checks both namespaces: a username is unique across
// buyers and sellers.
func (s *CustomerStore) usernameTakenLocked(username string) bool {
	_, seller := s.sellerByUsername[username]
	_, buyer := s.buyerByUsername[username]
	return seller || buyer
}

func (s *CustomerStore) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		userID   int64
		password string
	)
	switch in.Role {
	case domain.RoleSeller:
		id, ok := s.sellerByUsername[in.Username]
		if !ok {
			return nil, domain.ErrUnknownUsername
		}
		userID, password = id, s.sellers[id].Password
	default:
		id, ok := s.buyerByUsername[in.Username]
		if !ok {
			return nil, domain.ErrUnknownUsername
		}
		userID, password = id, s.buyers[id].Password
	}
	if password != in.Password {
		return nil, domain.ErrInvalidPassword
	}

	token, err := s.newToken()
	if err != nil {
		return nil, err
	}
	s.sessions[token] = &domain.Session{
		ID:           token,
		UserType:     in.Role,
		UserID:       userID,
		LastActivity: s.now(),
		Active:       true,
	}
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}

	out := &ports.LoginResult{SessionID: token}
	if in.Role == domain.RoleSeller {
		out.SellerID = userID
	} else {
		out.BuyerID = userID
	}
	return out, nil
}

// Logout deactivates the session. An unknown or already inactive session
// yields LoggedOut=false, not an error.
func (s *CustomerStore) Logout(ctx context.Context, in ports.LogoutInput) (*ports.LogoutResult, error) {
	if in.SessionID == "" {
		return nil, domain.ErrSessionRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[in.SessionID]
	if !ok || !sess.Deactivate() {
		return &ports.LogoutResult{LoggedOut: false}, nil
	}
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return &ports.LogoutResult{LoggedOut: true}, nil
}

// ValidateAndTouchSession is the session state machine entry point. It
// returns the session owner and remaining idle budget for a live session,
// a *domain.SessionExpiredError for one that just timed out, and
// domain.ErrInvalidSession for anything unknown or already inactive.
func (s *CustomerStore) ValidateAndTouchSession(ctx context.Context, in ports.ValidateSessionInput) (*ports.SessionInfo, error) {
	if in.SessionID == "" {
		return nil, domain.ErrSessionRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, left, err := s.touchLocked(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	return &ports.SessionInfo{
		Valid:            true,
		UserType:         sess.UserType,
		UserID:           sess.UserID,
		ExpiresInSeconds: int64(left / time.Second),
	}, nil
}

// touchLocked runs the session transition and persists whatever state change
// it made, including an expiry.
func (s *CustomerStore) touchLocked(ctx context.Context, sessionID string) (*domain.Session, time.Duration, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, 0, domain.ErrInvalidSession
	}
	left, touchErr := sess.Touch(s.now(), s.timeout)
	if errors.Is(touchErr, domain.ErrInvalidSession) {
		return nil, 0, touchErr
	}
	if err := s.persistLocked(ctx); err != nil {
		return nil, 0, err
	}
	if touchErr != nil {
		s.log.Debug().Str("user_type", string(sess.UserType)).Int64("user_id", sess.UserID).Msg("session expired")
		return nil, 0, touchErr
	}
	return sess, left, nil
}

// userIDFromSessionLocked resolves the owner of a live session of the given
// role. Every failure, expiry included, is reported as an invalid session.
func (s *CustomerStore) userIDFromSessionLocked(ctx context.Context, sessionID string, role domain.Role) (int64, error) {
	if sessionID == "" {
		return 0, domain.ErrSessionRequired
	}
	sess, _, err := s.touchLocked(ctx, sessionID)
	if err != nil {
		if isPersistError(err) {
			return 0, err
		}
		return 0, domain.ErrInvalidSession
	}
	if sess.UserType != role {
		return 0, domain.ErrInvalidSession
	}
	return sess.UserID, nil
}

// GetSellerRating reads a seller's counters by explicit id, or resolves the
// seller from a seller session when no id is given.
func (s *CustomerStore) GetSellerRating(ctx context.Context, in ports.SellerRatingInput) (*ports.SellerRating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sellerID int64
	if in.SellerID != nil {
		sellerID = *in.SellerID
	} else {
		id, err := s.userIDFromSessionLocked(ctx, in.SessionID, domain.RoleSeller)
		if err != nil {
			return nil, err
		}
		sellerID = id
	}

	seller, ok := s.sellers[sellerID]
	if !ok {
		return nil, domain.ErrSellerNotFound
	}
	return ratingOf(seller), nil
}

func (s *CustomerStore) UpdateSellerFeedback(ctx context.Context, in ports.SellerFeedbackInput) (*ports.SellerRating, error) {
	if !in.Vote.Valid() {
		return nil, domain.ErrInvalidVote
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seller, ok := s.sellers[in.SellerID]
	if !ok {
		return nil, domain.ErrSellerNotFound
	}
	seller.Feedback.Apply(in.Vote)
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return ratingOf(seller), nil
}

// GetBuyerPurchases checks for a buyer session and returns an empty history.
func (s *CustomerStore) GetBuyerPurchases(ctx context.Context, in ports.BuyerPurchasesInput) (*ports.BuyerPurchases, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userIDFromSessionLocked(ctx, in.SessionID, domain.RoleBuyer); err != nil {
		return nil, err
	}
	return &ports.BuyerPurchases{Purchases: []any{}, Note: purchasesNote}, nil
}

func ratingOf(seller *domain.Seller) *ports.SellerRating {
	return &ports.SellerRating{
		SellerID:   seller.ID,
		ThumbsUp:   seller.Feedback.ThumbsUp,
		ThumbsDown: seller.Feedback.ThumbsDown,
	}
}

// --- Snapshot ---

type customerSnapshot struct {
	NextSellerID int64             `json:"next_seller_id"`
	NextBuyerID  int64             `json:"next_buyer_id"`
	Sellers      []*domain.Seller  `json:"sellers"`
	Buyers       []*domain.Buyer   `json:"buyers"`
	Sessions     []*domain.Session `json:"sessions"`
}

func (s *CustomerStore) persistLocked(ctx context.Context) error {
	raw := customerSnapshot{
		NextSellerID: s.nextSellerID,
		NextBuyerID:  s.nextBuyerID,
		Sellers:      sortedValues(s.sellers, func(a, b *domain.Seller) int { return cmp.Compare(a.ID, b.ID) }),
		Buyers:       sortedValues(s.buyers, func(a, b *domain.Buyer) int { return cmp.Compare(a.ID, b.ID) }),
		Sessions:     sortedValues(s.sessions, func(a, b *domain.Session) int { return cmp.Compare(a.ID, b.ID) }),
	}
	if err := s.snap.Save(ctx, raw); err != nil {
		s.log.Error().Err(err).Msg("customer snapshot write failed")
		return &persistError{err: err}
	}
	return nil
}

func (s *CustomerStore) restore(raw customerSnapshot) {
	s.nextSellerID = max(raw.NextSellerID, 1)
	s.nextBuyerID = max(raw.NextBuyerID, 1)
	for _, seller := range raw.Sellers {
		s.sellers[seller.ID] = seller
		s.sellerByUsername[seller.Username] = seller.ID
		s.nextSellerID = max(s.nextSellerID, seller.ID+1)
	}
	for _, buyer := range raw.Buyers {
		s.buyers[buyer.ID] = buyer
		s.buyerByUsername[buyer.Username] = buyer.ID
		s.nextBuyerID = max(s.nextBuyerID, buyer.ID+1)
	}
	for _, sess := range raw.Sessions {
		s.sessions[sess.ID] = sess
	}
}

func sortedValues[K comparable, V any](m map[K]V, cmpFn func(a, b V) int) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, cmpFn)
	return out
}

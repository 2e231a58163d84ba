// Package client holds the browser-side storefront state: an in-memory cart
// and wishlist mirror that stays usable without a network round-trip per
// interaction, while the server copy is kept from diverging permanently.
//
// Local state is the presentation source of truth; the server is the
// durability source of truth. Every cart mutation applies locally first
// (optimistic) and pushes the full snapshot asynchronously; on login the
// server cart replaces the local one outright.
package client

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/CharlieNndwa/e-commerce-app-v2/catalog"
	"github.com/CharlieNndwa/e-commerce-app-v2/errs"
	"github.com/CharlieNndwa/e-commerce-app-v2/models"
)

// ActionType enumerates the store's state transitions. Every mutation goes
// through dispatch, so the update path stays single and auditable.
type ActionType string

const (
	ActionAddToCart      ActionType = "ADD_TO_CART"
	ActionRemoveFromCart ActionType = "REMOVE_FROM_CART"
	ActionUpdateQuantity ActionType = "UPDATE_QUANTITY"
	ActionSetCart        ActionType = "SET_CART"
	ActionClearCart      ActionType = "CLEAR_CART"
	ActionAddWishlist    ActionType = "ADD_TO_WISHLIST"
	ActionRemoveWishlist ActionType = "REMOVE_FROM_WISHLIST"
	ActionSetWishlist    ActionType = "SET_WISHLIST"
)

type action struct {
	kind      ActionType
	product   catalog.Product
	productID uint
	quantity  int
	cart      []models.CartItem
	wishlist  []models.WishlistItem
}

const persistTimeout = 15 * time.Second

// Store is the application state store. Safe for concurrent use.
type Store struct {
	api *API

	mu       sync.Mutex
	cart     []models.CartItem
	wishlist map[uint]models.WishlistItem
	dirty    bool // local cart has changes the server has not accepted yet

	// At most one snapshot push is in flight at a time. Concurrent pushes
	// could complete out of order and leave the server holding an older
	// snapshot than the one it acknowledged last.
	pushing    bool
	pushQueued bool // cart changed while a push was in flight
	pushIdle   *sync.Cond
}

func NewStore(api *API) *Store {
	s := &Store{
		api:      api,
		wishlist: make(map[uint]models.WishlistItem),
	}
	s.pushIdle = sync.NewCond(&s.mu)
	return s
}

// dispatch is the only place local state changes.
func (s *Store) dispatch(a action) {
	switch a.kind {
	case ActionAddToCart:
		for i := range s.cart {
			if s.cart[i].ProductID == a.product.ID {
				s.cart[i].Quantity += a.quantity
				if s.cart[i].Quantity < 1 {
					s.cart[i].Quantity = 1
				}
				return
			}
		}
		qty := a.quantity
		if qty < 1 {
			qty = 1
		}
		s.cart = append(s.cart, models.CartItem{
			ProductID: a.product.ID,
			Name:      a.product.Title,
			Price:     a.product.Price, // snapshot at add time
			Images:    a.product.Images,
			Quantity:  qty,
			AddedAt:   time.Now(),
		})

	case ActionRemoveFromCart:
		for i := range s.cart {
			if s.cart[i].ProductID == a.productID {
				s.cart = append(s.cart[:i], s.cart[i+1:]...)
				return
			}
		}

	case ActionUpdateQuantity:
		if a.quantity < 1 {
			return
		}
		for i := range s.cart {
			if s.cart[i].ProductID == a.productID {
				s.cart[i].Quantity = a.quantity
				return
			}
		}

	case ActionSetCart:
		s.cart = append([]models.CartItem(nil), a.cart...)

	case ActionClearCart:
		s.cart = nil

	case ActionAddWishlist:
		image := ""
		if len(a.product.Images) > 0 {
			image = a.product.Images[0]
		}
		s.wishlist[a.product.ID] = models.WishlistItem{
			ProductID: a.product.ID,
			Name:      a.product.Title,
			Price:     a.product.Price,
			Image:     image,
			Category:  a.product.Category.Name,
		}

	case ActionRemoveWishlist:
		delete(s.wishlist, a.productID)

	case ActionSetWishlist:
		s.wishlist = make(map[uint]models.WishlistItem, len(a.wishlist))
		for _, item := range a.wishlist {
			s.wishlist[item.ProductID] = item
		}
	}
}

// AddToCart merges into an existing line (quantity floor of 1) or appends a
// new line with the price snapshotted now. The UI sees the change
// immediately; the push to the server happens in the background.
func (s *Store) AddToCart(product catalog.Product, quantity int) {
	s.mu.Lock()
	s.dispatch(action{kind: ActionAddToCart, product: product, quantity: quantity})
	s.schedulePushLocked()
	s.mu.Unlock()
}

// RemoveFromCart is idempotent; removing an absent line changes nothing.
func (s *Store) RemoveFromCart(productID uint) {
	s.mu.Lock()
	s.dispatch(action{kind: ActionRemoveFromCart, productID: productID})
	s.schedulePushLocked()
	s.mu.Unlock()
}

// UpdateQuantity overwrites a line's quantity. Values below 1 are a no-op.
func (s *Store) UpdateQuantity(productID uint, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	s.dispatch(action{kind: ActionUpdateQuantity, productID: productID, quantity: quantity})
	s.schedulePushLocked()
	s.mu.Unlock()
}

// CartLines returns a copy of the local cart.
func (s *Store) CartLines() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subtotal is the display total; the authoritative amount is recomputed
// server-side at checkout.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, line := range s.cart {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// Dirty reports whether the last push failed and the server copy may lag the
// local one.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Login authenticates and REPLACES the local cart with the server's persisted
// copy. Server wins on login; merging would reintroduce duplicate-line
// ambiguity.
func (s *Store) Login(ctx context.Context, email, password string) error {
	_, serverCart, err := s.api.Signin(ctx, email, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.dispatch(action{kind: ActionSetCart, cart: serverCart})
	s.dirty = false
	s.mu.Unlock()
	return nil
}

// SetSession installs a token obtained elsewhere (e.g. federated login) and
// applies the same server-wins cart replacement.
func (s *Store) SetSession(token string, serverCart []models.CartItem) {
	s.api.SetToken(token)

	s.mu.Lock()
	s.dispatch(action{kind: ActionSetCart, cart: serverCart})
	s.dirty = false
	s.mu.Unlock()
}

// Logout clears local state only; the server copy persists for the next
// login.
func (s *Store) Logout() {
	s.api.SetToken("")

	s.mu.Lock()
	s.dispatch(action{kind: ActionClearCart})
	s.dispatch(action{kind: ActionSetWishlist})
	s.dirty = false
	s.mu.Unlock()
}

// Flush synchronously pushes the current cart snapshot. Intended for page
// load and for retrying after a failed background push. Waits for any
// in-flight background push first so snapshots reach the server in order.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	for s.pushing {
		s.pushIdle.Wait()
	}
	s.pushing = true
	s.pushQueued = false
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	err := s.api.SaveCart(ctx, snapshot)

	s.mu.Lock()
	s.dirty = err != nil
	if err == nil && s.pushQueued {
		// A mutation slipped in while we were pushing; the loop keeps the
		// slot and drains it.
		go s.pushLoop()
	} else {
		s.pushing = false
		s.pushIdle.Broadcast()
	}
	s.mu.Unlock()
	return err
}

// schedulePushLocked starts a background push, or queues one if a push is
// already in flight. A single pusher keeps snapshots reaching the server in
// mutation order; overlapping pushes could land out of order and leave the
// server acknowledging a newer snapshot than the one it stored last.
func (s *Store) schedulePushLocked() {
	if s.pushing {
		s.pushQueued = true
		return
	}
	s.pushing = true
	go s.pushLoop()
}

// pushLoop pushes the current snapshot, then again if the cart changed while
// the push was in flight. A failed push keeps the optimistic local state
// (rolling back would be jarring) and flags the store dirty; the next
// mutation or Flush retries with the then-current snapshot.
func (s *Store) pushLoop() {
	for {
		s.mu.Lock()
		s.pushQueued = false
		snapshot := s.snapshotLocked()
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		err := s.api.SaveCart(ctx, snapshot)
		cancel()

		s.mu.Lock()
		s.dirty = err != nil
		again := err == nil && s.pushQueued
		if !again {
			s.pushing = false
			s.pushIdle.Broadcast()
		}
		s.mu.Unlock()

		if err != nil {
			log.Printf("⚠️ Cart sync failed, will retry on next change: %v", err)
			return
		}
		if !again {
			return
		}
	}
}

func (s *Store) snapshotLocked() []models.CartItem {
	return append([]models.CartItem(nil), s.cart...)
}

// AddToWishlist applies optimistically, then asks the server. A 409 means the
// product was already saved server-side; local state is correct either way
// and the conflict is returned for the caller to surface.
func (s *Store) AddToWishlist(ctx context.Context, product catalog.Product) error {
	s.mu.Lock()
	s.dispatch(action{kind: ActionAddWishlist, product: product})
	s.mu.Unlock()

	err := s.api.AddToWishlist(ctx, product.ID)
	if err != nil && !errors.Is(err, errs.ErrConflict) {
		log.Printf("⚠️ Wishlist sync failed: %v", err)
	}
	return err
}

// RemoveFromWishlist removes locally and on the server. The server reports
// NotFound for an absent entry; the local mirror ends up removed either way.
func (s *Store) RemoveFromWishlist(ctx context.Context, productID uint) error {
	s.mu.Lock()
	s.dispatch(action{kind: ActionRemoveWishlist, productID: productID})
	s.mu.Unlock()

	return s.api.RemoveFromWishlist(ctx, productID)
}

// RefreshWishlist replaces the local mirror with the server copy.
func (s *Store) RefreshWishlist(ctx context.Context) error {
	items, err := s.api.Wishlist(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.dispatch(action{kind: ActionSetWishlist, wishlist: items})
	s.mu.Unlock()
	return nil
}

// InWishlist reports whether the product is in the local mirror.
func (s *Store) InWishlist(productID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.wishlist[productID]
	return ok
}

// WishlistItems returns a copy of the local wishlist mirror.
func (s *Store) WishlistItems() []models.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.WishlistItem, 0, len(s.wishlist))
	for _, item := range s.wishlist {
		items = append(items, item)
	}
	return items
}

// Checkout sends the shipping address; the server recomputes the total from
// its persisted cart and returns the provider client secret.
func (s *Store) Checkout(ctx context.Context, addr models.Address) (clientSecret, transactionID string, err error) {
	s.mu.Lock()
	empty := len(s.cart) == 0
	s.mu.Unlock()
	if empty {
		return "", "", errs.ErrInvalidState
	}

	return s.api.Checkout(ctx, addr)
}

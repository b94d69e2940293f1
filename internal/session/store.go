package session

import (
	"sort"
	"strings"
	"sync"
	"time"

	"table-together/internal/catalog"
	"table-together/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Store holds the state of a single session: profile, delivery addresses,
// selected category, cart and favorites. Every method is safe for concurrent
// use; mutations are serialised by the store's own lock and failed calls
// leave the state untouched.
type Store struct {
	id        uuid.UUID
	createdAt time.Time
	catalog   *catalog.Catalog
	observers []Observer
	logger    zerolog.Logger

	mu                sync.RWMutex
	user              model.UserProfile
	addresses         []model.SavedAddress
	selectedAddressID *uuid.UUID
	selectedCategory  model.Category
	cart              []model.CartLine
	favorites         map[string]model.FoodItem
}

// NewStore creates an unauthenticated session over the given catalog.
func NewStore(id uuid.UUID, c *catalog.Catalog, logger zerolog.Logger, observers ...Observer) *Store {
	return &Store{
		id:               id,
		createdAt:        time.Now(),
		catalog:          c,
		observers:        observers,
		logger:           logger.With().Str("component", "session").Str("session_id", id.String()).Logger(),
		selectedCategory: c.DefaultCategory(),
		cart:             make([]model.CartLine, 0),
		favorites:        make(map[string]model.FoodItem),
	}
}

// ID returns the session identifier.
func (s *Store) ID() uuid.UUID {
	return s.id
}

// CreatedAt returns when the session started.
func (s *Store) CreatedAt() time.Time {
	return s.createdAt
}

// Catalog returns the shared catalog.
func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Store) emit(kind EventKind) {
	if len(s.observers) == 0 {
		return
	}
	e := Event{SessionID: s.id, Kind: kind, At: time.Now()}
	for _, o := range s.observers {
		o.Notify(e)
	}
}

// Login sets the profile and marks the session authenticated. The caller is
// trusted to have verified the identity.
func (s *Store) Login(name, email, phone string) {
	s.mu.Lock()
	s.user = model.UserProfile{
		Name:            name,
		Email:           email,
		Phone:           phone,
		IsAuthenticated: true,
	}
	s.mu.Unlock()

	s.logger.Info().Str("email", email).Msg("user logged in")
	s.emit(EventLogin)
}

// Logout clears the profile, including the identity fields.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = model.UserProfile{}
	s.mu.Unlock()

	s.logger.Info().Msg("user logged out")
	s.emit(EventLogout)
}

// UpdateProfile overwrites the identity fields without touching the
// authentication flag.
func (s *Store) UpdateProfile(name, email, phone string) {
	s.mu.Lock()
	s.user.Name = name
	s.user.Email = email
	s.user.Phone = phone
	s.mu.Unlock()

	s.emit(EventProfileUpdated)
}

// CurrentUser returns a copy of the profile.
func (s *Store) CurrentUser() model.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// AddAddress appends a new address, selects it and returns its id.
func (s *Store) AddAddress(in model.AddressInput) (uuid.UUID, error) {
	if err := validateAddress(in); err != nil {
		return uuid.Nil, err
	}

	addr := model.SavedAddress{
		ID:    uuid.New(),
		Label: in.Label,
		State: in.State,
		Line1: in.Line1,
		Apt:   in.Apt,
		City:  in.City,
		Zip:   in.Zip,
	}

	s.mu.Lock()
	s.addresses = append(s.addresses, addr)
	id := addr.ID
	s.selectedAddressID = &id
	s.mu.Unlock()

	s.logger.Debug().Str("address_id", addr.ID.String()).Str("label", addr.Label).Msg("address added")
	s.emit(EventAddressAdded)
	return addr.ID, nil
}

func validateAddress(in model.AddressInput) error {
	required := []struct {
		field string
		value string
	}{
		{"label", in.Label},
		{"state", in.State},
		{"line1", in.Line1},
		{"city", in.City},
		{"zip", in.Zip},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return model.NewValidationError(model.ErrCodeMissingField, "address "+r.field+" is required")
		}
	}
	return nil
}

// SelectAddress makes the saved address with the given id current.
func (s *Store) SelectAddress(id uuid.UUID) error {
	s.mu.Lock()
	found := false
	for _, a := range s.addresses {
		if a.ID == id {
			found = true
			break
		}
	}
	if found {
		s.selectedAddressID = &id
	}
	s.mu.Unlock()

	if !found {
		return model.ErrAddressNotFound
	}
	s.emit(EventAddressSelected)
	return nil
}

// SavedAddresses returns the addresses in the order they were added.
func (s *Store) SavedAddresses() []model.SavedAddress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.SavedAddress{}, s.addresses...)
}

// SelectedAddressID returns the selected address id, or nil when none is set.
func (s *Store) SelectedAddressID() *uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedAddressID == nil {
		return nil
	}
	id := *s.selectedAddressID
	return &id
}

// CurrentAddress returns the selected address.
func (s *Store) CurrentAddress() (model.SavedAddress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedAddressID == nil {
		return model.SavedAddress{}, false
	}
	for _, a := range s.addresses {
		if a.ID == *s.selectedAddressID {
			return a, true
		}
	}
	return model.SavedAddress{}, false
}

// SelectCategory changes the browsed category.
func (s *Store) SelectCategory(name string) error {
	cat, ok := s.catalog.Category(name)
	if !ok {
		return model.ErrCategoryNotFound
	}

	s.mu.Lock()
	s.selectedCategory = cat
	s.mu.Unlock()

	s.emit(EventCategorySelected)
	return nil
}

// SelectedCategory returns the browsed category.
func (s *Store) SelectedCategory() model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedCategory
}

// FoodsInSelectedCategory returns the items of the browsed category in
// catalog order.
func (s *Store) FoodsInSelectedCategory() []model.FoodItem {
	return s.catalog.FoodsInCategory(s.SelectedCategory().Name)
}

// MaxLineQuantity is the most units a single cart line may hold.
const MaxLineQuantity = 999

// AddToCart adds quantity units of food, merging into the existing line for
// an equal item. A line never grows past MaxLineQuantity.
func (s *Store) AddToCart(food model.FoodItem, quantity int) error {
	if quantity < 1 {
		return model.ErrInvalidQuantity
	}
	if quantity > MaxLineQuantity {
		return model.ErrQuantityTooLarge
	}

	s.mu.Lock()
	merged := false
	for i := range s.cart {
		if s.cart[i].Food.Equal(food) {
			if s.cart[i].Quantity > MaxLineQuantity-quantity {
				s.mu.Unlock()
				return model.ErrQuantityTooLarge
			}
			s.cart[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.cart = append(s.cart, model.CartLine{
			ID:       uuid.New(),
			Food:     food,
			Quantity: quantity,
		})
	}
	s.mu.Unlock()

	s.logger.Debug().
		Str("food", food.Name).
		Int("quantity", quantity).
		Bool("merged", merged).
		Msg("added to cart")
	s.emit(EventCartAdded)
	return nil
}

// RemoveFromCart drops the line with the given id. Unknown ids are ignored.
func (s *Store) RemoveFromCart(lineID uuid.UUID) {
	s.mu.Lock()
	removed := false
	for i, line := range s.cart {
		if line.ID == lineID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.emit(EventCartRemoved)
	}
}

// ClearCart empties the cart.
func (s *Store) ClearCart() {
	s.mu.Lock()
	s.cart = make([]model.CartLine, 0)
	s.mu.Unlock()

	s.emit(EventCartCleared)
}

// TakeCart returns the cart with its totals and empties it in one step.
// An empty cart is left alone and reported with ok false.
func (s *Store) TakeCart() (summary model.CartSummary, ok bool) {
	s.mu.Lock()
	if len(s.cart) == 0 {
		s.mu.Unlock()
		return summarise(nil), false
	}
	summary = summarise(s.cart)
	s.cart = make([]model.CartLine, 0)
	s.mu.Unlock()

	s.emit(EventCartCleared)
	return summary, true
}

// Cart returns a copy of the cart lines in insertion order.
func (s *Store) Cart() []model.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.CartLine{}, s.cart...)
}

// CartTotalQuantity returns the sum of all line quantities.
func (s *Store) CartTotalQuantity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return totalQuantity(s.cart)
}

// CartTotalPrice returns the sum of quantity × price over all lines.
func (s *Store) CartTotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return totalPrice(s.cart)
}

// CartSummary returns the lines and both totals under a single lock.
func (s *Store) CartSummary() model.CartSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return summarise(s.cart)
}

func summarise(lines []model.CartLine) model.CartSummary {
	return model.CartSummary{
		Lines:         append([]model.CartLine{}, lines...),
		TotalQuantity: totalQuantity(lines),
		TotalPrice:    totalPrice(lines),
	}
}

func totalQuantity(lines []model.CartLine) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

func totalPrice(lines []model.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ToggleFavorite flips membership of food and returns the new membership.
func (s *Store) ToggleFavorite(food model.FoodItem) bool {
	key := food.Key()

	s.mu.Lock()
	_, present := s.favorites[key]
	if present {
		delete(s.favorites, key)
	} else {
		s.favorites[key] = food
	}
	s.mu.Unlock()

	s.emit(EventFavoriteToggled)
	return !present
}

// IsFavorite reports whether food is a favorite.
func (s *Store) IsFavorite(food model.FoodItem) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favorites[food.Key()]
	return ok
}

// Favorites returns the favorite items sorted by name.
func (s *Store) Favorites() []model.FoodItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedFavorites(s.favorites)
}

func sortedFavorites(set map[string]model.FoodItem) []model.FoodItem {
	foods := make([]model.FoodItem, 0, len(set))
	for _, f := range set {
		foods = append(foods, f)
	}
	sort.Slice(foods, func(i, j int) bool {
		if foods[i].Name != foods[j].Name {
			return foods[i].Name < foods[j].Name
		}
		return foods[i].Key() < foods[j].Key()
	})
	return foods
}

// Snapshot returns a consistent copy of the whole session.
func (s *Store) Snapshot() model.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := model.SessionSnapshot{
		ID:               s.id,
		User:             s.user,
		Addresses:        append([]model.SavedAddress{}, s.addresses...),
		SelectedCategory: s.selectedCategory,
		Cart:             summarise(s.cart),
		Favorites:        sortedFavorites(s.favorites),
	}
	if s.selectedAddressID != nil {
		id := *s.selectedAddressID
		snap.SelectedAddressID = &id
	}
	return snap
}

package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mzohaibq/roomstay/internal/model"
)

// CategoryInfo is what the engine needs to know about a room category to
// admit a booking: the category itself plus whether its property currently
// accepts bookings (property active and vendor approved).
type CategoryInfo struct {
	Category model.RoomCategory
	Currency string
	Bookable bool
}

// Store is the persistence surface the engine depends on.  The production
// implementation lives in internal/repository; tests use an in-memory fake.
type Store interface {
	// RoomCategoryInfo resolves a category with its property's bookable
	// flag, returning ErrRoomCategoryNotFound for unknown ids.
	RoomCategoryInfo(ctx context.Context, id uint64) (*CategoryInfo, error)
	// BookingsInRange returns the non-cancelled bookings of a category
	// whose intervals could intersect [from, to).
	BookingsInRange(ctx context.Context, categoryID uint64, from, to time.Time) ([]model.Booking, error)
	// CreateBooking persists the booking and fills in ID and timestamps.
	CreateBooking(ctx context.Context, b *model.Booking) error
}

// Publisher receives domain events after a successful admission.  Publishing
// is best-effort; failures never abort the request.
type Publisher interface {
	BookingCreated(ctx context.Context, b *model.Booking)
}

// Request carries the customer-supplied admission input.  Deliberately no
// price field: the total is always computed server-side from the category's
// tier and anything the client sends is discarded at the HTTP boundary.
type Request struct {
	RoomCategoryID uint64
	UserID         *uint64 // nil for guest bookings
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  *string
	Guests         uint32
	StayType       string
	StartAt        time.Time
	EndAt          time.Time
	Currency       string
	PaymentMethod  string
}

// Engine orchestrates admission: validate -> resolve category -> availability
// check -> tier pricing -> persist PENDING booking.  A per-category mutex is
// held across resolve/check/insert so that of two concurrent overlapping
// admissions exactly one succeeds and the other observes the conflict.
type Engine struct {
	store     Store
	locks     *KeyedMutex
	publisher Publisher        // optional
	now       func() time.Time // overridable in tests
}

// Option configures an Engine.
type Option func(*Engine)

// WithPublisher attaches an event publisher notified after each admission.
func WithPublisher(p Publisher) Option {
	return func(e *Engine) { e.publisher = p }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine constructs an Engine bound to the given store.
func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		locks: NewKeyedMutex(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Admit runs the admission workflow and returns the created booking.  All
// checks happen before the single committing write, so a failure on any step
// leaves no partial rows.  The operation is not idempotent: resubmitting the
// same payload after a success yields a conflict, not a duplicate.
func (e *Engine) Admit(ctx context.Context, req *Request) (*model.Booking, error) {
	stay, err := ParseStayType(req.StayType)
	if err != nil {
		return nil, err
	}
	if req.CustomerName == "" || req.CustomerEmail == "" {
		return nil, ErrMissingCustomer
	}
	if req.Guests == 0 {
		return nil, ErrInvalidGuests
	}
	if !req.EndAt.After(req.StartAt) {
		return nil, ErrInvalidInterval
	}
	if !req.StartAt.After(e.now()) {
		return nil, ErrStartInPast
	}

	b, err := e.admit(ctx, req, stay)
	if err != nil {
		return nil, err
	}

	// Publishing happens after the per-category lock is released; a slow or
	// unreachable broker must not serialize unrelated admissions.
	if e.publisher != nil {
		e.publisher.BookingCreated(ctx, b)
	}
	return b, nil
}

// admit holds the per-category mutex across resolve, window check and insert.
func (e *Engine) admit(ctx context.Context, req *Request, stay StayType) (*model.Booking, error) {
	unlock := e.locks.Lock(req.RoomCategoryID)
	defer unlock()

	info, err := e.store.RoomCategoryInfo(ctx, req.RoomCategoryID)
	if err != nil {
		return nil, err
	}
	if !info.Bookable {
		return nil, ErrPropertyNotBookable
	}
	if req.Guests > info.Category.MaxGuests {
		return nil, ErrTooManyGuests
	}

	if conflictID, free, err := e.checkWindow(ctx, req.RoomCategoryID, req.StartAt, req.EndAt); err != nil {
		return nil, err
	} else if !free {
		return nil, &ConflictError{BookingID: conflictID}
	}

	total, err := TierPrice(&info.Category, stay)
	if err != nil {
		return nil, err
	}
	currency := req.Currency
	if currency == "" {
		currency = info.Currency
	}
	payment, err := normalizePayment(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	b := &model.Booking{
		Reference:      uuid.NewString(),
		RoomCategoryID: req.RoomCategoryID,
		UserID:         req.UserID,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		Guests:         req.Guests,
		StayType:       string(stay),
		StartAt:        req.StartAt.UTC(),
		EndAt:          req.EndAt.UTC(),
		TotalPrice:     total,
		Currency:       currency,
		PaymentMethod:  payment,
		Status:         model.BookingPending,
	}
	if err := e.store.CreateBooking(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// normalizePayment maps the wire payment method onto the stored enum,
// defaulting to cash.
func normalizePayment(s string) (string, error) {
	switch s {
	case "":
		return "cash", nil
	case "cash", "card", "online":
		return s, nil
	}
	return "", ErrUnknownPaymentMethod
}

// CheckAvailability reports whether [start, end) is free on the given room
// category.  When unavailable, the id of one conflicting booking is
// returned.  The same rules as admission apply: unknown categories fail with
// ErrRoomCategoryNotFound and non-bookable properties with
// ErrPropertyNotBookable.
func (e *Engine) CheckAvailability(ctx context.Context, categoryID uint64, start, end time.Time) (conflictID uint64, available bool, err error) {
	if !end.After(start) {
		return 0, false, ErrInvalidInterval
	}
	info, err := e.store.RoomCategoryInfo(ctx, categoryID)
	if err != nil {
		return 0, false, err
	}
	if !info.Bookable {
		return 0, false, ErrPropertyNotBookable
	}
	id, free, err := e.checkWindow(ctx, categoryID, start, end)
	if err != nil {
		return 0, false, err
	}
	return id, free, nil
}

// checkWindow loads the overlap candidates and applies the half-open rule in
// one place for both admission and the public availability endpoint.
func (e *Engine) checkWindow(ctx context.Context, categoryID uint64, start, end time.Time) (uint64, bool, error) {
	existing, err := e.store.BookingsInRange(ctx, categoryID, start, end)
	if err != nil {
		return 0, false, err
	}
	for i := range existing {
		other := &existing[i]
		if !other.Active() {
			continue
		}
		if Overlaps(start, end, other.StartAt, other.EndAt) {
			return other.ID, false, nil
		}
	}
	return 0, true, nil
}

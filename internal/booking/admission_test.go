package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzohaibq/roomstay/internal/model"
)

// memStore is an in-memory Store for engine tests.
type memStore struct {
	mu     sync.Mutex
	infos  map[uint64]*CategoryInfo
	rows   []model.Booking
	nextID uint64
}

func newMemStore() *memStore {
	return &memStore{infos: make(map[uint64]*CategoryInfo)}
}

func (s *memStore) addCategory(id uint64, maxGuests uint32, bookable bool) {
	s.infos[id] = &CategoryInfo{
		Category: model.RoomCategory{
			ID:        id,
			MaxGuests: maxGuests,
			Price4h:   2000,
			Price6h:   2800,
			Price12h:  4500,
			Price24h:  7000,
		},
		Currency: "PKR",
		Bookable: bookable,
	}
}

func (s *memStore) RoomCategoryInfo(_ context.Context, id uint64) (*CategoryInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.infos[id]
	if !ok {
		return nil, ErrRoomCategoryNotFound
	}
	return info, nil
}

func (s *memStore) BookingsInRange(_ context.Context, categoryID uint64, from, to time.Time) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Booking
	for _, b := range s.rows {
		if b.RoomCategoryID != categoryID || b.Status == model.BookingCancelled {
			continue
		}
		if b.StartAt.Before(to) && b.EndAt.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memStore) CreateBooking(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = s.nextID
	s.rows = append(s.rows, *b)
	return nil
}

func (s *memStore) cancel(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Status = model.BookingCancelled
		}
	}
}

var testNow = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

func testEngine(s *memStore) *Engine {
	return NewEngine(s, WithClock(func() time.Time { return testNow }))
}

func validReq(categoryID uint64, start, end time.Time) *Request {
	return &Request{
		RoomCategoryID: categoryID,
		CustomerName:   "Ali Raza",
		CustomerEmail:  "ali@example.com",
		Guests:         2,
		StayType:       "12h",
		StartAt:        start,
		EndAt:          end,
	}
}

func TestAdmitSuccess(t *testing.T) {
	s := newMemStore()
	s.addCategory(1, 4, true)
	e := testEngine(s)

	b, err := e.Admit(context.Background(), validReq(1, at(10), at(22)))
	require.NoError(t, err)

	assert.NotZero(t, b.ID)
	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, model.BookingPending, b.Status)
	assert.Equal(t, int64(4500), b.TotalPrice, "12h tier")
	assert.Equal(t, "PKR", b.Currency)
	assert.Equal(t, "cash", b.PaymentMethod)
	assert.Nil(t, b.UserID)
}

func TestAdmitValidation(t *testing.T) {
	s := newMemStore()
	s.addCategory(1, 4, true)
	e := testEngine(s)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"unknown stay type", func(r *Request) { r.StayType = "8h" }, ErrUnknownStayType},
		{"empty name", func(r *Request) { r.CustomerName = "" }, ErrMissingCustomer},
		{"empty email", func(r *Request) { r.CustomerEmail = "" }, ErrMissingCustomer},
		{"zero guests", func(r *Request) { r.Guests = 0 }, ErrInvalidGuests},
		{"unknown payment method", func(r *Request) { r.PaymentMethod = "crypto" }, ErrUnknownPaymentMethod},
		{"too many guests", func(r *Request) { r.Guests = 5 }, ErrTooManyGuests},
		{"end equals start", func(r *Request) { r.EndAt = r.StartAt }, ErrInvalidInterval},
		{"end before start", func(r *Request) { r.EndAt = r.StartAt.Add(-time.Hour) }, ErrInvalidInterval},
		{"start in past", func(r *Request) {
			r.StartAt = testNow.Add(-time.Hour)
			r.EndAt = testNow.Add(11 * time.Hour)
		}, ErrStartInPast},
		{"start exactly now", func(r *Request) {
			r.StartAt = testNow
			r.EndAt = testNow.Add(12 * time.Hour)
		}, ErrStartInPast},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validReq(1, at(10), at(22))
			tc.mutate(req)
			_, err := e.Admit(ctx, req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAdmitUnknownCategory(t *testing.T) {
	e := testEngine(newMemStore())
	_, err := e.Admit(context.Background(), validReq(99, at(10), at(22)))
	assert.ErrorIs(t, err, ErrRoomCategoryNotFound)
}

func TestAdmitNotBookable(t *testing.T) {
	s := newMemStore()
	s.addCategory(1, 4, false)
	e := testEngine(s)
	_, err := e.Admit(context.Background(), validReq(1, at(10), at(22)))
	assert.ErrorIs(t, err, ErrPropertyNotBookable)
}

func TestAdmitConflict(t *testing.T) {
	s := newMemStore()
	s.addCategory(1, 4, true)
	e := testEngine(s)
	ctx := context.Background()

	first, err := e.Admit(ctx, validReq(1, at(10), at(22)))
	require.NoError(t, err)

	_, err = e.Admit(ctx, validReq(1, at(12), at(16)))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.ID, conflict.BookingID)

	// Resubmitting the identical window also conflicts; admission is not
	// idempotent.
	_, err = e.Admit(ctx, validReq(1, at(10), at(22)))
	assert.ErrorAs(t, err, &conflict)
}

func TestAdmitTouchingIntervals(t *testing.T) {
	s := newMemStore()
	s.addCategory(1, 4, true)
	e := testEngine(s)
	ctx := context.Background()

	_, err := e.Admit(ctx, validReq(1, at(10), at(14)))
	require.NoError(t, err)

	// [14, 18) touches [10, 14) at the boundary; no conflict.
	req := validReq(1, at(14), at(18))
	req.StayType = "4h"
	b, err := e.Admit(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), b.TotalPrice)
}

func TestAdmitAfterCancellation(t *testing.T) {
	s := newMemStore()
	s.addCategory(1, 4, true)
	e := testEngine(s)
	ctx := context.Background()

	first, err := e.Admit(ctx, validReq(1, at(10), at(22)))
	require.NoError(t, err)

	_, err = e.Admit(ctx, validReq(1, at(10), at(22)))
	require.Error(t, err)

	// Cancelling frees the interval immediately.
	s.cancel(first.ID)

	second, err := e.Admit(ctx, validReq(1, at(10), at(22)))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAdmitPriceSnapshotSurvivesTierEdit(t *testing.T) {
	s := newMemStore()
	s.addCategory(1, 4, true)
	e := testEngine(s)
	ctx := context.Background()

	first, err := e.Admit(ctx, validReq(1, at(10), at(22)))
	require.NoError(t, err)
	require.Equal(t, int64(4500), first.TotalPrice)

	// Raise the 12h tier after admission.  The persisted booking keeps the
	// total it was admitted at.
	s.mu.Lock()
	s.infos[1].Category.Price12h = 9999
	s.mu.Unlock()

	second, err := e.Admit(ctx, validReq(1, at(22), at(34)))
	require.NoError(t, err)
	assert.Equal(t, int64(9999), second.TotalPrice, "new admissions price at the edited tier")

	s.mu.Lock()
	stored := s.rows[0]
	s.mu.Unlock()
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, int64(4500), stored.TotalPrice, "stored total is a snapshot, not a live lookup")
}

func TestAdmitDifferentCategoriesIndependent(t *testing.T) {
	s := newMemStore()
	s.addCategory(1, 4, true)
	s.addCategory(2, 4, true)
	e := testEngine(s)
	ctx := context.Background()

	_, err := e.Admit(ctx, validReq(1, at(10), at(22)))
	require.NoError(t, err)
	_, err = e.Admit(ctx, validReq(2, at(10), at(22)))
	require.NoError(t, err)
}

func TestAdmitConcurrentOverlapExactlyOneWins(t *testing.T) {
	s := newMemStore()
	s.addCategory(1, 4, true)
	e := testEngine(s)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.Admit(context.Background(), validReq(1, at(10), at(22)))
		}(i)
	}
	wg.Wait()

	successes := 0
	conflicts := 0
	for _, err := range errs {
		var conflict *ConflictError
		switch {
		case err == nil:
			successes++
		case assert.ErrorAs(t, err, &conflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)
}

func TestAdmitPublisherNotified(t *testing.T) {
	s := newMemStore()
	s.addCategory(1, 4, true)

	var published []*model.Booking
	pub := publisherFunc(func(_ context.Context, b *model.Booking) {
		published = append(published, b)
	})
	e := NewEngine(s, WithClock(func() time.Time { return testNow }), WithPublisher(pub))

	b, err := e.Admit(context.Background(), validReq(1, at(10), at(22)))
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, b.ID, published[0].ID)
}

func TestAdmitPublishesOutsideCategoryLock(t *testing.T) {
	s := newMemStore()
	s.addCategory(1, 4, true)

	var e *Engine
	lockedDuringPublish := true
	pub := publisherFunc(func(_ context.Context, _ *model.Booking) {
		e.locks.mu.Lock()
		_, lockedDuringPublish = e.locks.locks[1]
		e.locks.mu.Unlock()
	})
	e = NewEngine(s, WithClock(func() time.Time { return testNow }), WithPublisher(pub))

	_, err := e.Admit(context.Background(), validReq(1, at(10), at(22)))
	require.NoError(t, err)
	assert.False(t, lockedDuringPublish, "category mutex must be released before the publisher runs")
}

type publisherFunc func(ctx context.Context, b *model.Booking)

func (f publisherFunc) BookingCreated(ctx context.Context, b *model.Booking) { f(ctx, b) }

func TestCheckAvailability(t *testing.T) {
	s := newMemStore()
	s.addCategory(1, 4, true)
	s.addCategory(2, 4, false)
	e := testEngine(s)
	ctx := context.Background()

	_, free, err := e.CheckAvailability(ctx, 1, at(10), at(22))
	require.NoError(t, err)
	assert.True(t, free)

	b, err := e.Admit(ctx, validReq(1, at(10), at(22)))
	require.NoError(t, err)

	conflictID, free, err := e.CheckAvailability(ctx, 1, at(12), at(16))
	require.NoError(t, err)
	assert.False(t, free)
	assert.Equal(t, b.ID, conflictID)

	_, free, err = e.CheckAvailability(ctx, 1, at(22), at(23))
	require.NoError(t, err)
	assert.True(t, free)

	_, _, err = e.CheckAvailability(ctx, 1, at(10), at(10))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, _, err = e.CheckAvailability(ctx, 9, at(10), at(12))
	assert.ErrorIs(t, err, ErrRoomCategoryNotFound)

	_, _, err = e.CheckAvailability(ctx, 2, at(10), at(12))
	assert.ErrorIs(t, err, ErrPropertyNotBookable)
}

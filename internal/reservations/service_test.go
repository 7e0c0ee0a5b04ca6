package reservations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marina-hms/marina/internal/platform/httpx"
)

type mockRepo struct {
	reservations map[int64]*Reservation
	nextID       int64
	available    bool
	lastExclude  int64
	reviews      map[int64]*Review
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		reservations: make(map[int64]*Reservation),
		reviews:      make(map[int64]*Review),
		nextID:       1,
		available:    true,
	}
}

func (m *mockRepo) List(ctx context.Context) ([]Reservation, error) {
	out := make([]Reservation, 0, len(m.reservations))
	for _, r := range m.reservations {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Reservation, error) {
	r, ok := m.reservations[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *mockRepo) Create(ctx context.Context, input ReservationInput) (*Reservation, error) {
	r := &Reservation{
		ID:         m.nextID,
		CustomerID: input.CustomerID,
		RoomID:     input.RoomID,
		CheckIn:    input.CheckIn,
		CheckOut:   input.CheckOut,
		Adults:     input.Adults,
		Children:   input.Children,
		Status:     StatusPending,
	}
	if input.Status != "" {
		r.Status = input.Status
	}
	m.reservations[r.ID] = r
	m.nextID++
	return r, nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, input ReservationInput) (*Reservation, error) {
	r, ok := m.reservations[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	r.RoomID = input.RoomID
	r.CheckIn = input.CheckIn
	r.CheckOut = input.CheckOut
	if input.Status != "" {
		r.Status = input.Status
	}
	copied := *r
	return &copied, nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	delete(m.reservations, id)
	return nil
}

func (m *mockRepo) Options(ctx context.Context) (*Options, error) {
	return &Options{Statuses: []string{StatusPending, StatusActive, StatusCompleted, StatusCancelled}}, nil
}

func (m *mockRepo) CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut string, excludeID int64) (*Availability, error) {
	m.lastExclude = excludeID
	return &Availability{RoomID: roomID, Available: m.available}, nil
}

func (m *mockRepo) Review(ctx context.Context, id int64) (*Review, error) {
	rev, ok := m.reviews[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return rev, nil
}

func (m *mockRepo) CreateReview(ctx context.Context, id int64, input ReviewInput) (*Review, error) {
	rev := &Review{ReservationID: id, Rating: input.Rating, Comment: input.Comment}
	m.reviews[id] = rev
	return rev, nil
}

func (m *mockRepo) UpdateReview(ctx context.Context, id int64, input ReviewInput) (*Review, error) {
	rev, ok := m.reviews[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	rev.Rating = input.Rating
	rev.Comment = input.Comment
	return rev, nil
}

type fixedRater struct {
	rate float64
	err  error
}

func (f fixedRater) NightlyRate(ctx context.Context, roomID int64) (float64, error) {
	return f.rate, f.err
}

func validInput() ReservationInput {
	return ReservationInput{
		CustomerID: 10,
		RoomID:     3,
		CheckIn:    "2026-07-10",
		CheckOut:   "2026-07-13",
		Adults:     2,
	}
}

func TestCreateReservation(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, fixedRater{rate: 200}, nil, nil)

	created, err := svc.CreateReservation(context.Background(), validInput(), 1)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, int64(0), repo.lastExclude)
}

func TestCreateReservationDefaultsOneAdult(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, fixedRater{rate: 200}, nil, nil)

	input := validInput()
	input.Adults = 0
	created, err := svc.CreateReservation(context.Background(), input, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, created.Adults)
}

func TestCreateReservationRoomTaken(t *testing.T) {
	repo := newMockRepo()
	repo.available = false
	svc := NewService(repo, fixedRater{rate: 200}, nil, nil)

	_, err := svc.CreateReservation(context.Background(), validInput(), 1)
	assert.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestUpdateReservationStatusTransition(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, fixedRater{rate: 200}, nil, nil)

	created, err := svc.CreateReservation(context.Background(), validInput(), 1)
	require.NoError(t, err)

	input := validInput()
	input.Status = StatusActive
	updated, err := svc.UpdateReservation(context.Background(), created.ID, input, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, updated.Status)
	assert.Equal(t, created.ID, repo.lastExclude, "own booking must be excluded from overlap check")

	// pending is behind, can't go back
	input.Status = StatusPending
	_, err = svc.UpdateReservation(context.Background(), created.ID, input, 1)
	assert.True(t, errors.Is(err, httpx.ErrConflict))

	// cancel is always open from non-terminal states
	input.Status = StatusCancelled
	_, err = svc.UpdateReservation(context.Background(), created.ID, input, 1)
	require.NoError(t, err)

	input.Status = StatusActive
	_, err = svc.UpdateReservation(context.Background(), created.ID, input, 1)
	assert.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestQuote(t *testing.T) {
	svc := NewService(newMockRepo(), fixedRater{rate: 200}, nil, nil)

	quote, err := svc.Quote(context.Background(), 3, "2026-07-10", "2026-07-13")
	require.NoError(t, err)
	assert.Equal(t, 3, quote.Nights)
	assert.Equal(t, 600.0, quote.Total)
	assert.True(t, quote.Valid)

	quote, err = svc.Quote(context.Background(), 3, "2026-07-10", "2026-07-10")
	require.NoError(t, err)
	assert.Equal(t, 0.0, quote.Total)
	assert.False(t, quote.Valid)

	_, err = svc.Quote(context.Background(), 0, "2026-07-10", "2026-07-13")
	assert.True(t, errors.Is(err, httpx.ErrValidation))

	_, err = svc.Quote(context.Background(), 3, "bugün", "2026-07-13")
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestCreateReviewRequiresCompletedStay(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, fixedRater{rate: 200}, nil, nil)

	created, err := svc.CreateReservation(context.Background(), validInput(), 1)
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), created.ID, ReviewInput{Rating: 5}, 1)
	assert.True(t, errors.Is(err, httpx.ErrConflict))

	repo.reservations[created.ID].Status = StatusCompleted
	review, err := svc.CreateReview(context.Background(), created.ID, ReviewInput{Rating: 5, Comment: "harika"}, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
}

func TestListReservationsFilter(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, fixedRater{rate: 200}, nil, nil)

	first := validInput()
	_, err := svc.CreateReservation(context.Background(), first, 1)
	require.NoError(t, err)

	second := validInput()
	second.RoomID = 9
	second.CustomerID = 20
	second.Status = StatusActive
	_, err = svc.CreateReservation(context.Background(), second, 1)
	require.NoError(t, err)

	active, err := svc.ListReservations(context.Background(), ListFilter{Status: StatusActive})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, int64(9), active[0].RoomID)

	byCustomer, err := svc.ListReservations(context.Background(), ListFilter{CustomerID: 10})
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)

	all, err := svc.ListReservations(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"flightboard-service/internal/events"
	"flightboard-service/internal/models"
	"flightboard-service/internal/models/dtos"
	"flightboard-service/internal/status"
)

// mockFlightRepository records every call in order, shared with the
// broadcaster through calls, so persist-then-broadcast ordering can be
// asserted.
type mockFlightRepository struct {
	calls *[]string

	getAllFunc         func(ctx context.Context) ([]models.Flight, error)
	getByIDFunc        func(ctx context.Context, id uint) (*models.Flight, error)
	existsByNumberFunc func(ctx context.Context, number string) (bool, error)
	insertFunc         func(ctx context.Context, flight *models.Flight) error
	deleteByIDFunc     func(ctx context.Context, id uint) error
	destinationsFunc   func(ctx context.Context) ([]string, error)
}

func (m *mockFlightRepository) record(call string) {
	if m.calls != nil {
		*m.calls = append(*m.calls, call)
	}
}

func (m *mockFlightRepository) GetAll(ctx context.Context) ([]models.Flight, error) {
	m.record("GetAll")
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockFlightRepository) GetByID(ctx context.Context, id uint) (*models.Flight, error) {
	m.record("GetByID")
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockFlightRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	m.record("ExistsByNumber")
	if m.existsByNumberFunc != nil {
		return m.existsByNumberFunc(ctx, number)
	}
	return false, nil
}

func (m *mockFlightRepository) Insert(ctx context.Context, flight *models.Flight) error {
	m.record("Insert")
	if m.insertFunc != nil {
		return m.insertFunc(ctx, flight)
	}
	flight.ID = 1
	return nil
}

func (m *mockFlightRepository) DeleteByID(ctx context.Context, id uint) error {
	m.record("DeleteByID")
	if m.deleteByIDFunc != nil {
		return m.deleteByIDFunc(ctx, id)
	}
	return nil
}

func (m *mockFlightRepository) DistinctDestinations(ctx context.Context) ([]string, error) {
	m.record("DistinctDestinations")
	if m.destinationsFunc != nil {
		return m.destinationsFunc(ctx)
	}
	return nil, nil
}

// mockBroadcaster appends to the same call log as the repository.
type mockBroadcaster struct {
	calls  *[]string
	events []events.Event
}

func (m *mockBroadcaster) Publish(event events.Event) {
	if m.calls != nil {
		*m.calls = append(*m.calls, "Publish")
	}
	m.events = append(m.events, event)
}

func newServiceWithMocks() (*FlightService, *mockFlightRepository, *mockBroadcaster, *[]string) {
	calls := &[]string{}
	repo := &mockFlightRepository{calls: calls}
	hub := &mockBroadcaster{calls: calls}
	return NewFlightService(repo, hub, nil), repo, hub, calls
}

func futureRequest() dtos.CreateFlightRequest {
	return dtos.CreateFlightRequest{
		FlightNumber:  "LY315",
		Destination:   "Tel Aviv",
		DepartureTime: time.Now().Add(2 * time.Hour),
		Gate:          "A1",
	}
}

func TestAddFlight_PersistThenBroadcast(t *testing.T) {
	svc, _, hub, calls := newServiceWithMocks()

	resp, err := svc.AddFlight(context.Background(), futureRequest())
	if err != nil {
		t.Fatalf("AddFlight failed: %v", err)
	}
	if resp.ID != 1 {
		t.Errorf("expected storage-assigned id 1, got %d", resp.ID)
	}
	if resp.Status != string(status.StageScheduled) {
		t.Errorf("expected Scheduled status for a flight 2h out, got %s", resp.Status)
	}

	want := []string{"ExistsByNumber", "Insert", "Publish"}
	if len(*calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, *calls)
	}
	for i, call := range want {
		if (*calls)[i] != call {
			t.Fatalf("expected calls %v, got %v", want, *calls)
		}
	}

	if len(hub.events) != 1 || hub.events[0].Type != events.EventFlightAdded {
		t.Fatalf("expected exactly one FlightAdded event, got %+v", hub.events)
	}
	if hub.events[0].Flight == nil || hub.events[0].Flight.FlightNumber != "LY315" {
		t.Error("FlightAdded event should carry the persisted record")
	}
}

func TestAddFlight_ValidationFailureTouchesNothing(t *testing.T) {
	svc, _, hub, calls := newServiceWithMocks()

	req := futureRequest()
	req.Gate = "  "

	_, err := svc.AddFlight(context.Background(), req)
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if len(*calls) != 0 {
		t.Errorf("expected no storage or broadcast calls, got %v", *calls)
	}
	if len(hub.events) != 0 {
		t.Errorf("expected no events, got %d", len(hub.events))
	}
}

func TestAddFlight_DuplicateNumberSkipsInsert(t *testing.T) {
	svc, repo, hub, calls := newServiceWithMocks()
	repo.existsByNumberFunc = func(ctx context.Context, number string) (bool, error) {
		return true, nil
	}

	_, err := svc.AddFlight(context.Background(), futureRequest())
	if !errors.Is(err, ErrDuplicateFlightNumber) {
		t.Fatalf("expected ErrDuplicateFlightNumber, got %v", err)
	}

	for _, call := range *calls {
		if call == "Insert" {
			t.Error("Insert must not be called for a duplicate flight number")
		}
	}
	if len(hub.events) != 0 {
		t.Errorf("expected no broadcast, got %d events", len(hub.events))
	}
}

func TestAddFlight_InsertFailureSuppressesBroadcast(t *testing.T) {
	svc, repo, hub, _ := newServiceWithMocks()
	insertErr := errors.New("disk full")
	repo.insertFunc = func(ctx context.Context, flight *models.Flight) error {
		return insertErr
	}

	_, err := svc.AddFlight(context.Background(), futureRequest())
	if !errors.Is(err, insertErr) {
		t.Fatalf("expected insert error to propagate, got %v", err)
	}
	if len(hub.events) != 0 {
		t.Error("no broadcast may be emitted when persistence fails")
	}
}

func TestDeleteFlight_AbsentID(t *testing.T) {
	svc, _, hub, calls := newServiceWithMocks()

	err := svc.DeleteFlight(context.Background(), 99)
	if !errors.Is(err, ErrFlightNotFound) {
		t.Fatalf("expected ErrFlightNotFound, got %v", err)
	}

	for _, call := range *calls {
		if call == "DeleteByID" || call == "Publish" {
			t.Errorf("unexpected call %s for absent flight", call)
		}
	}
	if len(hub.events) != 0 {
		t.Errorf("expected no events, got %d", len(hub.events))
	}
}

func TestDeleteFlight_DeleteThenBroadcast(t *testing.T) {
	svc, repo, hub, calls := newServiceWithMocks()
	repo.getByIDFunc = func(ctx context.Context, id uint) (*models.Flight, error) {
		return &models.Flight{ID: id, FlightNumber: "LY315"}, nil
	}

	if err := svc.DeleteFlight(context.Background(), 7); err != nil {
		t.Fatalf("DeleteFlight failed: %v", err)
	}

	want := []string{"GetByID", "DeleteByID", "Publish"}
	if len(*calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, *calls)
	}
	for i, call := range want {
		if (*calls)[i] != call {
			t.Fatalf("expected calls %v, got %v", want, *calls)
		}
	}

	if len(hub.events) != 1 || hub.events[0].Type != events.EventFlightDeleted {
		t.Fatalf("expected exactly one FlightDeleted event, got %+v", hub.events)
	}
	if hub.events[0].FlightID == nil || *hub.events[0].FlightID != 7 {
		t.Error("FlightDeleted event should carry the deleted id")
	}
}

func TestDeleteFlight_StorageFailureSuppressesBroadcast(t *testing.T) {
	svc, repo, hub, _ := newServiceWithMocks()
	repo.getByIDFunc = func(ctx context.Context, id uint) (*models.Flight, error) {
		return &models.Flight{ID: id}, nil
	}
	deleteErr := errors.New("deadlock detected")
	repo.deleteByIDFunc = func(ctx context.Context, id uint) error {
		return deleteErr
	}

	err := svc.DeleteFlight(context.Background(), 7)
	if !errors.Is(err, deleteErr) {
		t.Fatalf("expected delete error to propagate, got %v", err)
	}
	if len(hub.events) != 0 {
		t.Error("no broadcast may be emitted when the delete fails")
	}
}

func TestListWithStatus_EmptyBoard(t *testing.T) {
	svc, _, _, _ := newServiceWithMocks()

	flights, err := svc.ListWithStatus(context.Background())
	if err != nil {
		t.Fatalf("ListWithStatus failed: %v", err)
	}
	if flights == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(flights) != 0 {
		t.Errorf("expected 0 flights, got %d", len(flights))
	}
}

func TestListWithStatus_DerivesAllStages(t *testing.T) {
	svc, repo, _, _ := newServiceWithMocks()

	now := time.Now()
	repo.getAllFunc = func(ctx context.Context) ([]models.Flight, error) {
		return []models.Flight{
			{ID: 1, FlightNumber: "A1", DepartureTime: now.Add(45 * time.Minute)},
			{ID: 2, FlightNumber: "A2", DepartureTime: now.Add(15 * time.Minute)},
			{ID: 3, FlightNumber: "A3", DepartureTime: now.Add(-15 * time.Minute)},
			{ID: 4, FlightNumber: "A4", DepartureTime: now.Add(-90 * time.Minute)},
		}, nil
	}

	flights, err := svc.ListWithStatus(context.Background())
	if err != nil {
		t.Fatalf("ListWithStatus failed: %v", err)
	}

	want := []string{"Scheduled", "Boarding", "Departed", "Landed"}
	if len(flights) != len(want) {
		t.Fatalf("expected %d flights, got %d", len(want), len(flights))
	}
	for i, f := range flights {
		if f.Status != want[i] {
			t.Errorf("flight %d: expected status %s, got %s", i, want[i], f.Status)
		}
	}
}

func TestListWithStatus_StorageErrorPropagates(t *testing.T) {
	svc, repo, _, _ := newServiceWithMocks()
	storageErr := errors.New("relation does not exist")
	repo.getAllFunc = func(ctx context.Context) ([]models.Flight, error) {
		return nil, storageErr
	}

	_, err := svc.ListWithStatus(context.Background())
	if !errors.Is(err, storageErr) {
		t.Errorf("expected storage error unchanged, got %v", err)
	}
}

func TestSearch_Filters(t *testing.T) {
	svc, repo, _, _ := newServiceWithMocks()

	now := time.Now()
	repo.getAllFunc = func(ctx context.Context) ([]models.Flight, error) {
		return []models.Flight{
			{ID: 1, FlightNumber: "A1", Destination: "New York", DepartureTime: now.Add(45 * time.Minute)},
			{ID: 2, FlightNumber: "A2", Destination: "London", DepartureTime: now.Add(15 * time.Minute)},
			{ID: 3, FlightNumber: "A3", Destination: "New Delhi", DepartureTime: now.Add(10 * time.Minute)},
			{ID: 4, FlightNumber: "A4", Destination: "Paris", DepartureTime: now.Add(-90 * time.Minute)},
		}, nil
	}
	ctx := context.Background()

	// Stage filter is an exact case-insensitive match.
	boarding, err := svc.Search(ctx, "boarding", "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(boarding) != 2 {
		t.Fatalf("expected 2 boarding flights, got %d", len(boarding))
	}
	for _, f := range boarding {
		if f.Status != "Boarding" {
			t.Errorf("expected only Boarding flights, got %s", f.Status)
		}
	}

	// Destination filter is a case-insensitive substring match.
	ny, err := svc.Search(ctx, "", "new")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(ny) != 2 {
		t.Errorf("expected 2 flights matching 'new', got %d", len(ny))
	}

	// Both filters combine.
	both, err := svc.Search(ctx, "BOARDING", "delhi")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(both) != 1 || both[0].FlightNumber != "A3" {
		t.Errorf("expected only A3, got %+v", both)
	}

	// Blank filters pass everything.
	all, err := svc.Search(ctx, "  ", "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected all 4 flights with blank filters, got %d", len(all))
	}
}

func TestDestinations_Cached(t *testing.T) {
	svc, repo, _, _ := newServiceWithMocks()

	queries := 0
	repo.destinationsFunc = func(ctx context.Context) ([]string, error) {
		queries++
		return []string{"London", "Paris"}, nil
	}
	ctx := context.Background()

	first, err := svc.Destinations(ctx)
	if err != nil {
		t.Fatalf("Destinations failed: %v", err)
	}
	second, err := svc.Destinations(ctx)
	if err != nil {
		t.Fatalf("Destinations failed: %v", err)
	}

	if queries != 1 {
		t.Errorf("expected second call to hit the cache, storage queried %d times", queries)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Errorf("unexpected destinations: %v / %v", first, second)
	}
}

func TestAddFlight_InvalidatesDestinationsCache(t *testing.T) {
	svc, repo, _, _ := newServiceWithMocks()

	queries := 0
	repo.destinationsFunc = func(ctx context.Context) ([]string, error) {
		queries++
		return []string{"London"}, nil
	}
	ctx := context.Background()

	if _, err := svc.Destinations(ctx); err != nil {
		t.Fatalf("Destinations failed: %v", err)
	}
	if _, err := svc.AddFlight(ctx, futureRequest()); err != nil {
		t.Fatalf("AddFlight failed: %v", err)
	}
	if _, err := svc.Destinations(ctx); err != nil {
		t.Fatalf("Destinations failed: %v", err)
	}

	if queries != 2 {
		t.Errorf("expected cache invalidation after AddFlight, storage queried %d times", queries)
	}
}

package tests

import (
	"context"
	"errors"
	"testing"

	"ridepool/internal/domain"
	"ridepool/internal/repository/memory"
	"ridepool/internal/service"
)

// ──────────────────────────────────────────────
// 1. OFFERING RIDES
// ──────────────────────────────────────────────

func TestOfferRide_CreatesOpenRide(t *testing.T) {
	store := memory.NewStore()
	rides := service.NewRideService(store.Repositories().Rides, nil)

	ride, err := rides.OfferRide(context.Background(), service.OfferRideRequest{
		DriverID:    "driver-1",
		Origin:      " Pune ",
		Destination: "Mumbai",
		Date:        futureDate(3),
		Time:        "07:15",
		Seats:       3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ride.Status != domain.RideStatusOpen || ride.SeatsAvailable != 3 {
		t.Errorf("unexpected ride: %+v", ride)
	}
	if ride.Origin != "Pune" {
		t.Errorf("expected trimmed origin, got %q", ride.Origin)
	}
	if got := rideSnapshot(t, store, ride.ID); got != *ride {
		t.Errorf("stored ride differs: %+v", got)
	}
}

func TestOfferRide_Validation(t *testing.T) {
	rides := service.NewRideService(memory.NewStore().Repositories().Rides, nil)
	valid := service.OfferRideRequest{
		DriverID: "driver-1", Origin: "A", Destination: "B",
		Date: futureDate(1), Time: "10:00", Seats: 2,
	}

	testCases := []struct {
		name   string
		mutate func(r *service.OfferRideRequest)
		want   error
	}{
		{"missing driver", func(r *service.OfferRideRequest) { r.DriverID = "" }, service.ErrInvalidDriverID},
		{"blank origin", func(r *service.OfferRideRequest) { r.Origin = "  " }, service.ErrInvalidLocation},
		{"no seats", func(r *service.OfferRideRequest) { r.Seats = 0 }, service.ErrInvalidSeatCount},
		{"bad date", func(r *service.OfferRideRequest) { r.Date = "31/12/2030" }, service.ErrInvalidSchedule},
		{"bad time", func(r *service.OfferRideRequest) { r.Time = "25:00" }, service.ErrInvalidSchedule},
		{"in the past", func(r *service.OfferRideRequest) { r.Date = futureDate(-2) }, service.ErrScheduleInPast},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			_, err := rides.OfferRide(context.Background(), req)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSearchRides_FiltersAndRejectsBadDate(t *testing.T) {
	store := memory.NewStore()
	seedRide(t, store, &domain.Ride{ID: "ride-1", DriverID: "driver-1", Origin: "Pune", Destination: "Mumbai", SeatsAvailable: 2})
	seedRide(t, store, &domain.Ride{ID: "ride-2", DriverID: "driver-2", Origin: "Delhi", Destination: "Agra", SeatsAvailable: 2})
	rides := service.NewRideService(store.Repositories().Rides, nil)
	ctx := context.Background()

	list, err := rides.SearchRides(ctx, domain.RideFilter{Origin: "pune"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(list) != 1 || list[0].ID != "ride-1" {
		t.Errorf("expected only ride-1, got %+v", list)
	}

	if _, err := rides.SearchRides(ctx, domain.RideFilter{Date: "tomorrow"}); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}

	mine, err := rides.ListDriverRides(ctx, "driver-2")
	if err != nil {
		t.Fatalf("list driver rides: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != "ride-2" {
		t.Errorf("expected only ride-2, got %+v", mine)
	}
}

func TestGetRide_ReadThroughCache(t *testing.T) {
	store := memory.NewStore()
	seedRide(t, store, &domain.Ride{ID: "ride-1", DriverID: "driver-1", Origin: "A", Destination: "B", SeatsAvailable: 2})
	cache := NewMockRideCache()
	rides := service.NewRideService(store.Repositories().Rides, cache)
	ctx := context.Background()

	if _, err := rides.GetRide(ctx, "ride-1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if !cache.Has("ride-1") {
		t.Fatal("expected ride to be cached after a miss")
	}
	if _, err := rides.GetRide(ctx, "ride-1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if cache.GetCallCount != 2 {
		t.Errorf("expected 2 cache lookups, got %d", cache.GetCallCount)
	}

	if _, err := rides.GetRide(ctx, "missing"); !errors.Is(err, service.ErrRideNotFound) {
		t.Errorf("expected ride not found, got %v", err)
	}
}

func TestGetRide_CacheFillRacingBookingIsDropped(t *testing.T) {
	store := memory.NewStore()
	seedRide(t, store, &domain.Ride{ID: "ride-1", DriverID: "driver-1", Origin: "A", Destination: "B", SeatsAvailable: 2})
	cache := NewMockRideCache()
	repos := store.Repositories()
	bookings := service.NewBookingService(store, repos.Bookings, repos.Rides, cache, 5)
	ctx := context.Background()

	racing := &RacingRides{RideRepository: repos.Rides}
	racing.BetweenReads = func() {
		if _, err := bookings.Book(ctx, service.BookRequest{RideID: "ride-1", PassengerID: "p-1", Seats: 1}); err != nil {
			t.Errorf("book: %v", err)
		}
	}
	rides := service.NewRideService(racing, cache)

	stale, err := rides.GetRide(ctx, "ride-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stale.SeatsAvailable != 2 {
		t.Fatalf("expected the pre-booking read, got %d seats", stale.SeatsAvailable)
	}
	if cache.Has("ride-1") {
		t.Fatal("expected the stale fill to be dropped from the cache")
	}

	fresh, err := rides.GetRide(ctx, "ride-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fresh.SeatsAvailable != 1 {
		t.Errorf("expected 1 seat after the booking, got %d", fresh.SeatsAvailable)
	}
	if !cache.Has("ride-1") {
		t.Error("expected the fresh ride to be cached")
	}
}

// ──────────────────────────────────────────────
// 2. CANCELLING RIDES
// ──────────────────────────────────────────────

func TestCancelRide_NonOwnerLeavesRideUntouched(t *testing.T) {
	store := memory.NewStore()
	seedRide(t, store, &domain.Ride{ID: "ride-1", DriverID: "driver-1", Origin: "A", Destination: "B", SeatsAvailable: 2})
	rides := service.NewRideService(store.Repositories().Rides, nil)

	before := rideSnapshot(t, store, "ride-1")
	_, err := rides.CancelRide(context.Background(), "ride-1", "driver-2")
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if after := rideSnapshot(t, store, "ride-1"); after != before {
		t.Errorf("ride changed: before %+v after %+v", before, after)
	}
}

func TestCancelRide_OwnerCancelsOnce(t *testing.T) {
	store := memory.NewStore()
	seedRide(t, store, &domain.Ride{ID: "ride-1", DriverID: "driver-1", Origin: "A", Destination: "B", SeatsAvailable: 1})
	cache := NewMockRideCache()
	rides := service.NewRideService(store.Repositories().Rides, cache)
	ctx := context.Background()

	ride, err := rides.CancelRide(ctx, "ride-1", "driver-1")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if ride.Status != domain.RideStatusCanceled {
		t.Errorf("expected canceled, got %s", ride.Status)
	}
	if stored := rideSnapshot(t, store, "ride-1"); stored.SeatsAvailable != 1 {
		t.Errorf("expected seats unchanged, got %d", stored.SeatsAvailable)
	}
	if cache.InvalidateCallCount != 1 {
		t.Errorf("expected cache invalidation, got %d", cache.InvalidateCallCount)
	}

	if _, err := rides.CancelRide(ctx, "ride-1", "driver-1"); !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("expected invalid state on second cancel, got %v", err)
	}
}

func TestCancelRide_CompletedRide(t *testing.T) {
	store := memory.NewStore()
	seedRide(t, store, &domain.Ride{ID: "ride-1", DriverID: "driver-1", Origin: "A", Destination: "B", SeatsAvailable: 1, Status: domain.RideStatusCompleted})
	rides := service.NewRideService(store.Repositories().Rides, nil)

	if _, err := rides.CancelRide(context.Background(), "ride-1", "driver-1"); !errors.Is(err, service.ErrRideClosed) {
		t.Errorf("expected ride closed, got %v", err)
	}
	if ride := rideSnapshot(t, store, "ride-1"); ride.Status != domain.RideStatusCompleted {
		t.Errorf("expected completed ride to stay completed, got %s", ride.Status)
	}
}

func TestCancelRide_UnknownRide(t *testing.T) {
	rides := service.NewRideService(memory.NewStore().Repositories().Rides, nil)

	if _, err := rides.CancelRide(context.Background(), "ghost", "driver-1"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"ridepool/internal/domain"
	"ridepool/internal/repository"
)

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
		db.Close()
	})
	return db, mock
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db, mock := newSQLMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := NewUserRepository(db).Create(context.Background(), &domain.User{ID: "u-1", Email: "a@example.com", Role: domain.RoleRider})
	if !errors.Is(err, repository.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := newSQLMock(t)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}).
			AddRow("u-1", "Asha", "a@example.com", "hash", "driver", created))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("b@example.com").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepository(db)
	user, err := repo.GetByEmail(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleDriver || !user.CreatedAt.Equal(created) {
		t.Errorf("unexpected user: %+v", user)
	}

	if _, err := repo.GetByEmail(context.Background(), "b@example.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestVehicleRepository_ListByDriver(t *testing.T) {
	db, mock := newSQLMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM vehicles WHERE driver_id = $1 ORDER BY plate")).
		WithArgs("driver-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "driver_id", "make", "model", "plate", "seats"}).
			AddRow("v-1", "driver-1", "Tata", "Nexon", "MH12AA0001", 4).
			AddRow("v-2", "driver-1", "Maruti", "Swift", "MH12AA0002", 4))

	vehicles, err := NewVehicleRepository(db).ListByDriver(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vehicles) != 2 || vehicles[1].Plate != "MH12AA0002" {
		t.Errorf("unexpected vehicles: %+v", vehicles)
	}
}

func TestRideRequestRepository_ResolveOnlyPending(t *testing.T) {
	db, mock := newSQLMock(t)
	query := regexp.QuoteMeta("UPDATE ride_requests SET status = $3 WHERE id = $1 AND driver_id = $2 AND status = 'pending'")

	mock.ExpectExec(query).WithArgs("rr-1", "driver-1", "accepted").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs("rr-1", "driver-1", "rejected").WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRideRequestRepository(db)
	if ok, err := repo.Resolve(context.Background(), "rr-1", "driver-1", domain.RideRequestStatusAccepted); err != nil || !ok {
		t.Fatalf("expected first resolve to apply, got %v, %v", ok, err)
	}
	if ok, err := repo.Resolve(context.Background(), "rr-1", "driver-1", domain.RideRequestStatusRejected); err != nil || ok {
		t.Errorf("expected second resolve to miss, got %v, %v", ok, err)
	}
}

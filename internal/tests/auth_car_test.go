package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"rentwheels/internal/domain"
	"rentwheels/internal/service"
)

// ──────────────────────────────────────────────
// 8. AUTH
// ──────────────────────────────────────────────

var testSecret = []byte("test-secret")

func newAuthService(users *MockUserRepository) *service.AuthService {
	return service.NewAuthService(users, testSecret, time.Hour)
}

func TestRegister_HashesPassword(t *testing.T) {
	t.Parallel()

	users := NewMockUserRepository()
	auth := newAuthService(users)

	user, err := auth.Register(context.Background(), service.RegisterRequest{
		Name:     "Rhea Renter",
		Email:    "rhea@example.com",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if user.PasswordHash == "" || user.PasswordHash == "hunter2" {
		t.Error("expected password to be stored hashed")
	}
	if user.Role != domain.RoleUser {
		t.Errorf("expected default role user, got %s", user.Role)
	}
}

func TestRegister_AdminRole_Rejected(t *testing.T) {
	t.Parallel()

	users := NewMockUserRepository()
	auth := newAuthService(users)

	_, err := auth.Register(context.Background(), service.RegisterRequest{
		Name:     "Mallory",
		Email:    "mallory@example.com",
		Password: "hunter2",
		Role:     domain.RoleAdmin,
	})
	if !errors.Is(err, service.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got: %v", err)
	}
}

func TestRegister_DuplicateEmail_Rejected(t *testing.T) {
	t.Parallel()

	users := NewMockUserRepository()
	auth := newAuthService(users)

	req := service.RegisterRequest{Name: "Rhea", Email: "rhea@example.com", Password: "hunter2"}
	if _, err := auth.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := auth.Register(context.Background(), req)
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got: %v", err)
	}
}

func TestLogin_ValidCredentials_ReturnsSignedToken(t *testing.T) {
	t.Parallel()

	users := NewMockUserRepository()
	auth := newAuthService(users)

	registered, err := auth.Register(context.Background(), service.RegisterRequest{
		Name:     "Hanna Host",
		Email:    "hanna@example.com",
		Password: "hunter2",
		Role:     domain.RoleHost,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := auth.Login(context.Background(), "hanna@example.com", "hunter2")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %s, got %s", registered.ID, user.ID)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return testSecret, nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("expected a valid token, got: %v", err)
	}

	claims := parsed.Claims.(jwt.MapClaims)
	if claims["id"] != registered.ID {
		t.Errorf("expected id claim %s, got %v", registered.ID, claims["id"])
	}
	if claims["role"] != string(domain.RoleHost) {
		t.Errorf("expected role claim host, got %v", claims["role"])
	}
}

func TestLogin_WrongPassword_Rejected(t *testing.T) {
	t.Parallel()

	users := NewMockUserRepository()
	auth := newAuthService(users)

	if _, err := auth.Register(context.Background(), service.RegisterRequest{
		Name: "Rhea", Email: "rhea@example.com", Password: "hunter2",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := auth.Login(context.Background(), "rhea@example.com", "wrong")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestLogin_UnknownEmail_SameErrorAsWrongPassword(t *testing.T) {
	t.Parallel()

	users := NewMockUserRepository()
	auth := newAuthService(users)

	_, _, err := auth.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// 9. CAR LISTINGS
// ──────────────────────────────────────────────

func TestCreateCar_HostOnly(t *testing.T) {
	t.Parallel()

	cars := NewMockCarRepository()
	svc := service.NewCarService(cars, nil)

	_, err := svc.CreateCar(context.Background(), service.CreateCarRequest{
		OwnerID:     "renter-1",
		OwnerRole:   domain.RoleUser,
		Make:        "Toyota",
		Model:       "Corolla",
		Year:        2021,
		PlateNumber: "KA-01-1234",
		PricePerDay: 50,
	})
	if !errors.Is(err, service.ErrHostOnly) {
		t.Errorf("expected ErrHostOnly, got: %v", err)
	}
}

func TestCreateCar_DuplicatePlate_Rejected(t *testing.T) {
	t.Parallel()

	cars := NewMockCarRepository()
	svc := service.NewCarService(cars, nil)

	req := service.CreateCarRequest{
		OwnerID:     "host-1",
		OwnerRole:   domain.RoleHost,
		Make:        "Toyota",
		Model:       "Corolla",
		Year:        2021,
		PlateNumber: "KA-01-1234",
		PricePerDay: 50,
	}
	if _, err := svc.CreateCar(context.Background(), req); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.CreateCar(context.Background(), req)
	if !errors.Is(err, service.ErrPlateTaken) {
		t.Errorf("expected ErrPlateTaken, got: %v", err)
	}
}

func TestUpdateCar_NonOwner_Rejected(t *testing.T) {
	t.Parallel()

	cars := NewMockCarRepository()
	cars.AddCar(&domain.Car{ID: "car-1", OwnerID: "host-1", Make: "Toyota", Model: "Corolla", Year: 2021, PlateNumber: "KA-01-1234", PricePerDay: 50})
	svc := service.NewCarService(cars, nil)

	_, err := svc.UpdateCar(context.Background(), service.UpdateCarRequest{
		CarID:       "car-1",
		ActorID:     "host-2",
		PricePerDay: 80,
	})
	if !errors.Is(err, service.ErrNotCarOwner) {
		t.Errorf("expected ErrNotCarOwner, got: %v", err)
	}
}

func TestUpdateCar_PartialUpdate_KeepsOtherFields(t *testing.T) {
	t.Parallel()

	cars := NewMockCarRepository()
	cars.AddCar(&domain.Car{ID: "car-1", OwnerID: "host-1", Make: "Toyota", Model: "Corolla", Year: 2021, PlateNumber: "KA-01-1234", PricePerDay: 50})
	svc := service.NewCarService(cars, nil)

	car, err := svc.UpdateCar(context.Background(), service.UpdateCarRequest{
		CarID:       "car-1",
		ActorID:     "host-1",
		PricePerDay: 80,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if car.PricePerDay != 80 {
		t.Errorf("expected price 80, got %v", car.PricePerDay)
	}
	if car.Make != "Toyota" || car.PlateNumber != "KA-01-1234" {
		t.Error("expected untouched fields to survive the update")
	}
}

func TestDeleteCar_NonOwner_Rejected(t *testing.T) {
	t.Parallel()

	cars := NewMockCarRepository()
	cars.AddCar(&domain.Car{ID: "car-1", OwnerID: "host-1", Make: "Toyota", Model: "Corolla", Year: 2021, PlateNumber: "KA-01-1234", PricePerDay: 50})
	svc := service.NewCarService(cars, nil)

	err := svc.DeleteCar(context.Background(), "host-2", "car-1")
	if !errors.Is(err, service.ErrNotCarOwner) {
		t.Errorf("expected ErrNotCarOwner, got: %v", err)
	}
}

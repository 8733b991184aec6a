package domain

import (
	"context"
	"time"
)

// KV is string storage for client-side state. A zero ttl means durable.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Notifier is the user-visible toast channel.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Navigator moves the client to another route (e.g. "/login").
type Navigator interface {
	Navigate(route string)
	Current() string
}

type RoomAPI interface {
	ListRooms(ctx context.Context) ([]Room, error)
	GetRoom(ctx context.Context, id string) (Room, error)
	AvailableRooms(ctx context.Context, start, end Date) ([]Room, error)
	CreateRoom(ctx context.Context, in CreateRoomInput) (Room, error)
	UpdateRoom(ctx context.Context, id string, in UpdateRoomInput) (Room, error)
	DeleteRoom(ctx context.Context, id string) error
	UpdateRoomStatus(ctx context.Context, id string, status RoomStatus) (Room, error)
}

type ServiceAPI interface {
	ListServices(ctx context.Context) ([]Service, error)
	CreateService(ctx context.Context, in CreateServiceInput) (Service, error)
	UpdateService(ctx context.Context, id string, in UpdateServiceInput) (Service, error)
}

type StaffAPI interface {
	ListStaff(ctx context.Context) ([]StaffMember, error)
	CreateStaff(ctx context.Context, in CreateStaffInput) (StaffMember, error)
	UpdateStaff(ctx context.Context, id string, in UpdateStaffInput) (StaffMember, error)
	DisableStaff(ctx context.Context, id string) (StaffMember, error)
	ChangeStaffRole(ctx context.Context, id string, role StaffRole) (StaffMember, error)
}

type RequestAPI interface {
	MyServiceRequests(ctx context.Context) ([]ServiceRequest, error)
}

type BookingAPI interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (Booking, error)
	CreateStaffBooking(ctx context.Context, in StaffBookingInput) (StaffBookingResult, error)
	BookingByConfirmation(ctx context.Context, code string) (Booking, error)
	RegisterGuest(ctx context.Context, in GuestRegistration) (User, error)
}

type AuthAPI interface {
	Login(ctx context.Context, c Credentials) (AuthResult, error)
	Signup(ctx context.Context, in SignupInput) (AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

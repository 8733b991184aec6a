package app_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"luxe_haven/internal/adapters/ui"
	"luxe_haven/internal/app"
	"luxe_haven/internal/domain"
)

type fakeStaff struct {
	list    []domain.StaffMember
	creates int
	roleErr error
}

func (f *fakeStaff) ListStaff(ctx context.Context) ([]domain.StaffMember, error) { return f.list, nil }
func (f *fakeStaff) CreateStaff(ctx context.Context, in domain.CreateStaffInput) (domain.StaffMember, error) {
	f.creates++
	return domain.StaffMember{ID: "m-new", FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Role: in.Role}, nil
}
func (f *fakeStaff) UpdateStaff(ctx context.Context, id string, in domain.UpdateStaffInput) (domain.StaffMember, error) {
	return domain.StaffMember{ID: id, FirstName: *in.FirstName}, nil
}
func (f *fakeStaff) DisableStaff(ctx context.Context, id string) (domain.StaffMember, error) {
	return domain.StaffMember{ID: id, FirstName: "Was"}, nil
}
func (f *fakeStaff) ChangeStaffRole(ctx context.Context, id string, role domain.StaffRole) (domain.StaffMember, error) {
	if f.roleErr != nil {
		return domain.StaffMember{}, f.roleErr
	}
	return domain.StaffMember{ID: id, Role: role}, nil
}

func ptr[T any](v T) *T { return &v }

func TestStaffStore_SearchAndDisable(t *testing.T) {
	ctx := context.Background()
	api := &fakeStaff{list: []domain.StaffMember{
		{ID: "1", FirstName: "Ada", LastName: "Obi", Email: "ada@hotel.test"},
		{ID: "2", FirstName: "Tunde", LastName: "Bello", Email: "tb@hotel.test"},
	}}
	toasts := ui.NewToasts(nop(), 10)
	s := app.NewStaffStore(api, toasts, nop())
	_ = s.Fetch(ctx)

	if got := s.Search("ada obi"); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("search = %+v", got)
	}
	if got := s.Search("TB@"); len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("search = %+v", got)
	}

	m, err := s.Disable(ctx, "2")
	if err != nil || m.IsActive() {
		t.Fatalf("disable: %+v err=%v", m, err)
	}
	if got, _ := s.Find("2"); got.IsActive() {
		t.Fatalf("list not updated")
	}
	if got, _ := s.Find("1"); !got.IsActive() {
		t.Fatalf("unrelated member changed")
	}
	if msgs := messages(toasts.Peek()); msgs[len(msgs)-1] != "Staff member disabled successfully" {
		t.Fatalf("toasts = %v", msgs)
	}
}

func TestStaffStore_CreateValidation(t *testing.T) {
	api := &fakeStaff{}
	s := app.NewStaffStore(api, ui.NewToasts(nop(), 10), nop())

	_, err := s.Create(context.Background(), domain.CreateStaffInput{FirstName: "Ada", LastName: "Obi", Email: "nope", Password: "pw"})
	if domain.UserMessage(err, "") != "Please enter a valid email address" || api.creates != 0 {
		t.Fatalf("unexpected: err=%v creates=%d", err, api.creates)
	}
	m, err := s.Create(context.Background(), domain.CreateStaffInput{FirstName: "Ada", LastName: "Obi", Email: "ada@hotel.test", Password: "pw"})
	if err != nil || m.Role != domain.RoleStaff {
		t.Fatalf("create: %+v err=%v", m, err)
	}
}

func TestStaffStore_UpdateRejectsBlankName(t *testing.T) {
	s := app.NewStaffStore(&fakeStaff{}, ui.NewToasts(nop(), 10), nop())
	_, err := s.Update(context.Background(), "1", domain.UpdateStaffInput{FirstName: ptr(" ")})
	if domain.UserMessage(err, "") != "First name is required" {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestStaffStore_RoleFailureReturnsError(t *testing.T) {
	api := &fakeStaff{roleErr: errors.New("nope")}
	toasts := ui.NewToasts(nop(), 10)
	s := app.NewStaffStore(api, toasts, nop())
	if _, err := s.ChangeRole(context.Background(), "1", domain.RoleAdmin); err == nil {
		t.Fatalf("expected error")
	}
	if msgs := messages(toasts.Peek()); len(msgs) != 1 || msgs[0] != "Failed to update staff role" {
		t.Fatalf("toasts = %v", msgs)
	}
	if _, err := s.ChangeRole(context.Background(), "1", domain.RoleGuest); domain.IsValidationError(err) == nil {
		t.Fatalf("guest role accepted")
	}
}

type countingFetcher struct {
	n   int32
	err error
}

func (c *countingFetcher) Fetch(ctx context.Context) error {
	atomic.AddInt32(&c.n, 1)
	return c.err
}

func TestDashboard_LoadAllIsolatesFailures(t *testing.T) {
	ok1, bad, ok2 := &countingFetcher{}, &countingFetcher{err: errors.New("down")}, &countingFetcher{}
	d := app.NewDashboard(2, nop()).Add("rooms", ok1).Add("staff", bad).Add("services", ok2)

	errs := d.LoadAll(context.Background())
	if len(errs) != 1 || errs["staff"] == nil {
		t.Fatalf("errs = %v", errs)
	}
	if ok1.n != 1 || bad.n != 1 || ok2.n != 1 {
		t.Fatalf("fetch counts: %d %d %d", ok1.n, bad.n, ok2.n)
	}
}

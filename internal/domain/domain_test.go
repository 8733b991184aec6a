package domain_test

import (
	"encoding/json"
	"testing"

	"luxe_haven/internal/domain"
)

func TestFormatPrice(t *testing.T) {
	cases := map[int64]string{
		0:      "0.00",
		5:      "0.05",
		12345:  "123.45",
		20000:  "200.00",
		-1999:  "-19.99",
		100001: "1000.01",
	}
	for in, want := range cases {
		if got := domain.FormatPrice(in); got != want {
			t.Fatalf("FormatPrice(%d) = %q, want %q", in, got, want)
		}
	}
	r := domain.Room{Price: 15050}
	if r.DisplayPrice() != "150.50" {
		t.Fatalf("display price: %s", r.DisplayPrice())
	}
	if domain.ToMinorUnits(89.99) != 8999 {
		t.Fatalf("ToMinorUnits(89.99) = %d", domain.ToMinorUnits(89.99))
	}
}

func TestNights(t *testing.T) {
	in := domain.NewDate(2025, 3, 1)
	out := domain.NewDate(2025, 3, 4)
	if n := domain.Nights(in, out); n != 3 {
		t.Fatalf("nights = %d, want 3", n)
	}
	if n := domain.Nights(out, in); n != 0 {
		t.Fatalf("reversed dates: nights = %d, want 0", n)
	}
	if n := domain.Nights(in, in); n != 0 {
		t.Fatalf("same day: nights = %d, want 0", n)
	}
	if n := domain.Nights(domain.Date{}, out); n != 0 {
		t.Fatalf("missing check-in: nights = %d, want 0", n)
	}

	// partial day rounds up
	late, err := domain.ParseDate("2025-03-02T10:00:00Z")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if n := domain.Nights(in, late); n != 2 {
		t.Fatalf("partial day: nights = %d, want 2", n)
	}
}

func TestRoomDisplayAndStatus(t *testing.T) {
	r := domain.Room{Number: 204, Alphabet: "B", Category: domain.CategoryDeluxe, Status: domain.RoomAvailable}
	if r.DisplayName() != "Deluxe Room B204" {
		t.Fatalf("display name: %s", r.DisplayName())
	}
	if r.DeskStatus() != domain.DeskAvailable {
		t.Fatalf("desk status: %s", r.DeskStatus())
	}
	r.IsBooked = true
	if r.DeskStatus() != domain.DeskOccupied {
		t.Fatalf("booked room should be occupied")
	}
	r.IsBooked = false
	r.Status = domain.RoomUnserviceable
	if r.DeskStatus() != domain.DeskMaintenance {
		t.Fatalf("unserviceable room should show maintenance")
	}
	if domain.RoomStatusFromDesk(domain.DeskCleaning) != domain.RoomAvailable {
		t.Fatalf("cleaning maps to available")
	}
	odd := domain.Room{Number: 1, Alphabet: "Z", Category: "penthouse"}
	if odd.DisplayName() != "penthouse Z1" {
		t.Fatalf("unknown category name: %s", odd.DisplayName())
	}
}

func TestRoomMatchesQuery(t *testing.T) {
	r := domain.Room{Number: 101, Alphabet: "A", Category: domain.CategorySuite}
	for _, q := range []string{"", "10", "a", "SUITE", "a101"} {
		if !r.MatchesQuery(q) {
			t.Fatalf("expected match for %q", q)
		}
	}
	if r.MatchesQuery("xyz") {
		t.Fatalf("unexpected match for xyz")
	}
}

func TestBookingDecode_RefsAndDates(t *testing.T) {
	raw := `{
		"_id":"b1","confirmationCode":"LH-42",
		"room":{"_id":"r1","number":12,"alphabet":"C","category":"suite"},
		"user":"u9",
		"startDate":"2025-03-01T00:00:00.000Z","endDate":"2025-03-04",
		"totalPrice":60000,"status":"confirmed"
	}`
	var b domain.Booking
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.Room.ID != "r1" || b.Room.DisplayName() != "Suite C12" {
		t.Fatalf("room ref: %+v", b.Room)
	}
	if b.User.ID != "u9" {
		t.Fatalf("user ref: %+v", b.User)
	}
	if b.Nights() != 3 {
		t.Fatalf("nights = %d", b.Nights())
	}
	out, err := json.Marshal(domain.StagedBooking{CheckIn: b.StartDate})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var back map[string]any
	_ = json.Unmarshal(out, &back)
	if back["checkIn"] != "2025-03-01" {
		t.Fatalf("date encoding: %v", back["checkIn"])
	}
}

func TestValidationError(t *testing.T) {
	v := domain.NewValidationError()
	if v.Err() != nil {
		t.Fatalf("empty validation error should be nil")
	}
	v.Add("firstName", "First name and last name are required")
	v.Add("nin", "NIN is required")
	err := v.Err()
	ve := domain.IsValidationError(err)
	if ve == nil || ve.Message() != "First name and last name are required" {
		t.Fatalf("unexpected: %v", err)
	}
	if len(ve.Fields()) != 2 {
		t.Fatalf("fields: %v", ve.Fields())
	}
}

func TestStaffAndServiceLabels(t *testing.T) {
	s := domain.StaffMember{FirstName: "Ada", LastName: "Obi", Email: "ada@haven.test", Role: domain.RoleSuperAdmin}
	if s.Role.Label() != "Admin" || !s.IsActive() {
		t.Fatalf("staff labels: %s %v", s.Role.Label(), s.IsActive())
	}
	if !s.MatchesQuery("ada obi") || !s.MatchesQuery("HAVEN") || s.MatchesQuery("zed") {
		t.Fatalf("staff search mismatch")
	}
	svc := domain.Service{Category: domain.ServiceRoomService}
	if svc.Category.Label() != "Room Service" || svc.Duration().Minutes() != 30 {
		t.Fatalf("service labels: %s %v", svc.Category.Label(), svc.Duration())
	}
	req := domain.ServiceRequest{Type: "towels"}
	if req.ServiceName() != "towels" || req.DescriptionOrDefault() != "No description" {
		t.Fatalf("request fallbacks")
	}
}

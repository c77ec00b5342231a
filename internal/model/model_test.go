package model

import (
	"errors"
	"testing"

	pkgerrors "github.com/tomboulier/choix-stage-desar/pkg/errors"
)

func TestDuration_Months(t *testing.T) {
	quarter := &Rotation{Title: "stage 3 mois", Duration: DurationQuarter}
	halfYear := &Rotation{Title: "stage 6 mois", Duration: DurationHalfYear}

	if m, err := quarter.Months(); err != nil || m != 3 {
		t.Errorf("expected 3 months, got %d (%v)", m, err)
	}
	if m, err := halfYear.Months(); err != nil || m != 6 {
		t.Errorf("expected 6 months, got %d (%v)", m, err)
	}
}

func TestDuration_Months_InvalidState(t *testing.T) {
	for _, d := range []Duration{"", "trimestre", "year"} {
		r := &Rotation{Title: "corrupt", Duration: d}
		_, err := r.Months()
		if !errors.Is(err, pkgerrors.ErrInvalidState) {
			t.Errorf("duration %q: expected ErrInvalidState, got %v", d, err)
		}
		if d.Valid() {
			t.Errorf("duration %q should not be valid", d)
		}
	}
}

func TestDurations_AllValid(t *testing.T) {
	for _, d := range Durations {
		if !d.Valid() {
			t.Errorf("duration %q should be valid", d)
		}
	}
}

func TestRotation_AvailableSlots(t *testing.T) {
	r := &Rotation{Title: "R1", Duration: DurationQuarter, TotalSlots: 3}

	cases := []struct {
		assigned  int64
		available int
		open      bool
	}{
		{0, 3, true},
		{2, 1, true},
		{3, 0, false},
		{4, -1, false},
	}
	for _, tc := range cases {
		if got := r.AvailableSlots(tc.assigned); got != tc.available {
			t.Errorf("assigned=%d: expected %d available, got %d", tc.assigned, tc.available, got)
		}
		if got := r.IsAvailable(tc.assigned); got != tc.open {
			t.Errorf("assigned=%d: expected IsAvailable=%v", tc.assigned, tc.open)
		}
	}
}

func TestIntern_BeforeCreate(t *testing.T) {
	i := &Intern{FirstName: "Interne", LastName: "1"}
	if err := i.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate: %v", err)
	}
	if i.LookupToken == "" {
		t.Fatal("expected a lookup token to be generated")
	}

	other := &Intern{FirstName: "Interne", LastName: "2"}
	_ = other.BeforeCreate(nil)
	if other.LookupToken == i.LookupToken {
		t.Error("expected distinct tokens")
	}

	preset := &Intern{LookupToken: "11111111-1111-4111-8111-111111111111"}
	_ = preset.BeforeCreate(nil)
	if preset.LookupToken != "11111111-1111-4111-8111-111111111111" {
		t.Error("expected preset token to be kept")
	}
}

func TestIntern_FullName(t *testing.T) {
	i := &Intern{FirstName: "Jeanne", LastName: "Martin"}
	if i.FullName() != "Jeanne Martin" {
		t.Errorf("unexpected full name %q", i.FullName())
	}
	if (&Intern{LastName: "Martin"}).FullName() != "Martin" {
		t.Error("expected surrounding spaces trimmed")
	}
}

func TestAssignment_String(t *testing.T) {
	a := &Assignment{
		AssignmentID: "a-1",
		Intern:       &Intern{FirstName: "Interne", LastName: "1"},
		Rotation:     &Rotation{Title: "Bloc des urgences"},
	}
	if a.String() != "Interne 1 chose Bloc des urgences" {
		t.Errorf("unexpected %q", a.String())
	}
	if (&Assignment{AssignmentID: "a-2"}).String() != "a-2" {
		t.Error("expected id fallback without relations")
	}
}

package service

import (
	"context"
	"fmt"

	"github.com/Carma123/Mental-Health-Support-System/internal"
	"github.com/Carma123/Mental-Health-Support-System/internal/api"
)

// slotKey is the composite key testing booking collision. It must match how
// keys are derived from the bookings collection, string therapist id and
// all.
func slotKey(therapistID, day, slot string) string {
	return fmt.Sprintf("%s_%s_%s", therapistID, day, slot)
}

// SlotStatus is one slot of a therapist's day as the directory renders it.
type SlotStatus struct {
	Slot   string
	Booked bool
}

// Directory holds the therapist catalogue and, independently, the set of
// slots the user has already booked. The two collections are fetched
// separately; either may be present without the other and the page renders
// with partial data.
type Directory struct {
	listState
	client       *api.Client
	logger       internal.Logger
	therapists   []internal.Therapist
	booked       map[string]bool
	selectedDays map[int]string
}

func NewDirectory(client *api.Client, logger internal.Logger) *Directory {
	return &Directory{
		client:       client,
		logger:       logger,
		booked:       make(map[string]bool),
		selectedDays: make(map[int]string),
	}
}

// Refresh fetches the therapist catalogue. Does not require a session.
func (d *Directory) Refresh(ctx context.Context) error {
	d.startLoading()
	defer d.stopLoading()

	therapists, err := d.client.ListTherapists(ctx)
	if err != nil {
		d.logger.Errorf("therapists: refresh failed: %v", err)
		d.setError("Failed to load therapists.")
		return err
	}

	d.mu.Lock()
	d.therapists = therapists
	d.mu.Unlock()
	return nil
}

// RefreshBookings re-derives the booked-slot set from the user's bookings.
func (d *Directory) RefreshBookings(ctx context.Context) error {
	bookings, err := d.client.ListBookings(ctx)
	if err != nil {
		d.logger.Errorf("therapists: booking refresh failed: %v", err)
		d.setError("Failed to load your bookings.")
		return err
	}

	booked := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		booked[slotKey(fmt.Sprintf("%d", b.TherapistID), b.Day, b.Slot)] = true
	}

	d.mu.Lock()
	d.booked = booked
	d.mu.Unlock()
	return nil
}

func (d *Directory) Therapists() []internal.Therapist {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]internal.Therapist, len(d.therapists))
	copy(out, d.therapists)
	return out
}

// SelectDay picks the day whose slots are shown for a therapist.
func (d *Directory) SelectDay(therapistID int, day string) {
	d.mu.Lock()
	d.selectedDays[therapistID] = day
	d.mu.Unlock()
}

func (d *Directory) SelectedDay(therapistID int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selectedDays[therapistID]
}

// IsBooked reports whether the composite key for this slot is in the
// derived set.
func (d *Directory) IsBooked(therapistID int, day, slot string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.booked[slotKey(fmt.Sprintf("%d", therapistID), day, slot)]
}

// SlotsFor lists the therapist's slots for their selected day, each marked
// booked or available. No day selected means no slots to offer.
func (d *Directory) SlotsFor(therapistID int) []SlotStatus {
	d.mu.Lock()
	defer d.mu.Unlock()

	day := d.selectedDays[therapistID]
	if day == "" {
		return nil
	}
	for _, t := range d.therapists {
		if t.ID != therapistID {
			continue
		}
		for _, a := range t.Availability {
			if a.Day != day {
				continue
			}
			out := make([]SlotStatus, 0, len(a.Slots))
			for _, slot := range a.Slots {
				out = append(out, SlotStatus{
					Slot:   slot,
					Booked: d.booked[slotKey(fmt.Sprintf("%d", therapistID), day, slot)],
				})
			}
			return out
		}
	}
	return nil
}

// Book books a slot. The local collision check is advisory; the backend
// re-validates uniqueness regardless. On success the key is added to the
// derived set immediately, with no re-fetch, so the directory reflects the
// booking without a round trip.
func (d *Directory) Book(ctx context.Context, therapistID int, day, slot string) error {
	if day == "" {
		d.setError("Please select a day first!")
		return fmt.Errorf("no day selected")
	}

	id := fmt.Sprintf("%d", therapistID)
	key := slotKey(id, day, slot)
	d.mu.Lock()
	taken := d.booked[key]
	d.mu.Unlock()
	if taken {
		d.setError("This slot is already booked!")
		return fmt.Errorf("slot already booked")
	}

	if err := d.begin(); err != nil {
		return err
	}
	defer d.end()

	if _, err := d.client.CreateBooking(ctx, id, day, slot); err != nil {
		d.setError(api.ErrorMessage(err, "Booking failed."))
		return err
	}

	d.mu.Lock()
	d.booked[key] = true
	d.mu.Unlock()
	d.setInfo(fmt.Sprintf("Successfully booked %s at %s!", day, slot))
	return nil
}

// Notice returns the dismissible message the page shows, and whether it is
// an error.
func (d *Directory) Notice() (string, bool) {
	if msg := d.Err(); msg != "" {
		return msg, true
	}
	return d.Message(), false
}

// DismissNotice clears the current message.
func (d *Directory) DismissNotice() {
	d.mu.Lock()
	d.errMsg = ""
	d.infoMsg = ""
	d.mu.Unlock()
}

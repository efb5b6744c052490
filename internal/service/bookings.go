package service

import (
	"context"
	"strings"

	"github.com/Carma123/Mental-Health-Support-System/internal"
	"github.com/Carma123/Mental-Health-Support-System/internal/api"
)

type BookingUpdateRequest struct {
	Day  string `json:"day" validate:"required"`
	Slot string `json:"slot" validate:"required"`
}

func ValidateBookingUpdateRequest(req *BookingUpdateRequest) error {
	return validate.Struct(req)
}

// BookingList synchronizes the user's bookings and tracks which entry is
// being edited. Slot uniqueness is the backend's to enforce; this side only
// relays its verdict.
type BookingList struct {
	listState
	client    *api.Client
	logger    internal.Logger
	bookings  []internal.Booking
	editingID int
}

func NewBookingList(client *api.Client, logger internal.Logger) *BookingList {
	return &BookingList{client: client, logger: logger}
}

func (l *BookingList) Refresh(ctx context.Context) error {
	l.startLoading()
	defer l.stopLoading()

	bookings, err := l.client.ListBookings(ctx)
	if err != nil {
		l.logger.Errorf("bookings: refresh failed: %v", err)
		l.setError("Failed to load bookings.")
		return err
	}

	l.mu.Lock()
	l.bookings = bookings
	l.errMsg = ""
	l.mu.Unlock()
	return nil
}

// StartEditing opens the edit form for a booking. Messages from earlier
// operations are cleared.
func (l *BookingList) StartEditing(id int) {
	l.mu.Lock()
	l.editingID = id
	l.errMsg = ""
	l.infoMsg = ""
	l.mu.Unlock()
}

func (l *BookingList) CancelEditing() {
	l.mu.Lock()
	l.editingID = 0
	l.errMsg = ""
	l.infoMsg = ""
	l.mu.Unlock()
}

// EditingID reports the booking currently open for editing, 0 when none.
func (l *BookingList) EditingID() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.editingID
}

// Save updates the booking's day and slot. On success the editing state is
// cleared and the list re-fetched; on failure the edit form stays open so
// the user can retry.
func (l *BookingList) Save(ctx context.Context, id int, day, slot string) error {
	req := BookingUpdateRequest{Day: strings.TrimSpace(day), Slot: strings.TrimSpace(slot)}
	if err := ValidateBookingUpdateRequest(&req); err != nil {
		l.setError("Day and Slot cannot be empty.")
		return err
	}
	if err := l.begin(); err != nil {
		return err
	}
	defer l.end()

	if err := l.client.UpdateBooking(ctx, id, req.Day, req.Slot); err != nil {
		l.setError(api.ErrorMessage(err, "Failed to update booking."))
		return err
	}

	l.mu.Lock()
	l.editingID = 0
	l.mu.Unlock()
	if err := l.Refresh(ctx); err != nil {
		return err
	}
	l.setInfo("Booking updated successfully.")
	return nil
}

// Cancel deletes a booking after confirmation, then re-fetches.
func (l *BookingList) Cancel(ctx context.Context, id int, confirm Confirmer) error {
	if confirm != nil && !confirm("Are you sure you want to cancel this booking?") {
		return ErrCancelled
	}
	if err := l.begin(); err != nil {
		return err
	}
	defer l.end()

	if err := l.client.DeleteBooking(ctx, id); err != nil {
		l.setError(api.ErrorMessage(err, "Failed to cancel booking."))
		return err
	}
	if err := l.Refresh(ctx); err != nil {
		return err
	}
	l.setInfo("Booking cancelled successfully.")
	return nil
}

func (l *BookingList) Bookings() []internal.Booking {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]internal.Booking, len(l.bookings))
	copy(out, l.bookings)
	return out
}

package shell

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Carma123/Mental-Health-Support-System/internal/service"
)

// The feature views: each mount re-synchronizes its collection and renders
// the result, keeping the last-known-good list when the refresh fails.

func MoodLogView(moods *service.MoodList) View {
	return ViewFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintln(w, "How are you feeling today?")
		fmt.Fprintln(w, "Moods: happy, good, neutral, sad, angry, anxious")
		fmt.Fprintln(w, "Log with: mood <mood> [note]")
		if msg := moods.Err(); msg != "" {
			fmt.Fprintln(w, msg)
		} else if msg := moods.Message(); msg != "" {
			fmt.Fprintln(w, msg)
		}
		return nil
	})
}

func MoodHistoryView(moods *service.MoodList, from, to *time.Time) View {
	return ViewFunc(func(ctx context.Context, w io.Writer) error {
		_ = moods.Refresh(ctx)
		if msg := moods.Err(); msg != "" {
			fmt.Fprintln(w, msg)
		}
		var lo, hi time.Time
		if from != nil {
			lo = *from
		}
		if to != nil {
			hi = *to
		}
		entries := moods.Filtered(lo, hi)
		if len(entries) == 0 {
			fmt.Fprintln(w, "No moods logged yet. Start by adding one!")
			return nil
		}
		fmt.Fprintln(w, "Your Mood History")
		for _, e := range entries {
			note := e.Note
			if note == "" {
				note = "No note provided."
			}
			fmt.Fprintf(w, "  [%d] %s (%d) %s - %s\n",
				e.ID, e.Mood, service.MoodValue(e.Mood),
				e.Timestamp.Format("2006-01-02"), note)
		}
		return nil
	})
}

func BookingsView(bookings *service.BookingList) View {
	return ViewFunc(func(ctx context.Context, w io.Writer) error {
		_ = bookings.Refresh(ctx)
		fmt.Fprintln(w, "Your Bookings")
		if msg := bookings.Err(); msg != "" {
			fmt.Fprintln(w, msg)
		}
		list := bookings.Bookings()
		if len(list) == 0 {
			fmt.Fprintln(w, "You have no bookings.")
			return nil
		}
		for _, b := range list {
			fmt.Fprintf(w, "  [%d] Therapist: %s  Day: %s  Slot: %s\n", b.ID, b.Therapist, b.Day, b.Slot)
		}
		return nil
	})
}

func TherapistsView(dir *service.Directory) View {
	return ViewFunc(func(ctx context.Context, w io.Writer) error {
		_ = dir.Refresh(ctx)
		_ = dir.RefreshBookings(ctx)
		fmt.Fprintln(w, "Therapist Directory")
		if msg, isErr := dir.Notice(); msg != "" && isErr {
			fmt.Fprintln(w, msg)
		}
		for _, t := range dir.Therapists() {
			fmt.Fprintf(w, "  [%d] %s - %s (%s)\n", t.ID, t.Name, t.Qualifications, t.Location)
			day := dir.SelectedDay(t.ID)
			if day == "" {
				continue
			}
			fmt.Fprintf(w, "      %s:", day)
			for _, s := range dir.SlotsFor(t.ID) {
				if s.Booked {
					fmt.Fprintf(w, " %s(booked)", s.Slot)
				} else {
					fmt.Fprintf(w, " %s", s.Slot)
				}
			}
			fmt.Fprintln(w)
		}
		return nil
	})
}

func ResourcesView(resources *service.ResourceList) View {
	return ViewFunc(func(ctx context.Context, w io.Writer) error {
		_ = resources.Refresh(ctx)
		if msg := resources.Err(); msg != "" {
			fmt.Fprintf(w, "Error: %s\n", msg)
			return nil
		}
		list := resources.Resources()
		if len(list) == 0 {
			fmt.Fprintln(w, "No resources available.")
			return nil
		}
		fmt.Fprintln(w, "Resource Library")
		for _, r := range list {
			verified := ""
			if r.Verified {
				verified = " [verified]"
			}
			fmt.Fprintf(w, "  %s (%s, %s)%s\n", r.Title, r.ResourceType, r.Source, verified)
		}
		return nil
	})
}

func ContactsView(contacts *service.ContactList) View {
	return ViewFunc(func(ctx context.Context, w io.Writer) error {
		_ = contacts.Refresh(ctx)
		fmt.Fprintln(w, "Emergency Contacts")
		if msg := contacts.Err(); msg != "" {
			fmt.Fprintln(w, msg)
			return nil
		}
		for _, c := range contacts.Contacts() {
			rel := c.Relationship
			if rel == "" {
				rel = "No relation"
			}
			fmt.Fprintf(w, "  [%d] %s (%s) - %s %s\n", c.ID, c.Name, rel, c.Phone, c.Email)
		}
		return nil
	})
}

func LoginView() View {
	return ViewFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintln(w, "Login with: login <email> <password>")
		return nil
	})
}

func HomeView() View {
	return ViewFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintln(w, "Welcome to Your Mental Wellness Space")
		fmt.Fprintln(w, "Track your mood, connect with therapists, and find resources for a healthier mind.")
		return nil
	})
}

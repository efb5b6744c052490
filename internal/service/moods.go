package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Carma123/Mental-Health-Support-System/internal"
	"github.com/Carma123/Mental-Health-Support-System/internal/api"
)

// moodScale maps a mood to the severity level plotted on the trend chart's
// vertical axis. Moods outside the scale (e.g. "anxious") plot at 0.
var moodScale = map[string]int{
	"angry":   1,
	"sad":     2,
	"neutral": 3,
	"good":    4,
	"happy":   5,
}

func MoodValue(mood string) int {
	return moodScale[strings.ToLower(mood)]
}

type MoodRequest struct {
	Mood string `json:"mood" validate:"required"`
	Note string `json:"note,omitempty"`
}

func ValidateMoodRequest(req *MoodRequest) error {
	return validate.Struct(req)
}

// MoodList synchronizes the user's mood entries with the backend. Entries
// are kept sorted ascending by timestamp after every fetch.
type MoodList struct {
	listState
	client  *api.Client
	logger  internal.Logger
	entries []internal.MoodEntry
}

func NewMoodList(client *api.Client, logger internal.Logger) *MoodList {
	return &MoodList{client: client, logger: logger}
}

// Refresh replaces the whole local list with the server's. On failure the
// prior list stays untouched and the error message is surfaced instead.
func (l *MoodList) Refresh(ctx context.Context) error {
	l.startLoading()
	defer l.stopLoading()

	moods, err := l.client.ListMoods(ctx)
	if err != nil {
		l.logger.Errorf("moods: refresh failed: %v", err)
		l.setError("Failed to load moods.")
		return err
	}
	sort.SliceStable(moods, func(i, j int) bool {
		return moods[i].Timestamp.Before(moods[j].Timestamp.Time)
	})

	l.mu.Lock()
	l.entries = moods
	l.errMsg = ""
	l.mu.Unlock()
	return nil
}

// Log validates and creates a new entry, then re-fetches the collection so
// the local list matches server state.
func (l *MoodList) Log(ctx context.Context, mood, note string) error {
	req := MoodRequest{Mood: strings.TrimSpace(mood), Note: note}
	if err := ValidateMoodRequest(&req); err != nil {
		l.setError("Mood is required.")
		return err
	}
	if err := l.begin(); err != nil {
		return err
	}
	defer l.end()

	if err := l.client.CreateMood(ctx, req.Mood, req.Note); err != nil {
		l.setError(api.ErrorMessage(err, "Error logging mood."))
		return err
	}
	if err := l.Refresh(ctx); err != nil {
		return err
	}
	l.setInfo("Mood logged successfully!")
	return nil
}

// Update edits an existing entry and re-fetches.
func (l *MoodList) Update(ctx context.Context, id int, mood, note string) error {
	req := MoodRequest{Mood: strings.TrimSpace(mood), Note: note}
	if err := ValidateMoodRequest(&req); err != nil {
		l.setError("Mood is required.")
		return err
	}
	if err := l.begin(); err != nil {
		return err
	}
	defer l.end()

	if err := l.client.UpdateMood(ctx, id, req.Mood, req.Note); err != nil {
		l.setError(api.ErrorMessage(err, "Failed to update mood entry."))
		return err
	}
	if err := l.Refresh(ctx); err != nil {
		return err
	}
	l.setInfo("Mood entry updated.")
	return nil
}

// Delete removes an entry after confirmation. On success the entry is
// removed from the local list directly; no re-fetch.
func (l *MoodList) Delete(ctx context.Context, id int, confirm Confirmer) error {
	if confirm != nil && !confirm("Are you sure you want to delete this mood entry?") {
		return ErrCancelled
	}
	if err := l.begin(); err != nil {
		return err
	}
	defer l.end()

	if err := l.client.DeleteMood(ctx, id); err != nil {
		l.setError("Failed to delete mood entry.")
		return err
	}

	l.mu.Lock()
	kept := l.entries[:0]
	for _, e := range l.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	l.entries = kept
	l.errMsg = ""
	l.mu.Unlock()
	return nil
}

// Entries returns a copy of the current list.
func (l *MoodList) Entries() []internal.MoodEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]internal.MoodEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Filtered returns the entries whose timestamp lies in [from, to], both
// bounds inclusive. A zero bound is unbounded on that side.
func (l *MoodList) Filtered(from, to time.Time) []internal.MoodEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]internal.MoodEntry, 0, len(l.entries))
	for _, e := range l.entries {
		ts := e.Timestamp.Time
		if !from.IsZero() && ts.Before(from) {
			continue
		}
		if !to.IsZero() && ts.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Carma123/Mental-Health-Support-System/internal"
)

func TestMoodValue_LookupAndUnmapped(t *testing.T) {
	assert.Equal(t, 1, MoodValue("angry"))
	assert.Equal(t, 2, MoodValue("sad"))
	assert.Equal(t, 3, MoodValue("neutral"))
	assert.Equal(t, 4, MoodValue("good"))
	assert.Equal(t, 5, MoodValue("happy"))
	assert.Equal(t, 5, MoodValue("Happy")) // case-insensitive
	assert.Equal(t, 0, MoodValue("anxious"))
	assert.Equal(t, 0, MoodValue(""))
}

func moodServer(entries *[]map[string]interface{}) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/moods", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(*entries)
	})
	return mux
}

func TestMoodList_RefreshSortsAscending(t *testing.T) {
	entries := []map[string]interface{}{
		{"id": 2, "mood": "sad", "timestamp": "2025-03-02T09:00:00"},
		{"id": 1, "mood": "happy", "timestamp": "2025-03-01T09:00:00"},
		{"id": 3, "mood": "good", "timestamp": "2025-03-03T09:00:00"},
	}
	client := newTestClient(t, moodServer(&entries))
	moods := NewMoodList(client, internal.NopLogger{})

	assert.NoError(t, moods.Refresh(context.Background()))
	got := moods.Entries()
	assert.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Timestamp.Before(got[i-1].Timestamp.Time))
	}
	assert.Equal(t, []int{1, 2, 3}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestMoodList_RefreshIdempotent(t *testing.T) {
	entries := []map[string]interface{}{
		{"id": 1, "mood": "happy", "timestamp": "2025-03-01T09:00:00"},
		{"id": 2, "mood": "sad", "timestamp": "2025-03-02T09:00:00"},
	}
	client := newTestClient(t, moodServer(&entries))
	moods := NewMoodList(client, internal.NopLogger{})

	assert.NoError(t, moods.Refresh(context.Background()))
	first := moods.Entries()
	assert.NoError(t, moods.Refresh(context.Background()))
	assert.Equal(t, first, moods.Entries())
}

func TestMoodList_RefreshFailureKeepsPriorList(t *testing.T) {
	fail := false
	mux := http.NewServeMux()
	mux.HandleFunc("/api/moods", func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"msg":"boom"}`)
			return
		}
		fmt.Fprint(w, `[{"id":1,"mood":"happy","timestamp":"2025-03-01T09:00:00"}]`)
	})
	client := newTestClient(t, mux)
	moods := NewMoodList(client, internal.NopLogger{})

	assert.NoError(t, moods.Refresh(context.Background()))
	assert.Len(t, moods.Entries(), 1)
	assert.False(t, moods.Loading())

	fail = true
	assert.Error(t, moods.Refresh(context.Background()))
	assert.Len(t, moods.Entries(), 1, "last-known-good list survives a failed refresh")
	assert.Equal(t, "Failed to load moods.", moods.Err())
	assert.False(t, moods.Loading(), "loading flag clears on failure too")
}

func TestMoodList_FilteredInclusiveBounds(t *testing.T) {
	entries := []map[string]interface{}{
		{"id": 1, "mood": "sad", "timestamp": "2025-03-01T00:00:00"},
		{"id": 2, "mood": "good", "timestamp": "2025-03-02T12:00:00"},
		{"id": 3, "mood": "happy", "timestamp": "2025-03-03T23:59:59"},
	}
	client := newTestClient(t, moodServer(&entries))
	moods := NewMoodList(client, internal.NopLogger{})
	assert.NoError(t, moods.Refresh(context.Background()))

	day := func(s string) time.Time {
		ts, err := time.Parse(time.RFC3339, s)
		assert.NoError(t, err)
		return ts
	}

	// Boundary timestamps are included on both ends.
	got := moods.Filtered(day("2025-03-01T00:00:00Z"), day("2025-03-03T23:59:59Z"))
	assert.Len(t, got, 3)

	got = moods.Filtered(day("2025-03-02T00:00:00Z"), day("2025-03-02T23:59:59Z"))
	assert.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)

	// Absent bounds are unbounded.
	got = moods.Filtered(time.Time{}, day("2025-03-01T00:00:00Z"))
	assert.Len(t, got, 1)
	got = moods.Filtered(day("2025-03-03T00:00:00Z"), time.Time{})
	assert.Len(t, got, 1)
	got = moods.Filtered(time.Time{}, time.Time{})
	assert.Len(t, got, 3)
}

func TestMoodList_LogRefetchesAfterCreate(t *testing.T) {
	var listCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/mood", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"message":"Mood entry saved"}`)
	})
	mux.HandleFunc("/api/moods", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&listCalls, 1)
		fmt.Fprint(w, `[{"id":1,"mood":"happy","timestamp":"2025-03-01T09:00:00"}]`)
	})
	client := newTestClient(t, mux)
	moods := NewMoodList(client, internal.NopLogger{})

	assert.NoError(t, moods.Log(context.Background(), "happy", "a good day"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&listCalls), "create is followed by a full re-fetch")
	assert.Equal(t, "Mood logged successfully!", moods.Message())
	assert.Len(t, moods.Entries(), 1)
}

func TestMoodList_LogValidation(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())
	moods := NewMoodList(client, internal.NopLogger{})

	assert.Error(t, moods.Log(context.Background(), "  ", "note"))
	assert.Equal(t, "Mood is required.", moods.Err())
}

func TestMoodList_UpdateRefetchesAfterPut(t *testing.T) {
	var listCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/mood/5", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		fmt.Fprint(w, `{"message":"Mood entry updated"}`)
	})
	mux.HandleFunc("/api/moods", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&listCalls, 1)
		fmt.Fprint(w, `[{"id":5,"mood":"good","note":"better now","timestamp":"2025-03-01T09:00:00"}]`)
	})
	client := newTestClient(t, mux)
	moods := NewMoodList(client, internal.NopLogger{})

	assert.NoError(t, moods.Update(context.Background(), 5, "good", "better now"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&listCalls), "update is followed by a full re-fetch")
	assert.Equal(t, "Mood entry updated.", moods.Message())
	got := moods.Entries()
	assert.Len(t, got, 1)
	assert.Equal(t, "good", got[0].Mood)
}

func TestMoodList_UpdateFailureSurfacesServerMessage(t *testing.T) {
	var listCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/mood/5", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"Mood entry not found"}`)
	})
	mux.HandleFunc("/api/moods", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&listCalls, 1)
		fmt.Fprint(w, `[]`)
	})
	client := newTestClient(t, mux)
	moods := NewMoodList(client, internal.NopLogger{})

	assert.Error(t, moods.Update(context.Background(), 5, "good", ""))
	assert.Equal(t, "Mood entry not found", moods.Err())
	assert.Equal(t, int32(0), atomic.LoadInt32(&listCalls), "no re-fetch after a failed update")

	assert.Error(t, moods.Update(context.Background(), 5, "  ", ""))
	assert.Equal(t, "Mood is required.", moods.Err())
}

func TestMoodList_DeleteRemovesLocallyWithoutRefetch(t *testing.T) {
	var listCalls, deleteCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/moods", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&listCalls, 1)
		fmt.Fprint(w, `[
			{"id":4,"mood":"sad","timestamp":"2025-03-01T09:00:00"},
			{"id":5,"mood":"good","timestamp":"2025-03-02T09:00:00"}
		]`)
	})
	mux.HandleFunc("/api/mood/5", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		atomic.AddInt32(&deleteCalls, 1)
		fmt.Fprint(w, `{"message":"Mood entry deleted"}`)
	})
	client := newTestClient(t, mux)
	moods := NewMoodList(client, internal.NopLogger{})
	assert.NoError(t, moods.Refresh(context.Background()))

	assert.NoError(t, moods.Delete(context.Background(), 5, yes))
	assert.Equal(t, int32(1), atomic.LoadInt32(&deleteCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&listCalls), "delete does not re-fetch")
	got := moods.Entries()
	assert.Len(t, got, 1)
	assert.Equal(t, 4, got[0].ID)
}

func TestMoodList_DeleteDeclinedSendsNothing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/mood/5", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected after a declined confirmation")
	})
	client := newTestClient(t, mux)
	moods := NewMoodList(client, internal.NopLogger{})

	err := moods.Delete(context.Background(), 5, no)
	assert.ErrorIs(t, err, ErrCancelled)
}

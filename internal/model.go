package internal

import (
	"encoding/json"
	"strings"
	"time"
)

// APITime parses timestamps the backend emits either as RFC 3339 or as a
// bare ISO timestamp without a zone offset.
type APITime struct {
	time.Time
}

var apiTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *APITime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range apiTimeLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

func (t APITime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339))
}

type MoodEntry struct {
	ID        int     `json:"id"`
	Mood      string  `json:"mood"`
	Note      string  `json:"note,omitempty"`
	Timestamp APITime `json:"timestamp"`
}

type Booking struct {
	ID          int     `json:"id"`
	TherapistID int     `json:"therapist_id"`
	Therapist   string  `json:"therapist"`
	Day         string  `json:"day"`
	Slot        string  `json:"slot"`
	CreatedAt   APITime `json:"created_at"`
}

type AvailabilityDay struct {
	Day   string   `json:"day"`
	Slots []string `json:"slots"`
}

type Therapist struct {
	ID             int               `json:"id"`
	Name           string            `json:"name"`
	PhotoURL       string            `json:"photoUrl,omitempty"`
	Specialization []string          `json:"specialization"`
	Qualifications string            `json:"qualifications"`
	Contact        string            `json:"contact"`
	Location       string            `json:"location"`
	Availability   []AvailabilityDay `json:"availability"`
}

type EmergencyContact struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

type Resource struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	ResourceType string   `json:"resource_type"`
	Source       string   `json:"source"`
	Verified     bool     `json:"verified"`
	Summary      string   `json:"summary,omitempty"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	URL          string   `json:"url,omitempty"`
	PublishedAt  string   `json:"published_at,omitempty"`
}

// AppError carries an error the backend reported in a response body.
type AppError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, msg string) *AppError {
	return &AppError{Status: status, Message: msg}
}

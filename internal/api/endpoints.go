package api

import (
	"context"
	"fmt"

	"github.com/Carma123/Mental-Health-Support-System/internal"
)

// Login exchanges credentials for an access token. On a rejected login the
// server's msg is returned as the error ("Login failed" when absent).
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.Do(ctx, Request{Name: "login", Method: "POST", Path: "/login", Body: body})
	if err != nil {
		return "", err
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := decodeJSON(resp, &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// Register creates an account and returns the server's confirmation msg.
func (c *Client) Register(ctx context.Context, username, email, password string) (string, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	resp, err := c.Do(ctx, Request{Name: "register", Method: "POST", Path: "/register", Body: body})
	if err != nil {
		return "", err
	}
	var out struct {
		Msg string `json:"msg"`
	}
	if err := decodeJSON(resp, &out); err != nil {
		return "", err
	}
	return out.Msg, nil
}

func (c *Client) ListMoods(ctx context.Context) ([]internal.MoodEntry, error) {
	resp, err := c.get(ctx, "list_moods", "/api/moods", true)
	if err != nil {
		return nil, err
	}
	var moods []internal.MoodEntry
	if err := decodeJSON(resp, &moods); err != nil {
		return nil, err
	}
	return moods, nil
}

func (c *Client) CreateMood(ctx context.Context, mood, note string) error {
	body := map[string]string{"mood": mood, "note": note}
	_, err := c.post(ctx, "create_mood", "/api/mood", body)
	return err
}

func (c *Client) UpdateMood(ctx context.Context, id int, mood, note string) error {
	body := map[string]string{"mood": mood, "note": note}
	_, err := c.put(ctx, "update_mood", fmt.Sprintf("/api/mood/%d", id), body)
	return err
}

func (c *Client) DeleteMood(ctx context.Context, id int) error {
	_, err := c.delete(ctx, "delete_mood", fmt.Sprintf("/api/mood/%d", id))
	return err
}

func (c *Client) ListTherapists(ctx context.Context) ([]internal.Therapist, error) {
	resp, err := c.get(ctx, "list_therapists", "/api/therapists", false)
	if err != nil {
		return nil, err
	}
	var therapists []internal.Therapist
	if err := decodeJSON(resp, &therapists); err != nil {
		return nil, err
	}
	return therapists, nil
}

func (c *Client) ListBookings(ctx context.Context) ([]internal.Booking, error) {
	resp, err := c.get(ctx, "list_bookings", "/api/bookings", true)
	if err != nil {
		return nil, err
	}
	var bookings []internal.Booking
	if err := decodeJSON(resp, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CreateBooking posts a new booking. The therapist id travels as a string,
// matching what the backend expects in this payload.
func (c *Client) CreateBooking(ctx context.Context, therapistID, day, slot string) (*internal.Booking, error) {
	body := map[string]string{"therapistId": therapistID, "day": day, "slot": slot}
	resp, err := c.post(ctx, "create_booking", "/api/bookings", body)
	if err != nil {
		return nil, err
	}
	var out struct {
		Message string           `json:"message"`
		Booking internal.Booking `json:"booking"`
	}
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return &out.Booking, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id int, day, slot string) error {
	body := map[string]string{"day": day, "slot": slot}
	_, err := c.put(ctx, "update_booking", fmt.Sprintf("/api/bookings/%d", id), body)
	return err
}

func (c *Client) DeleteBooking(ctx context.Context, id int) error {
	_, err := c.delete(ctx, "delete_booking", fmt.Sprintf("/api/bookings/%d", id))
	return err
}

func (c *Client) ListContacts(ctx context.Context) ([]internal.EmergencyContact, error) {
	resp, err := c.get(ctx, "list_contacts", "/api/emergency-contacts", true)
	if err != nil {
		return nil, err
	}
	var contacts []internal.EmergencyContact
	if err := decodeJSON(resp, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (c *Client) CreateContact(ctx context.Context, name, phone, email, relationship string) error {
	body := map[string]string{
		"name":         name,
		"phone":        phone,
		"email":        email,
		"relationship": relationship,
	}
	_, err := c.post(ctx, "create_contact", "/api/emergency-contacts", body)
	return err
}

func (c *Client) DeleteContact(ctx context.Context, id int) error {
	_, err := c.delete(ctx, "delete_contact", fmt.Sprintf("/api/emergency-contacts/%d", id))
	return err
}

func (c *Client) ListResources(ctx context.Context) ([]internal.Resource, error) {
	resp, err := c.get(ctx, "list_resources", "/api/resources", false)
	if err != nil {
		return nil, err
	}
	var resources []internal.Resource
	if err := decodeJSON(resp, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// SendSOS posts an SOS alert with a pre-formatted location string and
// returns the acknowledgement message.
func (c *Client) SendSOS(ctx context.Context, location string) (string, error) {
	body := map[string]string{"location": location}
	resp, err := c.post(ctx, "send_sos", "/api/sos", body)
	if err != nil {
		return "", err
	}
	var out struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
	}
	if err := decodeJSON(resp, &out); err != nil {
		return "", err
	}
	if out.Msg != "" {
		return out.Msg, nil
	}
	if out.Message != "" {
		return out.Message, nil
	}
	return "SOS sent!", nil
}

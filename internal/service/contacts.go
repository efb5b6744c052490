package service

import (
	"context"
	"strings"

	"github.com/Carma123/Mental-Health-Support-System/internal"
	"github.com/Carma123/Mental-Health-Support-System/internal/api"
)

type ContactRequest struct {
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Relationship string `json:"relationship,omitempty"`
}

func ValidateContactRequest(req *ContactRequest) error {
	return validate.Struct(req)
}

// ContactList synchronizes the user's emergency contacts.
type ContactList struct {
	listState
	client   *api.Client
	logger   internal.Logger
	contacts []internal.EmergencyContact
}

func NewContactList(client *api.Client, logger internal.Logger) *ContactList {
	return &ContactList{client: client, logger: logger}
}

func (l *ContactList) Refresh(ctx context.Context) error {
	l.startLoading()
	defer l.stopLoading()

	contacts, err := l.client.ListContacts(ctx)
	if err != nil {
		l.logger.Errorf("contacts: refresh failed: %v", err)
		l.setError("Failed to load contacts")
		return err
	}

	l.mu.Lock()
	l.contacts = contacts
	l.errMsg = ""
	l.mu.Unlock()
	return nil
}

// Add validates and creates a contact. Name and phone are mandatory. The
// list is re-fetched on success.
func (l *ContactList) Add(ctx context.Context, req ContactRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := ValidateContactRequest(&req); err != nil {
		l.setError("Name and phone are required")
		return err
	}
	if err := l.begin(); err != nil {
		return err
	}
	defer l.end()

	if err := l.client.CreateContact(ctx, req.Name, req.Phone, req.Email, req.Relationship); err != nil {
		l.setError(api.ErrorMessage(err, "Failed to add contact"))
		return err
	}
	if err := l.Refresh(ctx); err != nil {
		return err
	}
	l.setInfo("Emergency contact added")
	return nil
}

// Remove deletes a contact after confirmation, then re-fetches.
func (l *ContactList) Remove(ctx context.Context, id int, confirm Confirmer) error {
	if confirm != nil && !confirm("Are you sure you want to delete this contact?") {
		return ErrCancelled
	}
	if err := l.begin(); err != nil {
		return err
	}
	defer l.end()

	if err := l.client.DeleteContact(ctx, id); err != nil {
		l.setError(api.ErrorMessage(err, "Failed to delete contact"))
		return err
	}
	if err := l.Refresh(ctx); err != nil {
		return err
	}
	l.setInfo("Emergency contact deleted")
	return nil
}

func (l *ContactList) Contacts() []internal.EmergencyContact {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]internal.EmergencyContact, len(l.contacts))
	copy(out, l.contacts)
	return out
}

package service

import (
	"context"
	"errors"

	"github.com/Carma123/Mental-Health-Support-System/internal"
	"github.com/Carma123/Mental-Health-Support-System/internal/api"
	"github.com/Carma123/Mental-Health-Support-System/internal/session"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Authenticator drives the login and registration flows and is the only
// writer of session state besides logout.
type Authenticator struct {
	listState
	client  *api.Client
	session *session.Session
	logger  internal.Logger
}

func NewAuthenticator(client *api.Client, sess *session.Session, logger internal.Logger) *Authenticator {
	return &Authenticator{client: client, session: sess, logger: logger}
}

// Login exchanges credentials for a token and stores it. On a rejected
// login the server's message is surfaced ("Login failed" when it sent
// none); a transport failure reads "Unable to connect to server".
func (a *Authenticator) Login(ctx context.Context, email, password string) error {
	req := LoginRequest{Email: email, Password: password}
	if err := validate.Struct(&req); err != nil {
		a.setError("Email and password are required.")
		return err
	}
	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()

	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		var appErr *internal.AppError
		if errors.As(err, &appErr) {
			a.setError(api.ErrorMessage(err, "Login failed"))
		} else {
			a.setError("Unable to connect to server")
		}
		return err
	}
	if err := a.session.Login(token); err != nil {
		a.setError("Failed to store session.")
		return err
	}
	a.setInfo("Login successful!")
	return nil
}

// Register creates an account. Does not log the user in; the login flow
// follows separately.
func (a *Authenticator) Register(ctx context.Context, username, email, password string) error {
	req := RegisterRequest{Username: username, Email: email, Password: password}
	if err := validate.Struct(&req); err != nil {
		a.setError("Username, email and a password of at least 6 characters are required.")
		return err
	}
	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()

	msg, err := a.client.Register(ctx, username, email, password)
	if err != nil {
		var appErr *internal.AppError
		if errors.As(err, &appErr) {
			a.setError(api.ErrorMessage(err, "Registration failed"))
		} else {
			a.setError("Unable to connect to server")
		}
		return err
	}
	if msg == "" {
		msg = "User registered successfully"
	}
	a.setInfo(msg)
	return nil
}

// Logout tears the session down.
func (a *Authenticator) Logout() error {
	return a.session.Logout()
}

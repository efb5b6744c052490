package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Carma123/Mental-Health-Support-System/internal"
	"github.com/Carma123/Mental-Health-Support-System/internal/api"
)

// Locator produces the user's current coordinates. Platform geolocation is
// out of scope; callers plug in whatever source they have.
type Locator interface {
	Locate(ctx context.Context) (lat, long float64, err error)
}

// FixedLocator always reports the same position. Default for environments
// without a location source.
type FixedLocator struct {
	Lat  float64
	Long float64
}

func (f FixedLocator) Locate(ctx context.Context) (float64, float64, error) {
	return f.Lat, f.Long, nil
}

// FormatLocation renders coordinates the way the SOS endpoint expects them.
func FormatLocation(lat, long float64) string {
	return fmt.Sprintf("Lat: %s, Long: %s",
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(long, 'f', -1, 64))
}

// SOSDispatcher sends geolocation-tagged SOS alerts.
type SOSDispatcher struct {
	listState
	client *api.Client
	logger internal.Logger
}

func NewSOSDispatcher(client *api.Client, logger internal.Logger) *SOSDispatcher {
	return &SOSDispatcher{client: client, logger: logger}
}

// Send asks for confirmation, resolves the current position and posts the
// alert. The server's acknowledgement message is surfaced on success.
func (s *SOSDispatcher) Send(ctx context.Context, loc Locator, confirm Confirmer) (string, error) {
	if confirm != nil && !confirm("Are you sure you want to send an SOS alert?") {
		return "", ErrCancelled
	}
	if err := s.begin(); err != nil {
		return "", err
	}
	defer s.end()

	lat, long, err := loc.Locate(ctx)
	if err != nil {
		s.setError("Unable to get your location.")
		return "", err
	}

	msg, err := s.client.SendSOS(ctx, FormatLocation(lat, long))
	if err != nil {
		s.logger.Errorf("sos: send failed: %v", err)
		s.setError("Failed to send SOS.")
		return "", err
	}
	s.setInfo(msg)
	return msg, nil
}

package notifications

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Ntfy publishes best-effort push messages to an ntfy topic. Failures are
// reported to the caller and never interfere with the operation that
// triggered them.
type Ntfy struct {
	baseURL string
	enabled bool
	client  *http.Client
}

func NewNtfy(enableNotifications bool, notificationsBaseURL string, client *http.Client) *Ntfy {
	return &Ntfy{
		baseURL: notificationsBaseURL,
		enabled: enableNotifications,
		client:  client,
	}
}

/* Publishes a message to the new-book topic. A no-op when notifications are disabled. */
func (ntf *Ntfy) BookCreated(ctx context.Context, title string, author string) error {
	if !ntf.enabled {
		return nil
	}

	message := fmt.Sprintf("New book created: Title: %s Author: %s", title, author)
	topic := ntf.baseURL + "/new_book_created"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, topic, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("delivering message (%s) to topic (%s): %w", message, topic, err)
	}

	resp, err := ntf.client.Do(req)
	if err != nil {
		return fmt.Errorf("delivering message (%s) to topic (%s): %w", message, topic, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NewErrNotificationFailed(resp.StatusCode)
	}

	return nil
}

type ErrNotificationFailed struct {
	statusCode int
}

func (e ErrNotificationFailed) Error() string {
	return fmt.Sprintf("ntfy wrong response - want: 200 OK, got: %d", e.statusCode)
}

func NewErrNotificationFailed(statusCode int) ErrNotificationFailed {
	return ErrNotificationFailed{statusCode: statusCode}
}

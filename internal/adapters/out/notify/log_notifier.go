package notify

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/sirupsen/logrus"
)

// LogNotifier writes notifications to the log. It is the default transport for
// local runs and tests.
type LogNotifier struct {
	log *logrus.Entry
}

func NewLogNotifier(logger *logrus.Entry) *LogNotifier {
	return &LogNotifier{log: logger.WithField("component", "notifier").WithField("transport", "log")}
}

func (n *LogNotifier) Notify(_ context.Context, note ports.Notification) (kernel.UUID, error) {
	id := kernel.NewUUID()
	n.log.WithFields(logrus.Fields{
		"notification_id": id.String(),
		"user_id":         note.UserID.String(),
		"role":            note.Role.String(),
		"subject":         note.Subject,
		"link":            note.Link,
		"expires_at":      note.ExpiresAt,
	}).Info(note.Message)
	return id, nil
}

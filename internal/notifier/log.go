package notifier

import (
	"context"

	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/sirupsen/logrus"
)

// LogNotifier пишет уведомления в лог (локальная разработка)
type LogNotifier struct {
	logger *logrus.Logger
}

func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, note models.Notification) error {
	n.logger.WithFields(logrus.Fields{
		"target_id":   note.TargetID,
		"kind":        note.Kind,
		"incident_id": note.IncidentID,
		"payload":     note.Payload,
	}).Info("Notification")
	return nil
}

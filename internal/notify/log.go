package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier writes reminders to the log instead of a broker. Used in local
// runs and as a last-resort fallback.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, msg Message) error {
	n.logger.Info().
		Str("template", msg.Template).
		Str("org_id", msg.OrgID.String()).
		Str("user_id", msg.UserID.String()).
		Str("obligation_id", msg.ObligationID.String()).
		Str("course_name", msg.Data.CourseName).
		Int("days_overdue", msg.Data.DaysOverdue).
		Str("deep_link", msg.Data.DeepLink).
		Msg("reminder notification")
	return nil
}

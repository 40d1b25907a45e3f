package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/vertextoedge/space-reclaimer/internal/port"
)

// SlackNotifier posts notifications to a Slack channel
type SlackNotifier struct {
	client    *slack.Client
	channelID string
	source    string
}

// Ensure SlackNotifier implements port.Notifier
var _ port.Notifier = (*SlackNotifier)(nil)

// NewSlackNotifier creates a new SlackNotifier. source identifies the host or
// job in each message.
func NewSlackNotifier(token, channelID, source string, options ...slack.Option) *SlackNotifier {
	return &SlackNotifier{
		client:    slack.New(token, options...),
		channelID: channelID,
		source:    source,
	}
}

// Notify posts the message to the channel
func (n *SlackNotifier) Notify(ctx context.Context, level port.Level, message string) error {
	text := fmt.Sprintf("%s *%s* %s\n%s", levelEmoji(level), n.source, level, message)
	_, _, err := n.client.PostMessageContext(ctx, n.channelID, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("failed to post slack message: %w", err)
	}
	return nil
}

func levelEmoji(level port.Level) string {
	switch level {
	case port.LevelInfo:
		return ":information_source:"
	case port.LevelWarning:
		return ":warning:"
	default:
		return ":x:"
	}
}

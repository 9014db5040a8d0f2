// Package slackbot posts refresh summaries to a Slack channel.
package slackbot

import (
	"context"
	"fmt"
	"strings"

	"onetexplorer/internal/domain"
	"onetexplorer/internal/logging"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// Notifier posts to a single channel with a bot token.
type Notifier struct {
	api       *slack.Client
	channelID string
	logger    *zap.Logger
}

// NewNotifier builds a notifier. Options are passed through to slack.New, so
// tests can point it at a fake API with slack.OptionAPIURL.
func NewNotifier(token, channelID string, logger *zap.Logger, opts ...slack.Option) *Notifier {
	return &Notifier{api: slack.New(token, opts...), channelID: channelID, logger: logging.OrNop(logger)}
}

// Failure is an occupation the refresh could not rebuild.
type Failure struct {
	Code string
	Err  error
}

// RefreshBlocks renders the summary of one scheduled refresh.
func RefreshBlocks(runs []domain.RunRecord, failures []Failure) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType,
				fmt.Sprintf("AI impact refresh: %d rebuilt, %d failed", len(runs), len(failures)), false, false),
		),
	}
	for _, r := range runs {
		text := fmt.Sprintf("*%s* (`%s`)\nScore *%.0f* (%s) from %d tasks, %d agents",
			r.Title, r.Code, r.Score, r.Band, r.TaskCount, r.AgentCount)
		if r.ReviewNotes > 0 {
			text += fmt.Sprintf(", %d review notes", r.ReviewNotes)
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil,
		))
	}
	if len(failures) > 0 {
		var lines []string
		for _, f := range failures {
			lines = append(lines, fmt.Sprintf("• `%s`: %v", f.Code, f.Err))
		}
		blocks = append(blocks,
			slack.NewDividerBlock(),
			slack.NewSectionBlock(
				slack.NewTextBlockObject(slack.MarkdownType, "*Failed*\n"+strings.Join(lines, "\n"), false, false), nil, nil,
			),
		)
	}
	return blocks
}

// refreshText is the notification fallback for clients without block support.
func refreshText(runs []domain.RunRecord, failures []Failure) string {
	return fmt.Sprintf("AI impact refresh: %d rebuilt, %d failed", len(runs), len(failures))
}

func (n *Notifier) PostRefresh(ctx context.Context, runs []domain.RunRecord, failures []Failure) error {
	_, ts, err := n.api.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionText(refreshText(runs, failures), false),
		slack.MsgOptionBlocks(RefreshBlocks(runs, failures)...),
	)
	if err != nil {
		n.logger.Warn("slack post refresh", zap.String("channel", n.channelID), zap.Error(err))
		return fmt.Errorf("posting refresh summary: %w", err)
	}
	n.logger.Info("slack posted refresh", zap.String("channel", n.channelID), zap.String("ts", ts))
	return nil
}

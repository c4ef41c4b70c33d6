package notify

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/selfheal-infra/remedy/config"
	"github.com/selfheal-infra/remedy/types"
)

// Channel is one configured notification delivery target.
type Channel interface {
	Name() string
	Send(ctx context.Context, n types.Notification) types.ChannelResult
}

// Fanout delivers one notification to every configured channel,
// isolating failure per channel.
type Fanout struct {
	channels []Channel
	logger   zerolog.Logger
}

func NewFanout(logger zerolog.Logger, channels ...Channel) *Fanout {
	return &Fanout{channels: channels, logger: logger}
}

// Send attempts every channel concurrently. It never returns an error:
// the caller gets a best-effort report even if every channel failed.
func (f *Fanout) Send(ctx context.Context, n types.Notification) map[string]types.ChannelResult {
	results := make(map[string]types.ChannelResult, len(f.channels))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, channel := range f.channels {
		wg.Add(1)
		go func(channel Channel) {
			defer wg.Done()

			result := safeSend(ctx, channel, n)
			f.logger.Info().
				Str("channel", channel.Name()).
				Str("status", string(result.Status)).
				Msg("channel delivery finished")

			mu.Lock()
			results[channel.Name()] = result
			mu.Unlock()
		}(channel)
	}

	wg.Wait()
	return results
}

func safeSend(ctx context.Context, channel Channel, n types.Notification) (result types.ChannelResult) {
	defer func() {
		if r := recover(); r != nil {
			result = types.ChannelResult{
				Channel: channel.Name(),
				Status:  types.ChannelError,
				Detail:  fmt.Sprintf("panic: %v", r),
			}
		}
	}()
	return channel.Send(ctx, n)
}

// FromConfig assembles the channel set. A channel with no configuration
// is omitted entirely, not reported as skipped.
func FromConfig(cfg *config.Config, httpClient *http.Client, snsClient SNSAPI, sesClient SESAPI) []Channel {
	var channels []Channel

	if cfg.SlackWebhookURL != "" {
		channels = append(channels, NewSlackChannel(cfg.SlackWebhookURL, cfg.ProjectName, cfg.Environment, httpClient))
	}
	if cfg.DiscordWebhookURL != "" {
		channels = append(channels, NewDiscordChannel(cfg.DiscordWebhookURL, cfg.ProjectName, cfg.Environment, httpClient))
	}
	if cfg.TeamsWebhookURL != "" {
		channels = append(channels, NewTeamsChannel(cfg.TeamsWebhookURL, cfg.ProjectName, cfg.Environment, httpClient))
	}
	if cfg.PagerDutyAPIKey != "" && cfg.PagerDutyRoutingKey != "" {
		channels = append(channels, NewPagerDutyChannel(cfg.PagerDutyRoutingKey, cfg.PagerDutyAPIKey, cfg.ProjectName, cfg.Environment, httpClient))
	}
	if cfg.SNSTopicARN != "" && snsClient != nil {
		channels = append(channels, NewSNSChannel(snsClient, cfg.SNSTopicARN, cfg.Environment))
	}
	if cfg.DefaultEmail != "" && sesClient != nil {
		channels = append(channels, NewEmailChannel(sesClient, cfg.DefaultEmail, cfg.ProjectName, cfg.Environment))
	}

	return channels
}

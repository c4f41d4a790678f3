package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/promojour/promojour/internal/graph"
	"github.com/promojour/promojour/storage/db"
)

const (
	// Reel containers process asynchronously; poll every 2 seconds for up to
	// 30 attempts before giving up on the attempt.
	defaultPollInterval = 2 * time.Second
	maxPollAttempts     = 30
)

// InstagramPublisher publishes to an Instagram business account. Reels create
// a media container, wait for processing to finish, then publish; image posts
// publish their container immediately.
type InstagramPublisher struct {
	client       *graph.Client
	pollInterval time.Duration
}

func NewInstagramPublisher(client *graph.Client) *InstagramPublisher {
	return &InstagramPublisher{
		client:       client,
		pollInterval: defaultPollInterval,
	}
}

// SetPollInterval overrides the container poll interval, used by tests.
func (p *InstagramPublisher) SetPollInterval(interval time.Duration) {
	p.pollInterval = interval
}

func (p *InstagramPublisher) Publish(ctx context.Context, conn db.SocialConnection, media Media) (string, error) {
	igUserID, accessToken, err := connectionCredentials(conn)
	if err != nil {
		return "", err
	}

	if media.VideoURL != "" {
		return p.publishReel(ctx, igUserID, accessToken, media)
	}
	if media.ImageURL != "" {
		containerID, err := p.client.CreateImageContainer(ctx, igUserID, accessToken, media.ImageURL, media.Caption)
		if err != nil {
			return "", err
		}
		return p.client.PublishContainer(ctx, igUserID, accessToken, containerID)
	}
	return "", fmt.Errorf("promotion has no media to publish")
}

func (p *InstagramPublisher) publishReel(ctx context.Context, igUserID, accessToken string, media Media) (string, error) {
	containerID, err := p.client.CreateReelContainer(ctx, igUserID, accessToken, media.VideoURL, media.Caption)
	if err != nil {
		return "", err
	}

	if err := p.waitForContainer(ctx, containerID, accessToken); err != nil {
		return "", err
	}

	return p.client.PublishContainer(ctx, igUserID, accessToken, containerID)
}

func (p *InstagramPublisher) waitForContainer(ctx context.Context, containerID, accessToken string) error {
	for attempt := 1; attempt <= maxPollAttempts; attempt++ {
		status, err := p.client.ContainerStatus(ctx, containerID, accessToken)
		if err != nil {
			return err
		}

		switch status {
		case "FINISHED":
			return nil
		case "ERROR":
			return fmt.Errorf("instagram container %s failed processing", containerID)
		}

		slog.Debug("instagram container still processing", "container_id", containerID, "attempt", attempt, "status", status)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.pollInterval):
		}
	}

	return fmt.Errorf("instagram container %s did not finish processing after %d attempts", containerID, maxPollAttempts)
}

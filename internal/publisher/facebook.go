package publisher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/promojour/promojour/internal/graph"
	"github.com/promojour/promojour/storage/db"
)

// FacebookPublisher publishes to a Facebook page. Reels run a synchronous
// start/upload/finish sequence; image media goes out as a page photo post.
type FacebookPublisher struct {
	client *graph.Client
}

func NewFacebookPublisher(client *graph.Client) *FacebookPublisher {
	return &FacebookPublisher{client: client}
}

func (p *FacebookPublisher) Publish(ctx context.Context, conn db.SocialConnection, media Media) (string, error) {
	pageID, accessToken, err := connectionCredentials(conn)
	if err != nil {
		return "", err
	}

	if media.VideoURL != "" {
		return p.publishReel(ctx, pageID, accessToken, media)
	}
	if media.ImageURL != "" {
		return p.client.PublishPhoto(ctx, pageID, accessToken, media.ImageURL, media.Caption)
	}
	return "", fmt.Errorf("promotion has no media to publish")
}

func (p *FacebookPublisher) publishReel(ctx context.Context, pageID, accessToken string, media Media) (string, error) {
	videoID, err := p.client.StartReelUpload(ctx, pageID, accessToken)
	if err != nil {
		return "", err
	}
	slog.Debug("facebook reel upload started", "page_id", pageID, "video_id", videoID)

	if err := p.client.UploadReelByURL(ctx, videoID, accessToken, media.VideoURL); err != nil {
		return "", err
	}

	if err := p.client.FinishReelUpload(ctx, pageID, videoID, accessToken, media.Caption); err != nil {
		return "", err
	}

	return videoID, nil
}

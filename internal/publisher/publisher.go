package publisher

import (
	"context"
	"fmt"

	"github.com/promojour/promojour/internal/graph"
	"github.com/promojour/promojour/storage/db"
)

const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
)

// Media is the content handed to a platform publisher. VideoURL takes
// precedence over ImageURL when both are set.
type Media struct {
	Caption  string
	ImageURL string
	VideoURL string
}

// Publisher publishes one piece of media through one store's platform
// connection and returns the platform post ID. Each platform runs its own
// upload sequence behind this contract; a returned error is terminal for the
// attempt.
type Publisher interface {
	Publish(ctx context.Context, conn db.SocialConnection, media Media) (string, error)
}

// ForPlatform returns the publisher for a platform name.
func ForPlatform(platform string, client *graph.Client) (Publisher, error) {
	switch platform {
	case PlatformFacebook:
		return NewFacebookPublisher(client), nil
	case PlatformInstagram:
		return NewInstagramPublisher(client), nil
	default:
		return nil, fmt.Errorf("unsupported platform %q", platform)
	}
}

// connectionCredentials verifies that a connection is usable and returns the
// platform account ID and access token. is_connected alone is not enough; the
// token must also be present.
func connectionCredentials(conn db.SocialConnection) (string, string, error) {
	if !conn.IsConnected || !conn.AccessToken.Valid || conn.AccessToken.String == "" {
		return "", "", fmt.Errorf("no active %s connection for store %s", conn.Platform, conn.StoreID)
	}
	if !conn.AccountID.Valid || conn.AccountID.String == "" {
		return "", "", fmt.Errorf("%s connection for store %s has no account id", conn.Platform, conn.StoreID)
	}
	return conn.AccountID.String, conn.AccessToken.String, nil
}

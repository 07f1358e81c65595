package igdb

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	twitchTokenURL = "https://id.twitch.tv/oauth2/token"

	// Tokens are treated as expired this long before they actually are, so
	// a request never goes out with a token about to die mid-flight.
	tokenExpiryMargin = 5 * time.Minute
)

// newTokenSource builds a cached Twitch app-access-token source using the
// OAuth client-credentials grant. The source refreshes automatically and is
// safe for concurrent use.
func newTokenSource(ctx context.Context, clientID, clientSecret, tokenURL string) oauth2.TokenSource {
	if tokenURL == "" {
		tokenURL = twitchTokenURL
	}

	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	return oauth2.ReuseTokenSourceWithExpiry(nil, cfg.TokenSource(ctx), tokenExpiryMargin)
}

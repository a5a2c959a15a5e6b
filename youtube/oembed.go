package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"

	"podigest/article"
	"podigest/httpx"
)

// DefaultOEmbedURL is the public oEmbed endpoint.
const DefaultOEmbedURL = "https://www.youtube.com/oembed"

type oembedResponse struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
	AuthorURL  string `json:"author_url"`
}

// fetchOEmbed fills title, channel, and channel URL from the oEmbed
// endpoint. Any failure leaves the three fields untouched.
func fetchOEmbed(ctx context.Context, client *httpx.Client, baseURL, videoID string, meta *article.VideoMeta) {
	watchURL := "https://www.youtube.com/watch?v=" + videoID
	reqURL := fmt.Sprintf("%s?url=%s&format=json", baseURL, url.QueryEscape(watchURL))

	resp, err := client.Get(ctx, reqURL, nil)
	if err != nil {
		log.Printf("[youtube] oembed failed for %s: %v", videoID, err)
		return
	}

	var data oembedResponse
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		log.Printf("[youtube] oembed parse failed for %s: %v", videoID, err)
		return
	}

	if data.Title != "" {
		meta.Title = strPtr(data.Title)
	}
	if data.AuthorName != "" {
		meta.Channel = strPtr(data.AuthorName)
	}
	if data.AuthorURL != "" {
		meta.ChannelURL = strPtr(data.AuthorURL)
	}
}

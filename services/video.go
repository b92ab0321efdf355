package services

import "strings"

// VideoEmbedURL converts a YouTube or Vimeo watch URL into its embeddable
// player form. Unrecognized URLs are returned unchanged; empty input stays
// empty.
func VideoEmbedURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	switch {
	case strings.Contains(rawURL, "youtube.com/watch"):
		parts := strings.SplitN(rawURL, "v=", 2)
		if len(parts) < 2 {
			return rawURL
		}
		videoID := strings.SplitN(parts[1], "&", 2)[0]
		return "https://www.youtube.com/embed/" + videoID

	case strings.Contains(rawURL, "youtu.be"):
		segments := strings.Split(strings.TrimSuffix(rawURL, "/"), "/")
		return "https://www.youtube.com/embed/" + segments[len(segments)-1]

	case strings.Contains(rawURL, "vimeo.com"):
		segments := strings.Split(strings.TrimSuffix(rawURL, "/"), "/")
		return "https://player.vimeo.com/video/" + segments[len(segments)-1]
	}

	return rawURL
}

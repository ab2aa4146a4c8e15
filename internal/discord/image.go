package discord

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// Discord caps guild icons well below this.
const maxImageBytes = 10 << 20

var ErrNotAnImage = errors.New("not an image")

// FetchImageDataURI downloads an image and returns it as a data URI
// suitable for the guild icon field.
func FetchImageDataURI(ctx context.Context, client *http.Client, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("invalid image url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return "", err
	}
	if len(body) > maxImageBytes {
		return "", fmt.Errorf("image larger than %d bytes", maxImageBytes)
	}

	subtype := imageSubtype(u, resp.Header.Get("Content-Type"), body)
	if subtype == "" {
		return "", ErrNotAnImage
	}
	return fmt.Sprintf("data:image/%s;base64,%s", subtype, base64.StdEncoding.EncodeToString(body)), nil
}

// imageSubtype prefers the url extension, then the declared content type,
// then sniffing.
func imageSubtype(u *url.URL, contentType string, body []byte) string {
	if ext := strings.TrimPrefix(strings.ToLower(path.Ext(u.Path)), "."); ext != "" {
		switch ext {
		case "jpg":
			return "jpeg"
		case "png", "jpeg", "gif", "webp":
			return ext
		}
	}
	for _, ct := range []string{contentType, http.DetectContentType(body)} {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil {
			continue
		}
		if sub, ok := strings.CutPrefix(mediaType, "image/"); ok {
			return sub
		}
	}
	return ""
}

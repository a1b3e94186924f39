package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// FetchFunc retrieves the raw catalog bytes identified by a URL.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// HTTPFetcher returns a FetchFunc issuing a single GET with client.
// A nil client means http.DefaultClient. Any non-2xx status is a failure.
func HTTPFetcher(client *http.Client) FetchFunc {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context, u string) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		return data, nil
	}
}

// FileFetcher returns a FetchFunc reading file:// URLs and plain paths
// from the local filesystem.
func FileFetcher() FetchFunc {
	return func(ctx context.Context, u string) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path, err := localPath(u)
		if err != nil {
			return nil, err
		}
		return os.ReadFile(path)
	}
}

// AutoFetcher dispatches on the URL scheme: http and https go to the
// network through client, everything else is read from disk.
func AutoFetcher(client *http.Client) FetchFunc {
	httpFetch := HTTPFetcher(client)
	fileFetch := FileFetcher()
	return func(ctx context.Context, u string) ([]byte, error) {
		if IsRemote(u) {
			return httpFetch(ctx, u)
		}
		return fileFetch(ctx, u)
	}
}

// IsRemote reports whether u names an http or https resource.
func IsRemote(u string) bool {
	lower := strings.ToLower(u)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func localPath(u string) (string, error) {
	if !strings.HasPrefix(strings.ToLower(u), "file:") {
		return u, nil
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return "", fmt.Errorf("invalid file url %q: %w", u, err)
	}
	if parsed.Path == "" {
		// file:relative/path
		return parsed.Opaque, nil
	}
	return parsed.Path, nil
}

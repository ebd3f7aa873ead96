package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/cbout22/ghtree/internal/config"
	"github.com/cbout22/ghtree/internal/reader"
)

var _ reader.ContentClient = (*Client)(nil)

// contentItem is one object of the GitHub contents API.
type contentItem struct {
	Type         string `json:"type"`
	Name         string `json:"name"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	SHA          string `json:"sha"`
	Encoding     string `json:"encoding"`
	Content      string `json:"content"`
	DownloadURL  string `json:"download_url"`
	Target       string `json:"target"`
	SubmoduleURL string `json:"submodule_git_url"`
}

// ContentsURL builds the API path of the contents endpoint.
func ContentsURL(org, repo, p string) string {
	u := fmt.Sprintf("/repos/%s/%s/contents", url.PathEscape(org), url.PathEscape(repo))
	if p = strings.Trim(p, "/"); p != "" {
		u += "/" + escapePath(p)
	}
	return u
}

func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// Contents reads a directory listing or a file body from the contents API.
func (c *Client) Contents(ctx context.Context, org, repo, path, ref string) (reader.Contents, error) {
	u := ContentsURL(org, repo, path)
	req := c.request(ctx)
	if ref != "" {
		req.SetQueryParam("ref", ref)
	}

	res, err := req.Get(u)
	if err := checkResponse("GET", u, res, err); err != nil {
		return reader.Contents{}, err
	}

	body := bytes.TrimSpace(res.Body())
	if len(body) > 0 && body[0] == '[' {
		var items []contentItem
		if err := json.Unmarshal(body, &items); err != nil {
			return reader.Contents{}, fmt.Errorf("decoding listing of %s: %w", u, err)
		}
		entries := make([]reader.EntryDescriptor, 0, len(items))
		for _, item := range items {
			entries = append(entries, reader.EntryDescriptor{
				Type: item.Type,
				Name: item.Name,
				Path: item.Path,
				Size: item.Size,
			})
		}
		return reader.Listing(entries...), nil
	}

	var item contentItem
	if err := json.Unmarshal(body, &item); err != nil {
		return reader.Contents{}, fmt.Errorf("decoding contents of %s: %w", u, err)
	}
	data, err := c.itemBody(ctx, item)
	if err != nil {
		return reader.Contents{}, err
	}
	return reader.FileBody(data), nil
}

// itemBody extracts the bytes of a single object response.
func (c *Client) itemBody(ctx context.Context, item contentItem) ([]byte, error) {
	switch {
	case item.Encoding == "base64":
		data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(item.Content, "\n", ""))
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", item.Path, err)
		}
		return data, nil
	case item.Type == "symlink":
		return []byte(item.Target), nil
	case item.Type == "submodule":
		return []byte(item.SubmoduleURL), nil
	case item.DownloadURL != "":
		// Files over 1 MB come without inline content.
		var buf bytes.Buffer
		if _, err := c.Download(ctx, item.DownloadURL, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case item.Encoding == "" && item.Content != "":
		return []byte(item.Content), nil
	}
	return []byte{}, nil
}

// Archive asks for a snapshot of the repository and returns the location the
// API redirects to, without downloading it.
func (c *Client) Archive(ctx context.Context, org, repo string, format config.ArchiveFormat, ref string) (reader.Archive, error) {
	if !format.IsValid() {
		return reader.Archive{}, fmt.Errorf("unsupported archive format %q", format)
	}
	u := ArchiveURL(org, repo, format, ref)

	res, err := c.request(context.WithValue(ctx, noFollowKey, true)).Get(u)
	if err := checkResponse("GET", u, res, err); err != nil {
		return reader.Archive{}, err
	}

	location := res.Header().Get("Location")
	if location == "" {
		location = requestURL(res)
	}
	return reader.Archive{Format: format, Ref: ref, URL: location}, nil
}

// ArchiveURL builds the API path of the archive endpoint.
func ArchiveURL(org, repo string, format config.ArchiveFormat, ref string) string {
	u := fmt.Sprintf("/repos/%s/%s/%s", url.PathEscape(org), url.PathEscape(repo), format)
	if ref != "" {
		u += "/" + escapePath(ref)
	}
	return u
}

// Download streams the resource at rawURL to w, following redirects.
func (c *Client) Download(ctx context.Context, rawURL string, w io.Writer) (int64, error) {
	res, err := c.request(ctx).SetDoNotParseResponse(true).Get(rawURL)
	if err != nil {
		return 0, &TransportError{Method: "GET", URL: rawURL, Err: err}
	}
	body := res.RawBody()
	defer body.Close()

	if res.IsError() {
		return 0, &HTTPError{Method: "GET", URL: rawURL, StatusCode: res.StatusCode()}
	}

	n, err := io.Copy(w, body)
	if err != nil {
		return n, fmt.Errorf("downloading %s: %w", rawURL, err)
	}
	return n, nil
}

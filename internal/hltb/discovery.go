package hltb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Resolution is the outcome of endpoint discovery. Fallback is true when Path is the
// hardcoded default because discovery did not succeed.
type Resolution struct {
	Path     string
	Fallback bool
}

// EndpointResolver finds the search endpoint path. Implementations never fail; they fall back
// to a default path instead.
type EndpointResolver interface {
	Resolve(ctx context.Context) Resolution
}

// StaticResolver always resolves to a fixed path.
type StaticResolver string

// Resolve implements EndpointResolver.
func (s StaticResolver) Resolve(context.Context) Resolution {
	return Resolution{Path: string(s)}
}

var (
	// appScriptPattern matches the versioned Next.js app chunk referenced by the homepage.
	appScriptPattern = regexp.MustCompile(`_app-[A-Za-z0-9_-]+\.js$`)
	// fetchPathPattern captures the first path segment of fetch("/api/<segment>/...") calls.
	fetchPathPattern = regexp.MustCompile("fetch\\(\\s*[\"'`]/api/([A-Za-z0-9_-]+)/")
)

// nonSearchSegment is the other API endpoint referenced by the bundle.
const nonSearchSegment = "find"

// ScriptResolver discovers the search path by reading the site's app bundle.
type ScriptResolver struct {
	baseURL     string
	httpClient  HTTPDoer
	userAgent   string
	defaultPath string
}

// NewScriptResolver creates a resolver reading the homepage at baseURL.
func NewScriptResolver(baseURL string, httpClient HTTPDoer, userAgent string) *ScriptResolver {
	return &ScriptResolver{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient:  httpClient,
		userAgent:   userAgent,
		defaultPath: DefaultSearchPath,
	}
}

// Resolve implements EndpointResolver.
func (r *ScriptResolver) Resolve(ctx context.Context) Resolution {
	path, err := r.discover(ctx)
	if err != nil {
		slog.Warn("HowLongToBeat endpoint discovery failed, using default", "path", r.defaultPath, "error", err)
		return Resolution{Path: r.defaultPath, Fallback: true}
	}
	slog.Debug("Discovered HowLongToBeat search endpoint", "path", path)
	return Resolution{Path: path}
}

func (r *ScriptResolver) discover(ctx context.Context) (string, error) {
	page, err := r.fetch(ctx, r.baseURL+"/")
	if err != nil {
		return "", fmt.Errorf("homepage: %w", err)
	}

	scriptSrc, err := findAppScript(page)
	if err != nil {
		return "", err
	}

	scriptURL, err := resolveReference(r.baseURL, scriptSrc)
	if err != nil {
		return "", err
	}

	script, err := r.fetch(ctx, scriptURL)
	if err != nil {
		return "", fmt.Errorf("app script: %w", err)
	}

	return findSearchPath(script)
}

func (r *ScriptResolver) fetch(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Referer", r.baseURL+"/")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, target)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// findAppScript returns the src attribute of the app bundle script tag.
func findAppScript(page string) (string, error) {
	tokenizer := html.NewTokenizer(strings.NewReader(page))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return "", err
			}
			return "", fmt.Errorf("app script reference not found")
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "script" {
				continue
			}
			for _, attr := range token.Attr {
				if attr.Key == "src" && appScriptPattern.MatchString(attr.Val) {
					return attr.Val, nil
				}
			}
		}
	}
}

// findSearchPath scans script text for a fetch call to an API path other than "find".
func findSearchPath(script string) (string, error) {
	for _, match := range fetchPathPattern.FindAllStringSubmatch(script, -1) {
		if match[1] != nonSearchSegment {
			return "/api/" + match[1], nil
		}
	}
	return "", fmt.Errorf("search endpoint not found in app script")
}

func resolveReference(baseURL, ref string) (string, error) {
	base, err := url.Parse(baseURL + "/")
	if err != nil {
		return "", err
	}
	target, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid script reference %q: %w", ref, err)
	}
	return base.ResolveReference(target).String(), nil
}

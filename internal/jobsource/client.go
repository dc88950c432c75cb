// Package jobsource provides the HTTP client for the remote job posting API.
package jobsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brvagas/jobhub/internal/schemas"
	"github.com/brvagas/jobhub/pkg/log"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; JobHub/1.0)"

// extraPages is the number of best-effort pagination requests issued after
// the primary one, each with perPage results.
const (
	extraPages = 3
	perPage    = 100
)

// Options configures the client behavior.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	UserAgent    string
	StrictSchema bool   // validate each document against the job schema
	SchemaPath   string // path to job.schema.json, resolved lazily
}

// DefaultOptions returns sensible defaults for the public job source.
func DefaultOptions() *Options {
	return &Options{
		BaseURL:   "https://apibr.com/vagas/api/v2",
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client fetches job postings from the remote source.
type Client struct {
	opts   Options
	http   *http.Client
	logger *log.Logger
}

// New creates a Client. A nil opts uses DefaultOptions; a nil logger
// silences page-discovery warnings.
func New(opts *Options, logger *log.Logger) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Client{
		opts:   *opts,
		http:   &http.Client{Timeout: opts.Timeout},
		logger: logger,
	}
}

// FetchAll requests the complete job list. The initial unparameterized
// request is fatal on failure; up to three additional paginated requests are
// issued as a best-effort attempt to discover more results, merging by id and
// tolerating individual page failures.
func (c *Client) FetchAll(ctx context.Context, q Query) ([]Job, *PageInfo, error) {
	jobs, info, err := c.fetchPage(ctx, q, 0)
	if err != nil {
		return nil, nil, err
	}

	pages := make([][]Job, extraPages)
	var g errgroup.Group
	for i := 0; i < extraPages; i++ {
		page := i + 1
		idx := i
		g.Go(func() error {
			extra, _, err := c.fetchPage(ctx, q, page)
			if err != nil {
				c.logger.Warn("%v", &PageError{Page: page, Cause: err})
				return nil
			}
			pages[idx] = extra
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[int64]struct{}, len(jobs))
	for _, j := range jobs {
		seen[j.ID] = struct{}{}
	}
	for _, extra := range pages {
		for _, j := range extra {
			if _, ok := seen[j.ID]; ok {
				continue
			}
			seen[j.ID] = struct{}{}
			jobs = append(jobs, j)
		}
	}

	c.logger.Debug("loaded %d jobs from %s", len(jobs), c.opts.BaseURL)
	return jobs, info, nil
}

// fetchPage issues one GET /issues request. page 0 means no pagination
// parameters at all.
func (c *Client) fetchPage(ctx context.Context, q Query, page int) ([]Job, *PageInfo, error) {
	endpoint := c.opts.BaseURL + "/issues"

	params := url.Values{}
	if q.Term != "" {
		params.Set("term", q.Term)
	}
	if q.Label != "" {
		params.Set("label", q.Label)
	}
	if q.Org != "" {
		params.Set("org", q.Org)
	}
	if q.Author != "" {
		params.Set("author", q.Author)
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
		params.Set("per_page", strconv.Itoa(perPage))
	}
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, &FetchError{URL: endpoint, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, &FetchError{URL: endpoint, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, &FetchError{URL: endpoint, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &FetchError{URL: endpoint, Message: "failed to read response body", Cause: err}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, nil, &FetchError{URL: endpoint, Message: "failed to parse response", Cause: err}
	}

	jobs := make([]Job, 0, len(raw))
	for _, doc := range raw {
		if c.opts.StrictSchema {
			if err := schemas.ValidateJob(doc, c.opts.SchemaPath); err != nil {
				return nil, nil, &FetchError{URL: endpoint, Message: "document failed schema validation", Cause: err}
			}
		}
		var j Job
		if err := json.Unmarshal(doc, &j); err != nil {
			return nil, nil, &FetchError{URL: endpoint, Message: "failed to decode job document", Cause: err}
		}
		jobs = append(jobs, j)
	}

	return jobs, parsePageInfo(resp.Header), nil
}

// parsePageInfo reads pagination metadata headers. It returns nil when the
// source omits them.
func parsePageInfo(h http.Header) *PageInfo {
	totalPages := headerInt(h, "X-Total-Pages")
	totalResults := headerInt(h, "X-Total-Results")
	currentPage := headerInt(h, "X-Current-Page")
	if totalPages == 0 && totalResults == 0 && currentPage == 0 {
		return nil
	}
	return &PageInfo{
		TotalPages:   totalPages,
		TotalResults: totalResults,
		CurrentPage:  currentPage,
	}
}

func headerInt(h http.Header, key string) int {
	v := h.Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

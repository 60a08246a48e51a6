package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bookden/bookden/internal/domain"
)

const (
	basePath       = "/api"
	defaultTimeout = 10 * time.Second
	userAgent      = "Bookden/1.0"
)

// User-facing failure messages. Everything except the mapped 404/409
// mutation outcomes collapses to one generic message per operation; the
// raw cause is logged, never shown.
var (
	errFetchBooks   = fmt.Errorf("Failed to fetch books")
	errFetchBook    = fmt.Errorf("Failed to fetch book details")
	errFetchLibrary = fmt.Errorf("Failed to fetch library books")
	errAddBook      = fmt.Errorf("Failed to add book to library")
	errRemoveBook   = fmt.Errorf("Failed to remove book from library")

	// A 404 on a single-book fetch keeps the generic message but wraps
	// the domain sentinel so the detail view can tell "gone" apart from
	// a transport failure.
	errFetchBookGone = fmt.Errorf("%w: %w", errFetchBook, domain.ErrBookNotFound)
)

// Client implements domain.CatalogRepository, domain.LibraryRepository
// and domain.HealthChecker against the book service's HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new book service client. A non-positive timeout
// falls back to the default 10 seconds.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// doRequest performs an HTTP request and returns the body and status
// code. Transport failures are returned as-is for the caller to map.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, int, error) {
	reqURL := c.baseURL + basePath + path
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("api request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	return data, resp.StatusCode, nil
}

// ListBooks returns books matching the filters, in the order the
// service returned them. Absent filter fields are omitted from the
// query string entirely.
func (c *Client) ListBooks(ctx context.Context, filters domain.SearchFilters) ([]domain.Book, error) {
	filters = filters.Normalized()

	query := url.Values{}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	if filters.Genre != "" {
		query.Set("genre", filters.Genre)
	}
	if filters.Author != "" {
		query.Set("author", filters.Author)
	}

	body, status, err := c.doRequest(ctx, http.MethodGet, "/books", query, nil)
	if err != nil {
		c.logger.Error("failed to fetch books", "error", err)
		return nil, errFetchBooks
	}
	if status != http.StatusOK {
		c.logger.Error("failed to fetch books", "status", status, "body", string(body))
		return nil, errFetchBooks
	}

	var dtos []bookDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		c.logger.Error("failed to parse books response", "error", err)
		return nil, errFetchBooks
	}

	return mapBooks(dtos), nil
}

// GetBook fetches a single book by identifier. All failures carry the
// same user-facing message; a 404 additionally wraps
// domain.ErrBookNotFound for callers that need to detect it.
func (c *Client) GetBook(ctx context.Context, id string) (domain.Book, error) {
	body, status, err := c.doRequest(ctx, http.MethodGet, "/books/"+url.PathEscape(id), nil, nil)
	if err != nil {
		c.logger.Error("failed to fetch book", "id", id, "error", err)
		return domain.Book{}, errFetchBook
	}
	if status == http.StatusNotFound {
		c.logger.Error("failed to fetch book", "id", id, "status", status)
		return domain.Book{}, errFetchBookGone
	}
	if status != http.StatusOK {
		c.logger.Error("failed to fetch book", "id", id, "status", status)
		return domain.Book{}, errFetchBook
	}

	var dto bookDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		c.logger.Error("failed to parse book response", "id", id, "error", err)
		return domain.Book{}, errFetchBook
	}

	return dto.toDomain(), nil
}

// ListLibrary fetches the library entries and projects each to its
// embedded book, preserving server order.
func (c *Client) ListLibrary(ctx context.Context) ([]domain.Book, error) {
	body, status, err := c.doRequest(ctx, http.MethodGet, "/library", nil, nil)
	if err != nil {
		c.logger.Error("failed to fetch library", "error", err)
		return nil, errFetchLibrary
	}
	if status != http.StatusOK {
		c.logger.Error("failed to fetch library", "status", status, "body", string(body))
		return nil, errFetchLibrary
	}

	var entries []libraryEntryDTO
	if err := json.Unmarshal(body, &entries); err != nil {
		c.logger.Error("failed to parse library response", "error", err)
		return nil, errFetchLibrary
	}

	books := make([]domain.Book, len(entries))
	for i, e := range entries {
		books[i] = e.Book.toDomain()
	}
	return books, nil
}

// AddToLibrary requests addition of a book. A 404 maps to
// domain.ErrBookNotFound and a 409 to domain.ErrAlreadyInLibrary; any
// other failure collapses to the generic add message.
func (c *Client) AddToLibrary(ctx context.Context, bookID string) error {
	payload := addRequest{BookID: bookID}

	body, status, err := c.doRequest(ctx, http.MethodPost, "/library", nil, payload)
	if err != nil {
		c.logger.Error("failed to add book to library", "bookId", bookID, "error", err)
		return errAddBook
	}

	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		c.logger.Error("add to library: book not found", "bookId", bookID)
		return domain.ErrBookNotFound
	case status == http.StatusConflict:
		c.logger.Error("add to library: duplicate", "bookId", bookID)
		return domain.ErrAlreadyInLibrary
	default:
		c.logger.Error("failed to add book to library", "bookId", bookID, "status", status, "body", string(body))
		return errAddBook
	}
}

// RemoveFromLibrary requests removal of a book. A 404 maps to
// domain.ErrNotInLibrary; any other failure collapses to the generic
// remove message.
func (c *Client) RemoveFromLibrary(ctx context.Context, bookID string) error {
	body, status, err := c.doRequest(ctx, http.MethodDelete, "/library/"+url.PathEscape(bookID), nil, nil)
	if err != nil {
		c.logger.Error("failed to remove book from library", "bookId", bookID, "error", err)
		return errRemoveBook
	}

	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		c.logger.Error("remove from library: not in library", "bookId", bookID)
		return domain.ErrNotInLibrary
	default:
		c.logger.Error("failed to remove book from library", "bookId", bookID, "status", status, "body", string(body))
		return errRemoveBook
	}
}

// CheckHealth reports whether the service answered the health endpoint
// with status "OK". Any failure reads as unhealthy.
func (c *Client) CheckHealth(ctx context.Context) bool {
	body, status, err := c.doRequest(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		c.logger.Warn("health check failed", "error", err)
		return false
	}
	if status != http.StatusOK {
		c.logger.Warn("health check failed", "status", status)
		return false
	}

	var health healthDTO
	if err := json.Unmarshal(body, &health); err != nil {
		c.logger.Warn("failed to parse health response", "error", err)
		return false
	}

	return health.Status == "OK"
}

// Package anaf fetches the monthly VAT sheet archive from the ANAF web
// service. Access requires the taxpayer's SPV client certificate; the
// service answers either with a zip archive, a JSON error body, or a
// redirect to its maintenance page.
package anaf

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the production sheet endpoint.
const DefaultBaseURL = "https://webserviceapl.anaf.ro/decont/ws/v1/info"

// maintenanceHost is where the service parks requests during downtime.
const maintenanceHost = "mentenanta.anaf.ro"

// ResultKind classifies a completed exchange with the service.
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultErrorWithMessage
	ResultMaintenance
)

// ErrorKind is the service-side error taxonomy, recovered from the free-text
// error message the API returns.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrNotFound
	ErrInvalidFiscalID
	ErrInvalidYear
	ErrYearBefore2024
	ErrInvalidMonth
	ErrPeriodBefore202407
	ErrNoAccessToInvoices
	ErrNoAccessToFiscalID
	ErrGeneric
	ErrTooManyRequests
)

// Archive is the downloaded sheet bundle.
type Archive struct {
	Content  []byte
	FileName string
	MimeType string
}

// APIError is the JSON error body the service returns on a declined request.
type APIError struct {
	TraceID      string `json:"trace_id"`
	DateResponse string `json:"date_response"`
	Message      string `json:"error"`
}

// Kind maps the service's free-text error message onto the known taxonomy.
func (e *APIError) Kind() ErrorKind {
	m := e.Message
	switch {
	case m == "":
		return ErrUnknown
	case strings.Contains(m, "CUI=") && strings.Contains(m, "este invalid"):
		return ErrInvalidFiscalID
	case strings.Contains(m, "An=") && strings.Contains(m, "este invalid"):
		return ErrInvalidYear
	case strings.Contains(m, "An=") && strings.Contains(m, "este mai mic decat 2024"):
		return ErrYearBefore2024
	case strings.Contains(m, "Luna=") && strings.Contains(m, "este invalida"):
		return ErrInvalidMonth
	case strings.Contains(m, "Pentru anul 2024, luna trebuie sa fie >= 7"):
		return ErrPeriodBefore202407
	case strings.Contains(m, "Nu exista raspuns pentru"):
		return ErrNotFound
	case strings.Contains(m, "S-au efectuat deja") && strings.Contains(m, "apeluri pentru cui"):
		return ErrTooManyRequests
	case strings.Contains(m, "Nu aveti drept in SPV pentru CIF"):
		return ErrNoAccessToFiscalID
	case strings.Contains(m, "Nu exista niciun CIF pentru care sa aveti drept in SPV"):
		return ErrNoAccessToInvoices
	case strings.Contains(m, "A aparut o eroare tehnica"):
		return ErrGeneric
	default:
		return ErrUnknown
	}
}

// Response is the outcome of one sheet fetch.
type Response struct {
	Kind       ResultKind
	StatusCode int
	Archive    *Archive  // set when Kind is ResultSuccess
	APIError   *APIError // set when Kind is ResultErrorWithMessage
	Body       string    // raw body of an error response
}

// Client talks to the sheet endpoint with a fixed client certificate.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *zap.Logger
}

// Option adjusts a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint (tests, proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHTTPClient substitutes the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient builds a client authenticating with the given SPV certificate.
func NewClient(cert tls.Certificate, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{Certificates: []tls.Certificate{cert}},
			},
		},
		baseURL: DefaultBaseURL,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchSheet requests the sheet archive for one taxpayer and period.
// Service-level declines (maintenance, API error bodies) come back as a
// Response, not an error; errors are reserved for transport failures and
// responses the client cannot interpret.
func (c *Client) FetchSheet(ctx context.Context, fiscalID, year, month int) (*Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	q := u.Query()
	q.Set("cui", strconv.Itoa(fiscalID))
	q.Set("an", strconv.Itoa(year))
	q.Set("luna", strconv.Itoa(month))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	c.log.Debug("fetching VAT sheet",
		zap.Int("cui", fiscalID), zap.Int("year", year), zap.Int("month", month))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling sheet endpoint: %w", err)
	}
	defer resp.Body.Close()

	// Downtime shows up as a redirect chain ending at the maintenance host.
	if resp.Request != nil && resp.Request.URL.Host == maintenanceHost {
		return &Response{Kind: ResultMaintenance, StatusCode: resp.StatusCode}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	contentType := mediaType(resp.Header.Get("Content-Type"))
	switch {
	case resp.StatusCode == http.StatusOK && contentType == "application/zip":
		return &Response{
			Kind:       ResultSuccess,
			StatusCode: resp.StatusCode,
			Archive: &Archive{
				Content:  body,
				FileName: dispositionFileName(resp.Header.Get("Content-Disposition")),
				MimeType: contentType,
			},
		}, nil

	case resp.StatusCode == http.StatusOK && contentType == "application/json":
		var apiErr APIError
		if err := json.Unmarshal(body, &apiErr); err != nil {
			return nil, fmt.Errorf("decoding API error body: %w", err)
		}
		return &Response{
			Kind:       ResultErrorWithMessage,
			StatusCode: resp.StatusCode,
			APIError:   &apiErr,
			Body:       string(body),
		}, nil
	}

	return nil, fmt.Errorf("unexpected response: status %d, content type %q", resp.StatusCode, contentType)
}

func mediaType(header string) string {
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return mt
}

func dispositionFileName(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}

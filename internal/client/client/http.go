package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/firemap/internal/client/models"
	"github.com/dmitrijs2005/firemap/internal/common"
	"github.com/dmitrijs2005/firemap/internal/logging"
	"github.com/dmitrijs2005/firemap/internal/netx"
)

// HTTPClient talks to the REST API. Every response is wrapped in
// {success, message, data, token}.
type HTTPClient struct {
	base      *url.URL
	http      *http.Client
	tokens    TokenSource
	endpoints Endpoints
	log       logging.Logger
	timeout   time.Duration
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option { return func(c *HTTPClient) { c.http = hc } }

// WithTimeout sets the request timeout. It applies to the client passed with
// WithHTTPClient too, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithEndpoints(e Endpoints) Option { return func(c *HTTPClient) { c.endpoints = e } }

func WithLogger(l logging.Logger) Option { return func(c *HTTPClient) { c.log = l } }

func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base url: unsupported scheme %q", u.Scheme)
	}

	c := &HTTPClient{
		base:      u,
		http:      &http.Client{Timeout: 30 * time.Second},
		tokens:    tokens,
		endpoints: DefaultEndpoints(),
		log:       logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
}

func (e envelope) decode(out any) error {
	if out == nil || len(e.Data) == 0 || string(e.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// request describes one call. body is either a JSON value or a *formBody.
type request struct {
	method string
	path   string
	auth   bool
	body   any
}

func (c *HTTPClient) do(ctx context.Context, r request) (envelope, error) {
	var env envelope

	var token string
	if r.auth {
		if c.tokens == nil {
			return env, common.ErrNoSession
		}
		t, err := c.tokens.Token(ctx)
		if err != nil {
			return env, err
		}
		token = t
	}

	var (
		body        io.Reader
		contentType string
	)
	switch b := r.body.(type) {
	case nil:
	case *formBody:
		if b.err != nil {
			return env, b.err
		}
		if err := b.w.Close(); err != nil {
			return env, err
		}
		body, contentType = &b.buf, b.w.FormDataContentType()
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return env, fmt.Errorf("encode request: %w", err)
		}
		body, contentType = bytes.NewReader(data), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.base.JoinPath(r.path).String(), body)
	if err != nil {
		return env, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "api request failed", "method", r.method, "path", r.path, "err", err)
		return env, c.mapError(err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "api request", "method", r.method, "path", r.path,
		"status", resp.StatusCode, "took", time.Since(start))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return env, c.mapError(err)
	}
	decodeErr := json.Unmarshal(raw, &env)

	if err := c.mapStatus(resp.StatusCode, env.Message); err != nil {
		return env, err
	}
	if decodeErr != nil {
		return env, fmt.Errorf("decode response: %w", decodeErr)
	}
	if !env.Success {
		return env, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return env, nil
}

// mapError classifies transport failures. Cancellation by the caller is
// passed through untouched.
func (c *HTTPClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (c *HTTPClient) mapStatus(status int, message string) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, message)
		}
		return ErrUnauthorized
	case status >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	case status < 200 || status > 299:
		return &APIError{Status: status, Message: message}
	}
	return nil
}

// formBody builds a multipart request.
type formBody struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

func newForm() *formBody {
	f := &formBody{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

// field writes a text part. The first write error is kept and reported when
// the request is sent.
func (f *formBody) field(name, value string) *formBody {
	if f.err != nil {
		return f
	}
	if err := f.w.WriteField(name, value); err != nil {
		f.err = fmt.Errorf("form field %s: %w", name, err)
	}
	return f
}

// photo writes p as a file part. A missing name is synthesised from prefix;
// a missing content type is sniffed from the payload.
func (f *formBody) photo(name, prefix string, p models.Photo) error {
	filename := p.Name
	ct := p.ContentType
	sniffed, ext := netx.Sniff(p.Data)
	if ct == "" {
		ct = sniffed
	}
	if filename == "" {
		suffix, err := common.MakeRandHexString(4)
		if err != nil {
			return err
		}
		filename = fmt.Sprintf("%s_%d_%s%s", prefix, time.Now().Unix(), suffix, ext)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(name), escapeQuotes(filename)))
	h.Set("Content-Type", ct)

	w, err := f.w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = w.Write(p.Data)
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }

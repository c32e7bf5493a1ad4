package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client envuelve *http.Client para adapters REST/JSON (proveedor de identidad).
type Client struct {
	http    *http.Client
	baseURL string
	query   url.Values // se agrega a cada request (p.ej. ?key=)
	headers map[string]string
}

type Option func(*Client) error

func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		if _, err := url.ParseRequestURI(raw); err != nil {
			return fmt.Errorf("invalid base url: %w", err)
		}
		c.baseURL = strings.TrimRight(raw, "/")
		return nil
	}
}

// WithTransport permite inyectar un RoundTripper (tests).
func WithTransport(tr http.RoundTripper) Option {
	return func(c *Client) error {
		if tr != nil {
			c.http.Transport = tr
		}
		return nil
	}
}

// WithQueryParam fija un parámetro que viaja en todas las llamadas.
func WithQueryParam(key, value string) Option {
	return func(c *Client) error {
		if strings.TrimSpace(key) != "" {
			c.query.Set(key, value)
		}
		return nil
	}
}

func WithHeader(key, value string) Option {
	return func(c *Client) error {
		if strings.TrimSpace(key) != "" {
			c.headers[key] = value
		}
		return nil
	}
}

func New(timeout time.Duration, opts ...Option) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		http:    &http.Client{Timeout: timeout},
		query:   url.Values{},
		headers: map[string]string{},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// HTTPError representa una respuesta no-2xx; Body queda crudo para que el
// adapter lo interprete.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// DecodeBody interpreta el cuerpo del error como JSON.
func (e *HTTPError) DecodeBody(out any) error {
	return json.Unmarshal([]byte(e.Body), out)
}

// PostJSON es el caso común de los adapters.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	return c.DoJSON(ctx, http.MethodPost, path, in, out)
}

// DoJSON hace un request JSON.
// - path: URL absoluta o path relativo a la base
// - in: body a enviar (nil => sin body)
// - out: destino del JSON (nil => se ignora)
// Retorna *HTTPError si el status no es 2xx.
func (c *Client) DoJSON(ctx context.Context, method, path string, in, out any) error {
	if c == nil || c.http == nil {
		return errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(path)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func (c *Client) resolveURL(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("httpclient: empty url")
	}

	full := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		if c.baseURL == "" {
			return "", errors.New("httpclient: relative path requires base url")
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		full = c.baseURL + path
	}

	if len(c.query) == 0 {
		return full, nil
	}
	u, err := url.Parse(full)
	if err != nil {
		return "", fmt.Errorf("httpclient: parse url: %w", err)
	}
	q := u.Query()
	for k, vs := range c.query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

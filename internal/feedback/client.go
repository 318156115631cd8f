// Package feedback sends the feedback form to a Formspree-style endpoint.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

const (
	DefaultEndpoint = "https://formspree.io/f/xwplkrlb"

	// UserMessage is shown with the retry prompt whatever the failure was.
	UserMessage = "Não foi possível enviar seu feedback. Verifique sua conexão com a internet e tente novamente."

	genericServerError = "Erro no servidor"
	maxErrorBody       = 64 << 10
)

var ErrInFlight = errors.New("envio em andamento")

// SubmitError is a failed attempt. Status is 0 for transport errors.
type SubmitError struct {
	Status  int
	Message string // server-provided, or a generic fallback
	Err     error
}

func (e *SubmitError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("send feedback: %v", e.Err)
	}
	return fmt.Sprintf("send feedback: status %d: %s", e.Status, e.Message)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// Config for a Client. Zero values pick the defaults.
type Config struct {
	Endpoint   string
	Platform   string
	HTTPClient *http.Client
	Logger     *log.Logger
	Now        func() time.Time
}

// Client posts submissions. At most one request is in flight at a time.
type Client struct {
	endpoint string
	platform string
	http     *http.Client
	log      *log.Logger
	now      func() time.Time
	inFlight atomic.Bool
}

func New(cfg Config) *Client {
	c := &Client{
		endpoint: cfg.Endpoint,
		platform: cfg.Platform,
		http:     cfg.HTTPClient,
		log:      cfg.Logger,
		now:      cfg.Now,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.platform == "" {
		c.platform = runtime.GOOS
	}
	if c.http == nil {
		// no timeout: the transport defaults apply
		c.http = &http.Client{}
	}
	if c.log == nil {
		c.log = log.New(io.Discard)
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.log = c.log.With("component", "feedback")
	return c
}

// InFlight reports whether a submission is pending.
func (c *Client) InFlight() bool { return c.inFlight.Load() }

// Submit validates f and posts it once. Validation errors are returned
// before any request is made. Each call is an independent attempt.
func (c *Client) Submit(ctx context.Context, f Form) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return ErrInFlight
	}
	defer c.inFlight.Store(false)

	body, contentType, err := encode(f.Payload(c.now(), c.platform))
	if err != nil {
		return fmt.Errorf("encode form: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("send failed", "err", err)
		return &SubmitError{Message: genericServerError, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.log.Info("feedback sent", "status", resp.StatusCode, "rating", f.Rating)
		return nil
	}
	msg := c.errorMessage(resp.Body)
	c.log.Error("server rejected feedback", "status", resp.StatusCode, "message", msg)
	return &SubmitError{Status: resp.StatusCode, Message: msg, Err: errors.New(msg)}
}

func (c *Client) errorMessage(r io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBody)).Decode(&payload); err != nil {
		c.log.Debug("unreadable error body", "err", err)
		return genericServerError
	}
	if payload.Error == "" {
		return genericServerError
	}
	return payload.Error
}

func encode(p Payload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, kv := range p.Fields() {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// Package zeus talks to the institutional web application: cookie login,
// role lookup and the daily temperature form, all but login over SSV.
package zeus

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bnema/emetic/internal/domain"
	"github.com/bnema/emetic/internal/ports"
	"github.com/bnema/emetic/internal/ssv"
)

const (
	DefaultOrigin = "https://zeus.gist.ac.kr"

	loginPath  = "/sys/login/auth.do?callback="
	rolePath   = "/sys/main/role.do"
	selectPath = "/amc/amcDailyTempRegE/select.do"
	savePath   = "/amc/amcDailyTempRegE/save.do"

	ssvContentType  = "text/plain;charset=UTF-8"
	formContentType = "application/x-www-form-urlencoded; charset=UTF-8"

	keyErrorMsg  = "ErrorMsg"
	keyErrorCode = "ErrorCode"
)

var browserHeaders = map[string]string{
	"sec-ch-ua":          `"Chromium";v="94", "Google Chrome";v="94", ";Not A Brand";v="99"`,
	"sec-ch-ua-mobile":   "?0",
	"sec-ch-ua-platform": `"Windows"`,
	"User-Agent":         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/94.0.4606.81 Safari/537.36",
	"Sec-Fetch-Site":     "same-origin",
	"Sec-Fetch-Mode":     "cors",
	"Sec-Fetch-Dest":     "empty",
	"Accept-Language":    "ko-KR,ko;q=0.9",
}

// Client owns the session cookies for the lifetime of the process.
type Client struct {
	transport ports.Transport
	session   *domain.Session
	mapper    RecordMapper
	clock     ports.Clock
	origin    string
	logger    *slog.Logger
}

type Option func(*Client)

func WithClock(clock ports.Clock) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

func WithMapper(mapper RecordMapper) Option {
	return func(c *Client) {
		c.mapper = mapper
	}
}

// WithOrigin sets the scheme://host used for the Origin and Referer headers.
func WithOrigin(origin string) Option {
	return func(c *Client) {
		c.origin = origin
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient restores the session from cookies, which may be nil.
func NewClient(transport ports.Transport, cookies map[string]string, opts ...Option) *Client {
	c := &Client{
		transport: transport,
		session:   domain.NewSession(cookies),
		mapper:    DailyTempForm{},
		clock:     ports.SystemClock{},
		origin:    DefaultOrigin,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *domain.Session {
	return c.session
}

func (c *Client) Snapshot() map[string]string {
	return c.session.Snapshot()
}

// HasAnchor reports whether protocol operations may be attempted.
func (c *Client) HasAnchor() bool {
	return c.session.HasAnchor()
}

type exchange struct {
	op          string
	path        string
	contentType string
	accept      string
	referer     string
	body        []byte
	xhr         bool
}

func (c *Client) send(ctx context.Context, ex exchange) (ports.Response, error) {
	header := make(http.Header, len(browserHeaders)+6)
	for name, value := range browserHeaders {
		header.Set(name, value)
	}
	header.Set("Origin", c.origin)
	header.Set("Referer", c.origin+ex.referer)
	header.Set("Accept", ex.accept)
	header.Set("Content-Type", ex.contentType)
	if ex.xhr {
		header.Set("X-Requested-With", "XMLHttpRequest")
	}
	if cookie := c.session.Header(); cookie != "" {
		header.Set("Cookie", cookie)
	}

	start := time.Now()
	resp, err := c.transport.Send(ctx, ports.Request{Path: ex.path, Header: header, Body: ex.body})
	if err != nil {
		c.logger.Debug("exchange failed",
			slog.String("op", ex.op),
			slog.String("path", ex.path),
			slog.String("error", err.Error()),
		)
		return ports.Response{}, fmt.Errorf("%s: perform request: %w", ex.op, err)
	}

	if resp.Header != nil {
		c.session.Merge(resp.Header.Values("Set-Cookie"))
	}

	c.logger.Debug("exchange completed",
		slog.String("op", ex.op),
		slog.String("path", ex.path),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(resp.Body)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ports.Response{}, fmt.Errorf("%s: %w", ex.op, &domain.TransportError{StatusCode: resp.StatusCode, Status: resp.Status})
	}

	return resp, nil
}

// call runs one SSV operation and classifies server-reported errors.
func (c *Client) call(ctx context.Context, op, path string, params ssv.Params) (*ssv.Document, error) {
	resp, err := c.send(ctx, exchange{
		op:          op,
		path:        path,
		contentType: ssvContentType,
		accept:      "*/*",
		referer:     "/index.html",
		body:        ssv.Encode(params, ssv.DefaultEncoding),
	})
	if err != nil {
		return nil, err
	}

	doc, err := ssv.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}

	if msg, ok := doc.Scalar(keyErrorMsg); ok {
		code, _ := doc.Scalar(keyErrorCode)
		if code.String() == domain.AuthExpiredCode {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrAuthExpired)
		}
		return nil, fmt.Errorf("%s: %w", op, &domain.ProtocolError{Code: code.String(), Message: msg.String()})
	}

	return doc, nil
}

func (c *Client) monitorID(op string) (string, error) {
	monitor, ok := c.session.Get(domain.CookieMonitorID)
	if !ok {
		return "", fmt.Errorf("%s: %w", op, domain.ErrNotAuthenticated)
	}
	return monitor, nil
}

// openStamp is the page_open_time_on value: local time down to microseconds.
func openStamp(now time.Time) string {
	local := now.In(domain.Zone)
	return local.Format("20060102150405") + fmt.Sprintf("%06d", local.Nanosecond()/1000)
}

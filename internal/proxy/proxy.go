package proxy

import (
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Proxy пробрасывает /api/* в API журнала под тем же origin
type Proxy struct {
	target  *url.URL
	prefix  string
	proxy   *httputil.ReverseProxy
	logger  zerolog.Logger
	timeout time.Duration
}

type ProxyOption func(*Proxy)

func NewProxy(targetURL string, logger zerolog.Logger, options ...ProxyOption) (*Proxy, error) {
	target, err := url.Parse(targetURL)
	if err != nil {
		return nil, err
	}

	p := &Proxy{
		target: target,
		logger: logger,
	}

	for _, option := range options {
		option(p)
	}

	p.proxy = httputil.NewSingleHostReverseProxy(target)

	base := p.proxy.Director
	p.proxy.Director = func(req *http.Request) {
		p.director(req)
		base(req)
	}

	p.proxy.Transport = &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: p.timeout,
	}

	p.proxy.ErrorHandler = p.errorHandler
	p.proxy.ModifyResponse = p.modifyResponse

	return p, nil
}

func WithTimeout(timeout time.Duration) ProxyOption {
	return func(p *Proxy) {
		p.timeout = timeout
	}
}

// WithPrefix вырезает префикс монтирования из пути
func WithPrefix(prefix string) ProxyOption {
	return func(p *Proxy) {
		p.prefix = strings.TrimSuffix(prefix, "/")
	}
}

func (p *Proxy) director(req *http.Request) {
	originalPath := req.URL.Path

	if p.prefix != "" {
		req.URL.Path = strings.TrimPrefix(req.URL.Path, p.prefix)
		req.URL.RawPath = ""
		if req.URL.Path == "" {
			req.URL.Path = "/"
		}
	}

	req.Header.Set("X-Forwarded-Host", req.Host)
	req.Header.Set("X-Forwarded-Proto", schemeOf(req))
	req.Host = p.target.Host

	p.logger.Debug().
		Str("method", req.Method).
		Str("original_path", originalPath).
		Str("target_path", req.URL.Path).
		Str("target", p.target.String()).
		Msg("Proxying request")
}

func (p *Proxy) errorHandler(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("target", p.target.String()).
		Msg("Proxy error")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	json.NewEncoder(w).Encode(map[string]string{
		"error": "Progress API is unavailable",
	})
}

func (p *Proxy) modifyResponse(resp *http.Response) error {
	p.logger.Debug().
		Str("method", resp.Request.Method).
		Str("path", resp.Request.URL.Path).
		Int("status", resp.StatusCode).
		Str("target", p.target.String()).
		Msg("Proxy response")

	resp.Header.Set("X-Service-Name", p.target.Hostname())
	return nil
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.proxy.ServeHTTP(w, r)
}

func schemeOf(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

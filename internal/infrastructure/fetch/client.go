// Package fetch implementa el cliente HTTP resiliente hacia el catálogo remoto:
// reintentos con espera creciente, manejo de rate limit (429) y sesión por cookies.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"
)

const (
	defaultTimeout        = 15 * time.Second
	defaultMaxAttempts    = 3
	defaultMaxRateLimited = 10
	defaultBaseDelay      = time.Second

	// maxBodyBytes /locations/search puede devolver hasta 10.000 ubicaciones.
	maxBodyBytes = 16 << 20

	headerRequestID = "X-Request-ID"
)

// Config parámetros del cliente.
type Config struct {
	BaseURL        string
	Timeout        time.Duration // timeout de red por intento
	MaxAttempts    int           // presupuesto de fallos (intentos totales)
	MaxRateLimited int           // intentos acotados mientras se recibe 429
	BaseDelay      time.Duration // espera = BaseDelay × número de intento
}

// Sleeper espera d o hasta que ctx se cancele. Inyectable para tests.
type Sleeper func(ctx context.Context, d time.Duration) error

// Option configura el Client.
type Option func(*Client)

// WithHTTPClient reemplaza el http.Client (se conserva su Jar si trae uno).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSleeper reemplaza la espera entre intentos.
func WithSleeper(s Sleeper) Option {
	return func(c *Client) { c.sleep = s }
}

// WithLogger asigna el logger del cliente.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// Client ejecuta una petición lógica contra el catálogo sobreviviendo a rate limit y fallos transitorios.
// Todas las peticiones comparten el cookie jar: la cookie de sesión del login viaja en cada llamada.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cfg        Config
	sleep      Sleeper
	log        zerolog.Logger
}

// Request describe una llamada: método, path relativo al BaseURL, query y cuerpo JSON opcional.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// New construye el cliente con cookie jar (credenciales incluidas) y valores por defecto.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("fetch: base URL inválida %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.MaxRateLimited <= 0 {
		cfg.MaxRateLimited = defaultMaxRateLimited
	}
	if cfg.BaseDelay < 0 {
		cfg.BaseDelay = defaultBaseDelay
	}

	c := &Client{
		baseURL: strings.TrimRight(base.String(), "/"),
		cfg:     cfg,
		sleep:   sleepContext,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("fetch: crear cookie jar: %w", err)
		}
		c.httpClient.Jar = jar
	}
	return c, nil
}

// BaseURL URL base del catálogo (sin barra final).
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do ejecuta r y decodifica la respuesta JSON en T.
func Do[T any](ctx context.Context, c *Client, r Request) (T, error) {
	var out T
	err := c.execute(ctx, r, func(body []byte) error {
		return json.Unmarshal(body, &out)
	})
	return out, err
}

// Send ejecuta r descartando el cuerpo (login/logout responden texto plano).
func (c *Client) Send(ctx context.Context, r Request) error {
	return c.execute(ctx, r, nil)
}

func (c *Client) execute(ctx context.Context, r Request, decode func([]byte) error) error {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	target := c.resolve(r)
	requestID := uuid.NewString()

	var payload []byte
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return &RequestError{Method: method, URL: target, RequestID: requestID, Err: fmt.Errorf("serializar cuerpo: %w", err)}
		}
		payload = b
	}

	log := c.log.With().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", target).
		Logger()

	var (
		attempt     int
		failures    int
		rateLimited int
		lastStatus  int
		lastErr     error
	)
	for {
		attempt++
		status, err := c.attempt(ctx, method, target, requestID, payload, decode)
		if err == nil {
			if attempt > 1 {
				log.Debug().Int("attempt", attempt).Msg("petición completada tras reintentos")
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &RequestError{Method: method, URL: target, StatusCode: status, Attempts: attempt, RequestID: requestID, Err: ctxErr}
		}
		lastStatus, lastErr = status, err

		if status == http.StatusTooManyRequests {
			rateLimited++
			if rateLimited >= c.cfg.MaxRateLimited {
				break
			}
		} else {
			failures++
			if failures >= c.cfg.MaxAttempts {
				break
			}
		}

		wait := c.cfg.BaseDelay * time.Duration(attempt)
		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("status", status).
			Dur("wait", wait).
			Msg("reintentando petición al catálogo")
		if err := c.sleep(ctx, wait); err != nil {
			return &RequestError{Method: method, URL: target, StatusCode: status, Attempts: attempt, RequestID: requestID, Err: err}
		}
	}

	log.Error().
		Err(lastErr).
		Int("attempts", attempt).
		Int("status", lastStatus).
		Msg("petición al catálogo falló tras agotar reintentos")
	return &RequestError{Method: method, URL: target, StatusCode: lastStatus, Attempts: attempt, RequestID: requestID, Err: lastErr}
}

// attempt realiza un único intento. Devuelve el status HTTP (0 si no hubo respuesta).
func (c *Client) attempt(ctx context.Context, method, target, requestID string, payload []byte, decode func([]byte) error) (int, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, fmt.Errorf("crear HTTP request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set(headerRequestID, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("leer respuesta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, newStatusError(resp.StatusCode, raw)
	}
	if decode == nil {
		return resp.StatusCode, nil
	}
	if err := decode(raw); err != nil {
		return resp.StatusCode, fmt.Errorf("deserializar respuesta: %w", err)
	}
	return resp.StatusCode, nil
}

func (c *Client) resolve(r Request) string {
	path := r.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := c.baseURL + path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}
	return target
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

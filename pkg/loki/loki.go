package loki

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var ErrStopped = errors.New("loki pusher stopped")

type Logger interface {
	Error(msg string, args ...any)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {

	// TenantKey and TenantValue set a tenant header for multi-tenant Loki.
	// Both are optional.
	TenantKey   string
	TenantValue string

	// Url of the push endpoint, e.g. https://example-prod.grafana.net/loki/api/v1/push
	Url string `validate:"required,url"`

	// BatchMaxSize is the maximum number of log lines sent in one request
	BatchMaxSize int `validate:"gte=1"`

	// BatchMaxWait is the maximum time a line waits before being sent
	BatchMaxWait time.Duration `validate:"gte=1"`

	// Labels added to the stream
	Labels map[string]string

	// Username and Password enable basic auth when both are set.
	Username string
	Password string
}

func (cfg *Config) setDefaults() {
	if cfg.BatchMaxSize == 0 {
		cfg.BatchMaxSize = 500
	}
	if cfg.BatchMaxWait == 0 {
		cfg.BatchMaxWait = 5 * time.Second
	}
	if cfg.Labels == nil {
		cfg.Labels = map[string]string{}
	}
}

type LogEntry struct {
	Level   string            `json:"level"`
	Message string            `json:"msg"`
	Caller  string            `json:"caller,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

// Pusher batches log entries and ships them to Loki in the background.
type Pusher struct {
	config    Config
	ctx       context.Context
	cancel    context.CancelFunc
	client    HTTPClient
	quit      chan struct{}
	entries   chan [2]string
	batch     [][2]string
	waitGroup sync.WaitGroup
	stopOnce  sync.Once
	logger    Logger
}

func New(ctx context.Context, cfg Config, logger Logger) (*Pusher, error) {
	return NewWithClient(ctx, cfg, logger, &http.Client{Timeout: 10 * time.Second})
}

func NewWithClient(ctx context.Context, cfg Config, logger Logger, client HTTPClient) (*Pusher, error) {

	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pusher{
		config:  cfg,
		ctx:     ctx,
		cancel:  cancel,
		client:  client,
		quit:    make(chan struct{}),
		entries: make(chan [2]string, cfg.BatchMaxSize),
		batch:   make([][2]string, 0, cfg.BatchMaxSize),
		logger:  logger,
	}

	p.waitGroup.Add(1)
	go p.run()
	return p, nil
}

// Push queues an entry. It blocks while the queue is full.
func (p *Pusher) Push(e LogEntry) error {
	line, err := json.Marshal(e)
	if err != nil {
		return err
	}
	value := [2]string{strconv.FormatInt(time.Now().UnixNano(), 10), string(line)}

	select {
	case <-p.quit:
		return ErrStopped
	default:
	}

	select {
	case <-p.quit:
		return ErrStopped
	case <-p.ctx.Done():
		return ErrStopped
	case p.entries <- value:
		return nil
	}
}

// Stop flushes queued entries and stops the background sender.
func (p *Pusher) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
		p.waitGroup.Wait()
		p.cancel()
	})
}

func (p *Pusher) run() {
	defer p.waitGroup.Done()

	ticker := time.NewTicker(p.config.BatchMaxWait)
	defer ticker.Stop()

	flush := func(ctx context.Context) {
		if len(p.batch) == 0 {
			return
		}
		if err := p.send(ctx); err != nil {
			p.logger.Error("failed to send logs", "error", err)
		}
		p.batch = p.batch[:0]
	}

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-p.quit:
			for {
				select {
				case value := <-p.entries:
					p.batch = append(p.batch, value)
				default:
					flush(p.ctx)
					return
				}
			}
		case value := <-p.entries:
			p.batch = append(p.batch, value)
			if len(p.batch) >= p.config.BatchMaxSize {
				flush(p.ctx)
			}
		case <-ticker.C:
			flush(p.ctx)
		}
	}
}

func (p *Pusher) send(ctx context.Context) error {
	buf := &bytes.Buffer{}
	gz := gzip.NewWriter(buf)

	if err := json.NewEncoder(gz).Encode(pushRequest{Streams: []stream{{
		Stream: p.config.Labels,
		Values: p.batch,
	}}}); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.Url, buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	if p.config.TenantKey != "" {
		req.Header.Set(p.config.TenantKey, p.config.TenantValue)
	}
	if p.config.Username != "" && p.config.Password != "" {
		req.SetBasicAuth(p.config.Username, p.config.Password)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("received unexpected response code from Loki: %s, body: %s", resp.Status, string(body))
	}
	return nil
}

/*
Package datamuse implements association.Lookup on top of the Datamuse words API.

Sound-alike queries use the "sl" constraint with frequency metadata:

	GET https://api.datamuse.com/words?sl=pave&md=f

	[{"word":"pave","score":100,"tags":["f:2.61"]}, ...]

The frequency tag carries occurrences per million words behind a two character
prefix. Closest-word queries ask for definitions instead ("md=d") and keep the
first result only.

Results that are not purely alphabetic or are a single letter are dropped here,
so consumers of the lookup never see punctuation or single-letter noise.
*/
package datamuse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/mnemo/internal/utils"
	"github.com/bastiangx/mnemo/pkg/association"
	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
)

// Defaults for the client.
const (
	DefaultBaseURL  = "https://api.datamuse.com"
	DefaultTimeout  = 10 * time.Second
	DefaultPoolSize = 16

	frequencyFlag  = "f"
	definitionFlag = "d"
)

var (
	// ErrNoMatch is returned by Closest when the API has no sound-alike word.
	ErrNoMatch = errors.New("no sound-alike match")
	// ErrBadFrequency is returned for frequency tags that cannot be parsed.
	ErrBadFrequency = errors.New("malformed frequency tag")
)

// Config holds client options.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	PoolSize  int
	UserAgent string
}

// word is a single entry of a Datamuse response.
type word struct {
	Word  string   `json:"word"`
	Score int      `json:"score"`
	Tags  []string `json:"tags,omitempty"`
	Defs  []string `json:"defs,omitempty"`
}

// Client queries the Datamuse API.
type Client struct {
	client    *http.Client
	transport *http.Transport
	config    Config
}

// Verify interface implementation at compile time
var _ association.Lookup = (*Client)(nil)

// NewClient creates a client. Zero config fields fall back to the defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = DefaultPoolSize
	}

	// A split search fans out one request per fragment, keep them on warm connections.
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.PoolSize,
		MaxIdleConnsPerHost: cfg.PoolSize,
		MaxConnsPerHost:     cfg.PoolSize * 2,
		IdleConnTimeout:     30 * time.Second,
	}

	return &Client{
		client:    &http.Client{Transport: transport},
		transport: transport,
		config:    cfg,
	}
}

// SoundLike returns words that sound like w with their frequency.
func (c *Client) SoundLike(ctx context.Context, w string) ([]association.Record, error) {
	words, err := c.query(ctx, w, frequencyFlag)
	if err != nil {
		return nil, err
	}

	records := make([]association.Record, 0, len(words))
	for _, entry := range words {
		if !Acceptable(entry.Word) {
			continue
		}
		freq, err := frequencyFromTags(entry.Tags)
		if err != nil {
			return nil, fmt.Errorf("word %q: %w", entry.Word, err)
		}
		records = append(records, association.Record{
			Word:          entry.Word,
			Score:         entry.Score,
			Frequency:     freq,
			HasDefinition: entry.Defs != nil,
		})
	}
	log.Debugf("datamuse: %d/%d sound-alikes kept for '%s'", len(records), len(words), w)
	return records, nil
}

// Closest returns the single best sound-alike match for w with its definitions.
// This is how misspelled words are resolved ("paralize" -> "paralyze").
func (c *Client) Closest(ctx context.Context, w string) (*association.Entry, error) {
	words, err := c.query(ctx, w, definitionFlag)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoMatch, w)
	}

	defs := words[0].Defs
	if defs == nil {
		defs = []string{}
	}
	return &association.Entry{Word: words[0].Word, Definitions: defs}, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.transport.CloseIdleConnections()
}

func (c *Client) query(ctx context.Context, w, metadata string) ([]word, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	params := url.Values{}
	params.Set("sl", w)
	params.Set("md", metadata)
	endpoint := c.config.BaseURL + "/words?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach datamuse: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var words []word
	if err := json.NewDecoder(resp.Body).Decode(&words); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return words, nil
}

// Acceptable reports whether a returned word is usable as an association:
// purely alphabetic and longer than one letter, counted in runes.
func Acceptable(w string) bool {
	return utf8.RuneCountInString(w) > 1 && utils.IsAlphaWord(w)
}

// ParseFrequency extracts occurrences per million from a tag such as "f:12.5".
func ParseFrequency(tag string) (float64, error) {
	if len(tag) < 3 {
		return 0, fmt.Errorf("%w: %q", ErrBadFrequency, tag)
	}
	freq, err := strconv.ParseFloat(tag[2:], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadFrequency, tag)
	}
	return freq, nil
}

// frequencyFromTags finds the frequency tag. Entries without one count as 0.
func frequencyFromTags(tags []string) (float64, error) {
	for _, tag := range tags {
		if strings.HasPrefix(tag, frequencyFlag+":") {
			return ParseFrequency(tag)
		}
	}
	return 0, nil
}

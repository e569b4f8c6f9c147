// Package translate wraps the RapidAPI google translate endpoint used
// to turn scraped spanish headlines into english ones.
package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"headlinewatch/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "https://google-translate113.p.rapidapi.com"

const translatePath = "/api/v1/translator/text"

var ErrMissingKey = errors.New("rapidapi key is not configured")

type ClientOptions struct {
	// BaseUrl defaults to DefaultBaseUrl, override it in tests.
	BaseUrl string
	Key     string
	// Source and Target are language codes, defaulting to es -> en.
	Source string
	Target string
}

type Client struct {
	http   *resty.Client
	source string
	target string
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.Key == "" {
		return nil, ErrMissingKey
	}
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Source == "" {
		opts.Source = "es"
	}
	if opts.Target == "" {
		opts.Target = "en"
	}

	base, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(opts.BaseUrl).
		SetTimeout(time.Second * 20).
		SetHeader("x-rapidapi-host", base.Host).
		SetHeader("x-rapidapi-key", opts.Key)
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{
		http:   client,
		source: opts.Source,
		target: opts.Target,
	}, nil
}

type translateRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

type translateResponse struct {
	Trans string `json:"trans"`
}

func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	ctx, span := tracer.Start(ctx, "Translate")
	defer span.End()

	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	var body translateResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(translateRequest{From: c.source, To: c.target, Text: text}).
		SetResult(&body).
		Post(translatePath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return "", err
	}
	if res.StatusCode() != http.StatusOK {
		err := fmt.Errorf("translate returned status %d: %s", res.StatusCode(), res.String())
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad status")
		return "", err
	}
	if strings.TrimSpace(body.Trans) == "" {
		err := fmt.Errorf("translate response has no 'trans' field: %s", res.String())
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad response body")
		return "", err
	}
	return body.Trans, nil
}

type Translation struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
}

// TranslateAll translates each text in order. A failed translation
// falls back to the original text so one bad response does not sink
// the whole run.
func (c *Client) TranslateAll(ctx context.Context, texts []string) []Translation {
	ctx, span := tracer.Start(ctx, "TranslateAll")
	defer span.End()

	out := make([]Translation, 0, len(texts))
	for _, text := range texts {
		translated, err := c.Translate(ctx, text)
		if err != nil {
			slog.WarnContext(
				ctx, "translation failed, keeping original",
				"text", text,
				"err", err,
			)
			translated = text
		}
		out = append(out, Translation{Original: text, Translated: translated})
	}
	return out
}

// Identity maps every text to itself. Used when no api key is
// configured so the rest of the pipeline still runs.
func Identity(texts []string) []Translation {
	out := make([]Translation, 0, len(texts))
	for _, text := range texts {
		out = append(out, Translation{Original: text, Translated: text})
	}
	return out
}

// TranslatedTexts extracts the translated side in order.
func TranslatedTexts(translations []Translation) []string {
	out := make([]string, 0, len(translations))
	for _, tr := range translations {
		out = append(out, tr.Translated)
	}
	return out
}

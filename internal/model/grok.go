// Package model provides the xAI chat completions streaming client.
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zfifteen/Grok-Codex/internal/errors"
	"github.com/zfifteen/Grok-Codex/internal/stream"
)

// errorBodyLimit caps how much of a non-success response body is captured
// for error reporting.
const errorBodyLimit = 8 * 1024

// readChunkSize is the transport read buffer size. The decoder accepts
// chunks of any size, so this only affects syscall granularity.
const readChunkSize = 4096

// Config configures the client.
type Config struct {
	APIKey  string
	BaseURL string // e.g. https://api.x.ai/v1
	Timeout time.Duration

	// BufferLimit caps the SSE line reassembly buffer.
	BufferLimit int
}

// Client talks to an OpenAI-compatible chat completions endpoint over SSE.
type Client struct {
	cfg    *Config
	client *http.Client
}

// NewClient creates a new streaming client.
func NewClient(cfg *Config) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// StreamResult is the terminal outcome of one streamed response.
type StreamResult struct {
	// Answer is the concatenated content, possibly empty.
	Answer string

	// ToolCall is the assembled tool-call record, nil if the response
	// carried none.
	ToolCall *stream.ToolCall
}

// StreamChat issues one streaming chat completion request and decodes the
// event stream. onContent, if non-nil, receives each content fragment as it
// arrives. The request is never retried; transport and HTTP-status failures
// are returned for the caller to report.
func (c *Client) StreamChat(ctx context.Context, req *Request, onContent func(string)) (*StreamResult, error) {
	body := chatRequest{
		Model:     req.Model,
		Messages:  req.Messages,
		Stream:    true,
		MaxTokens: req.MaxTokens,
		Tools:     req.Tools,
	}
	if len(req.Tools) > 0 {
		body.ToolChoice = "auto"
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeAPIBadRequest, "failed to marshal request", errors.CategoryPermanent)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeAPIBadRequest, "failed to create HTTP request", errors.CategoryPermanent)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Cache-Control", "no-cache")

	log.Debug().Str("model", req.Model).Int("messages", len(req.Messages)).Msg("sending chat completion request")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.NewBuilder(errors.CodeAPITransport, "network request failed").
			Temporary().
			Wrap(err).
			WithSuggestion("Check your connection and API key, then try again").
			Build()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		captured, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, errors.NewBuilder(errors.CodeAPIHTTPStatus, fmt.Sprintf("API error: HTTP %d", resp.StatusCode)).
			Temporary().
			WithContext("status", resp.StatusCode).
			WithContext("body", string(captured)).
			Build()
	}

	return c.decodeStream(ctx, resp.Body, onContent)
}

// decodeStream pulls transport chunks and pushes them through the decoder
// until the termination sentinel or end of body.
func (c *Client) decodeStream(ctx context.Context, body io.Reader, onContent func(string)) (*StreamResult, error) {
	dec := stream.NewDecoder(c.cfg.BufferLimit, onContent)
	buf := make([]byte, readChunkSize)

	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			done, err := dec.Feed(buf[:n])
			if err != nil {
				return nil, err
			}
			if done {
				break
			}
		}
		if readErr == io.EOF {
			// Stream end without the sentinel still terminates the
			// response; completion is inferred from stream end.
			break
		}
		if readErr != nil {
			if ctx.Err() != nil {
				return nil, errors.Wrap(ctx.Err(), errors.CodeAPITransport, "request cancelled", errors.CategoryTemporary)
			}
			return nil, errors.Wrap(readErr, errors.CodeStreamRead, "failed to read response stream", errors.CategoryTemporary)
		}
	}

	return &StreamResult{
		Answer:   dec.Answer(),
		ToolCall: dec.ToolCall(),
	}, nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package widget implements the SEO generator widget: the client-side
// component behind the "Generate SEO with AI" button on startup and story
// edit forms. A click reads the form's source fields, posts them to the
// generation endpoint, and copies the returned meta title/description into
// the form's target fields.
//
// Field access and notification are injected so the component can be unit
// tested without a live page, and the busy state guards against overlapping
// requests from double clicks.
package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Messages surfaced to the user. All three error classes end the attempt;
// the trigger returns to idle so the user can retry manually.
const (
	msgTitleRequired = "Please fill in the Name/Title first."
	msgNetworkError  = "Network error. Please try again."
)

// storyDescriptionPlaceholder is sent as the description for story requests,
// which have no description field of their own.
const storyDescriptionPlaceholder = "Story content analysis"

var (
	// ErrBusy is returned when the trigger is clicked while a request is
	// already in flight. The click is ignored; no second request starts.
	ErrBusy = errors.New("widget: generation already in progress")

	// ErrTitleRequired is returned when the mandatory title field is empty
	// or absent. No network call is made.
	ErrTitleRequired = errors.New("widget: title is required")

	// ErrUnknownKind is returned by New for an unrecognized content kind.
	ErrUnknownKind = errors.New("widget: unknown content kind")
)

// Request is the JSON body posted to the generation endpoint.
type Request struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
}

// Result is the JSON body returned by the generation endpoint. Additional
// suggestion fields (keywords, og_title, ...) exist on the wire but are not
// consumed here; only the two mapped target fields are.
type Result struct {
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Notifier surfaces a blocking notice to the user (the page's alert dialog).
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

// Notify calls the wrapped function.
func (f NotifierFunc) Notify(message string) { f(message) }

// Config holds the widget's injected dependencies.
type Config struct {
	// Endpoint is the absolute or relative URL of the generation endpoint.
	Endpoint string

	// Kind selects the form context: "startup" or "story".
	Kind string

	// Fields provides access to the form's source and target fields.
	Fields Fields

	// Notify receives user-facing notices. Required.
	Notify Notifier

	// HTTPClient is optional; a 90-second-timeout client is the default,
	// matching the server's AI write timeout.
	HTTPClient *http.Client

	// CSRFToken, when set, is sent as the X-CSRF-Token header.
	CSRFToken string
}

// Widget wires a trigger control to the SEO generation endpoint.
// All methods are safe for concurrent use; a click while a request is in
// flight is ignored.
type Widget struct {
	endpoint  string
	kind      string
	fields    Fields
	notify    Notifier
	client    *http.Client
	csrfToken string

	mu    sync.Mutex
	state State
}

// New validates the configuration and returns a ready widget in the idle state.
func New(cfg Config) (*Widget, error) {
	if cfg.Kind != "startup" && cfg.Kind != "story" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
	if cfg.Endpoint == "" {
		return nil, errors.New("widget: endpoint is required")
	}
	if cfg.Fields == nil {
		return nil, errors.New("widget: fields are required")
	}
	if cfg.Notify == nil {
		return nil, errors.New("widget: notifier is required")
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 90 * time.Second}
	}

	return &Widget{
		endpoint:  cfg.Endpoint,
		kind:      cfg.Kind,
		fields:    cfg.Fields,
		notify:    cfg.Notify,
		client:    client,
		csrfToken: cfg.CSRFToken,
		state:     StateIdle,
	}, nil
}

// State returns the trigger's current lifecycle state.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Click handles a trigger activation: it reads the form's current field
// values, posts them to the generation endpoint, and writes the returned
// metadata into the target fields.
//
// The three failure classes each surface a notice and return an error:
// an empty title (local, no network call), a server-reported error (no
// field is mutated), and a transport or parse failure (generic notice).
// In every case, including success, the trigger is back in the idle state
// when Click returns.
func (w *Widget) Click(ctx context.Context) (*Result, error) {
	// Values are read fresh on each click; the precondition check happens
	// before the trigger leaves idle so a blocked click changes no state.
	req, err := w.buildRequest()
	if err != nil {
		w.notify.Notify(msgTitleRequired)
		return nil, err
	}

	w.mu.Lock()
	if w.state == StateBusy {
		w.mu.Unlock()
		return nil, ErrBusy
	}
	w.state = Transition(w.state, EventClick)
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.state = Transition(w.state, EventDone)
		w.mu.Unlock()
	}()

	result, err := w.post(ctx, req)
	if err != nil {
		w.notify.Notify(msgNetworkError)
		return nil, err
	}

	if result.Error != "" {
		w.notify.Notify("SEO generation failed: " + result.Error)
		return result, fmt.Errorf("widget: server error: %s", result.Error)
	}

	w.apply(result)
	slog.Debug("seo suggestions received",
		"meta_title", result.MetaTitle,
		"meta_description", result.MetaDescription,
	)
	return result, nil
}

// buildRequest collects the source field values for the widget's kind.
// Unset optional fields are omitted; a missing or empty title aborts.
func (w *Widget) buildRequest() (*Request, error) {
	req := &Request{Type: w.kind}

	switch w.kind {
	case "startup":
		title, _ := w.fields.Value(FieldName)
		if title == "" {
			return nil, ErrTitleRequired
		}
		req.Title = title
		req.Description, _ = w.fields.Value(FieldDescription)
	case "story":
		title, _ := w.fields.Value(FieldTitle)
		if title == "" {
			return nil, ErrTitleRequired
		}
		req.Title = title
		req.Content, _ = w.fields.Value(FieldContent)
		req.Description = storyDescriptionPlaceholder
	}

	return req, nil
}

// post sends the generation request and decodes the JSON response. Any
// transport failure or non-JSON body is a single "network error" class.
func (w *Widget) post(ctx context.Context, genReq *Request) (*Result, error) {
	payload, err := json.Marshal(genReq)
	if err != nil {
		return nil, fmt.Errorf("widget marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("widget request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.csrfToken != "" {
		req.Header.Set("X-CSRF-Token", w.csrfToken)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("widget http: %w", err)
	}
	defer resp.Body.Close()

	// Error responses carry {error} JSON bodies too, so the status code is
	// not inspected here; an undecodable body is the transport-failure case.
	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("widget decode: %w", err)
	}

	return &result, nil
}

// apply copies present result fields into existing target fields. A missing
// result field or a missing target field is skipped without error.
func (w *Widget) apply(result *Result) {
	if result.MetaTitle != "" {
		w.fields.SetValue(FieldMetaTitle, result.MetaTitle)
	}
	if result.MetaDescription != "" {
		w.fields.SetValue(FieldMetaDescription, result.MetaDescription)
	}
}

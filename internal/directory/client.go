package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	pathClinicList    = "/api/clinics/list"
	pathClinicProfile = "/api/clinic-catalog/vet-card/"
	pathAppointments  = "/api/public/appointments"
)

type Options struct {
	BaseURL string

	// Development routes every slug to BaseURL.
	Development bool

	// Tenants maps slug to tenant domain. Produced by cmd/mapgen.
	Tenants map[string]string

	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *slog.Logger
}

// Client talks to the remote clinic directory. It performs no retries;
// every call is independently retryable by the caller.
type Client struct {
	http    *http.Client
	baseURL string
	dev     bool
	tenants map[string]string
	logger  *slog.Logger
}

func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tenants := make(map[string]string, len(opts.Tenants))
	for slug, domain := range opts.Tenants {
		tenants[slug] = domain
	}

	return &Client{
		http:    hc,
		baseURL: NormalizeBaseURL(opts.BaseURL),
		dev:     opts.Development,
		tenants: tenants,
		logger:  logger.With("module", "directory"),
	}
}

// NormalizeBaseURL prefixes bare domains with https:// and drops a trailing slash.
func NormalizeBaseURL(domain string) string {
	d := strings.TrimSpace(domain)
	if d == "" {
		return ""
	}
	if !strings.HasPrefix(d, "http") {
		d = "https://" + d
	}
	return strings.TrimRight(d, "/")
}

func (c *Client) ResolveTenantEndpoint(slug string) string {
	if c.dev {
		return c.baseURL
	}
	if domain, ok := c.tenants[slug]; ok && strings.TrimSpace(domain) != "" {
		return NormalizeBaseURL(domain)
	}
	return c.baseURL
}

func (c *Client) FetchClinicProfile(ctx context.Context, slug string) (*ClinicProfile, error) {
	endpoint := c.ResolveTenantEndpoint(slug)
	u := endpoint + pathClinicProfile + url.PathEscape(slug)

	body, err := c.get(ctx, "fetch_clinic_profile", u)
	if err != nil {
		c.logger.Error("directory.profile.fetch_failed", "slug", slug, "err", err)
		return nil, err
	}

	var profile ClinicProfile
	if err := json.Unmarshal(unwrapData(body), &profile); err != nil {
		c.logger.Error("directory.profile.decode_failed", "slug", slug, "err", err)
		return nil, &RemoteFetchError{Op: "fetch_clinic_profile", Status: http.StatusOK, Message: "malformed response body", Err: err}
	}
	if profile.Slug == "" {
		profile.Slug = slug
	}

	c.logger.Debug("directory.profile.fetch_success", "slug", slug, "branches", len(profile.Branches))
	return &profile, nil
}

func (c *Client) FetchClinicList(ctx context.Context) ([]ClinicListItem, error) {
	body, err := c.get(ctx, "fetch_clinic_list", c.baseURL+pathClinicList)
	if err != nil {
		c.logger.Error("directory.list.fetch_failed", "err", err)
		return nil, err
	}

	var items []ClinicListItem
	if err := json.Unmarshal(unwrapData(body), &items); err != nil {
		c.logger.Error("directory.list.decode_failed", "err", err)
		return nil, &RemoteFetchError{Op: "fetch_clinic_list", Status: http.StatusOK, Message: "malformed response body", Err: err}
	}
	if items == nil {
		items = []ClinicListItem{}
	}
	return items, nil
}

// SubmitAppointment prefers a domain embedded in the profile over the
// slug mapping when choosing the tenant endpoint.
func (c *Client) SubmitAppointment(ctx context.Context, profile *ClinicProfile, payload AppointmentPayload) error {
	if profile == nil {
		return errors.New("directory: submit_appointment: nil clinic profile")
	}

	endpoint := NormalizeBaseURL(profile.TenantDomain())
	if endpoint == "" {
		endpoint = c.ResolveTenantEndpoint(profile.Slug)
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("directory: submit_appointment: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+pathAppointments, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("directory: submit_appointment: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("directory.appointment.submit_failed", "slug", profile.Slug, "err", err)
		return fmt.Errorf("directory: submit_appointment: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := serverMessage(respBody)
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		c.logger.Error("directory.appointment.submit_failed",
			"slug", profile.Slug,
			"status", resp.StatusCode,
			"message", msg,
		)
		return &RemoteFetchError{Op: "submit_appointment", Status: resp.StatusCode, Message: msg}
	}

	c.logger.Info("directory.appointment.submitted", "slug", profile.Slug, "status", resp.StatusCode)
	return nil
}

func (c *Client) get(ctx context.Context, op, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("directory: %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory: %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteFetchError{Op: op, Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteFetchError{Op: op, Status: resp.StatusCode, Message: "unreadable response body", Err: err}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &RemoteFetchError{Op: op, Status: resp.StatusCode, Message: "empty response body"}
	}
	return body, nil
}

// unwrapData strips a single {"data": ...} envelope when one is present.
func unwrapData(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return trimmed
	}
	data, ok := env["data"]
	if !ok || isFalsy(data) {
		return trimmed
	}
	return data
}

func isFalsy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "null", "false", "0", `""`:
		return true
	}
	return false
}

func serverMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return strings.TrimSpace(e.Message)
}

package registry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ndasearch/internal/domain"
	"ndasearch/internal/normalize"
)

const DefaultAriregisterURL = "https://ariregister.rik.ee"

type EstoniaConfig struct {
	BaseURL string
	// Languages are tried in order; each maps to /{lang}/api/autocomplete.
	Languages     []string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	HTTPClient    *http.Client
	Logger        *slog.Logger
}

// Estonia queries the e-Business Register autocomplete API. The endpoint is
// fronted by an anti-bot layer that intermittently answers with an HTML
// challenge, so every language variant is validated before parsing.
type Estonia struct {
	cfg    EstoniaConfig
	client *Client
	norm   *normalize.Normalizer
	log    *slog.Logger
}

func NewEstonia(cfg EstoniaConfig, norm *normalize.Normalizer) *Estonia {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultAriregisterURL
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"est", "eng"}
	}
	cfg.Timeout = defaultDur(cfg.Timeout, 8*time.Second)
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origin := strings.TrimRight(cfg.BaseURL, "/")
	client := NewClient(
		WithHTTPClient(cfg.HTTPClient),
		WithRateLimit(cfg.RatePerSecond, cfg.Burst),
		WithUserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		WithHeader("Accept-Language", "en-US,en;q=0.9,et;q=0.8"),
		WithHeader("Referer", origin+"/"),
		WithHeader("Origin", origin),
		WithHeader("Cache-Control", "no-cache"),
	)
	return &Estonia{cfg: cfg, client: client, norm: norm, log: logger}
}

func (e *Estonia) Name() string { return e.norm.Label(normalize.RegistryAriregister) }

func (e *Estonia) Search(ctx context.Context, query string) ([]domain.CompanyRecord, error) {
	var errs []error
	validated := false
	for _, lang := range e.cfg.Languages {
		endpoint := strings.TrimRight(e.cfg.BaseURL, "/") + "/" + lang + "/api/autocomplete?q=" + url.QueryEscape(query)
		records, err := e.searchVariant(ctx, endpoint)
		if err != nil {
			e.log.Debug("ariregister variant failed", "lang", lang, "error", err)
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		validated = true
		if len(records) > 0 {
			return records, nil
		}
	}
	if validated {
		return nil, nil
	}
	return nil, unavailable(e.Name(), errors.Join(errs...))
}

func (e *Estonia) searchVariant(ctx context.Context, endpoint string) ([]domain.CompanyRecord, error) {
	ctx, cancel := withTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	var doc any
	if err := e.client.FetchJSON(ctx, Request{URL: endpoint}, &doc); err != nil {
		return nil, err
	}
	rows := asObjects(doc, "data", "results")
	records := make([]domain.CompanyRecord, 0, len(rows))
	for _, row := range rows {
		rec := e.toRecord(row)
		if !rec.Usable() {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (e *Estonia) toRecord(row map[string]any) domain.CompanyRecord {
	code := pickStr(row, "reg_code", "ariregistri_kood", "registry_code")
	address := pickStr(row, "legal_address", "aadress", "address")
	if zip := pickStr(row, "zip_code", "postiindeks"); address != "" && zip != "" {
		address = address + ", " + zip
	}
	if lower := strings.ToLower(address); address != "" && !strings.Contains(lower, "estonia") && !strings.Contains(lower, "eesti") {
		address = address + ", Estonia"
	}
	return domain.CompanyRecord{
		Source:        e.Name(),
		Name:          pickStr(row, "name", "nimi", "arinimi"),
		Jurisdiction:  "EE",
		Address:       domain.StringPtr(address),
		Status:        e.norm.Status(normalize.RegistryAriregister, pickStr(row, "status", "staatus")),
		CompanyNumber: code,
		URL:           e.norm.RecordURL(normalize.RegistryAriregister, pickStr(row, "url"), code),
	}
}

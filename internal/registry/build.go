package registry

import (
	"log/slog"
	"net/http"

	"ndasearch/internal/config"
	"ndasearch/internal/normalize"
	"ndasearch/internal/ports"
)

// Build returns the enabled sources in priority order: direct national
// registers first, then per-jurisdiction and general OpenCorporates. The
// general OpenCorporates adapter is also returned for detail lookups.
func Build(cfg config.Config, norm *normalize.Normalizer, httpClient *http.Client, logger *slog.Logger) ([]ports.Source, *OpenCorporates) {
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}
	var sources []ports.Source

	if s := cfg.Sources.CompaniesHouse; s.IsEnabled() {
		sources = append(sources, NewCompaniesHouse(CompaniesHouseConfig{
			BaseURL:       s.BaseURL,
			APIKey:        cfg.CompaniesHouseAPIKey,
			PageSize:      s.PageSize,
			Timeout:       s.Timeout,
			RatePerSecond: s.RatePerSecond,
			Burst:         s.Burst,
			HTTPClient:    httpClient,
		}, norm))
	}
	if s := cfg.Sources.Estonia; s.IsEnabled() {
		sources = append(sources, NewEstonia(EstoniaConfig{
			BaseURL:       s.BaseURL,
			Timeout:       s.Timeout,
			RatePerSecond: s.RatePerSecond,
			Burst:         s.Burst,
			HTTPClient:    httpClient,
			Logger:        logger,
		}, norm))
	}
	if s := cfg.Sources.ARES; s.IsEnabled() {
		sources = append(sources, NewARES(ARESConfig{
			BaseURL:       s.BaseURL,
			PageSize:      s.PageSize,
			Timeout:       s.Timeout,
			RatePerSecond: s.RatePerSecond,
			Burst:         s.Burst,
			HTTPClient:    httpClient,
		}, norm))
	}

	s := cfg.Sources.OpenCorporates
	ocConfig := func(jurisdiction string) OpenCorporatesConfig {
		return OpenCorporatesConfig{
			BaseURL:       s.BaseURL,
			APIToken:      cfg.OpenCorporatesAPIToken,
			PageSize:      s.PageSize,
			Jurisdiction:  jurisdiction,
			DetailHosts:   cfg.DetailHosts,
			Timeout:       s.Timeout,
			RatePerSecond: s.RatePerSecond,
			Burst:         s.Burst,
			HTTPClient:    httpClient,
		}
	}
	general := NewOpenCorporates(ocConfig(""), norm)
	if s.IsEnabled() {
		for _, j := range cfg.OpenCorporatesJurisdictions {
			sources = append(sources, NewOpenCorporates(ocConfig(j), norm))
		}
		sources = append(sources, general)
	}
	return sources, general
}

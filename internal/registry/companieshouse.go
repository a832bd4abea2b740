package registry

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"ndasearch/internal/domain"
	"ndasearch/internal/normalize"
)

const DefaultCompaniesHouseURL = "https://api.company-information.service.gov.uk"

type CompaniesHouseConfig struct {
	BaseURL        string
	APIKey         string
	PageSize       int
	Timeout        time.Duration
	ProfileTimeout time.Duration
	RatePerSecond  float64
	Burst          int
	HTTPClient     *http.Client
}

// CompaniesHouse searches the UK register and, when an API key is set,
// enriches each hit with its registered office from the profile endpoint.
type CompaniesHouse struct {
	cfg    CompaniesHouseConfig
	client *Client
	norm   *normalize.Normalizer
}

func NewCompaniesHouse(cfg CompaniesHouseConfig, norm *normalize.Normalizer) *CompaniesHouse {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultCompaniesHouseURL
	}
	cfg.PageSize = defaultInt(cfg.PageSize, 5)
	cfg.Timeout = defaultDur(cfg.Timeout, 8*time.Second)
	cfg.ProfileTimeout = defaultDur(cfg.ProfileTimeout, 5*time.Second)
	opts := []Option{WithHTTPClient(cfg.HTTPClient), WithRateLimit(cfg.RatePerSecond, cfg.Burst)}
	if cfg.APIKey != "" {
		token := base64.StdEncoding.EncodeToString([]byte(cfg.APIKey + ":"))
		opts = append(opts, WithHeader("Authorization", "Basic "+token))
	}
	return &CompaniesHouse{cfg: cfg, client: NewClient(opts...), norm: norm}
}

func (c *CompaniesHouse) Name() string { return c.norm.Label(normalize.RegistryCompaniesHouse) }

type chAddress struct {
	Premises     string `json:"premises"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	Locality     string `json:"locality"`
	Region       string `json:"region"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

func (a *chAddress) format() string {
	if a == nil {
		return ""
	}
	return normalize.JoinAddress(a.Premises, a.AddressLine1, a.AddressLine2, a.Locality, a.Region, a.PostalCode, a.Country)
}

type chSearchItem struct {
	Title          string     `json:"title"`
	CompanyNumber  string     `json:"company_number"`
	CompanyStatus  string     `json:"company_status"`
	CompanyType    string     `json:"company_type"`
	DateOfCreation string     `json:"date_of_creation"`
	AddressSnippet string     `json:"address_snippet"`
	Address        *chAddress `json:"address"`
}

type chSearchResponse struct {
	Items []chSearchItem `json:"items"`
}

type chProfile struct {
	RegisteredOfficeAddress *chAddress `json:"registered_office_address"`
}

func (c *CompaniesHouse) Search(ctx context.Context, query string) ([]domain.CompanyRecord, error) {
	ctx, cancel := withTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	params := url.Values{}
	params.Set("q", query)
	params.Set("items_per_page", strconv.Itoa(c.cfg.PageSize))
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/search/companies?" + params.Encode()

	var out chSearchResponse
	if err := c.client.FetchJSON(ctx, Request{URL: endpoint}, &out); err != nil {
		return nil, unavailable(c.Name(), err)
	}

	items := make([]chSearchItem, 0, len(out.Items))
	for _, it := range out.Items {
		if strings.TrimSpace(it.Title) == "" || strings.TrimSpace(it.CompanyNumber) == "" {
			continue
		}
		items = append(items, it)
	}

	addresses := make([]string, len(items))
	var wg sync.WaitGroup
	for i, it := range items {
		addresses[i] = normalize.Address(it.AddressSnippet, it.Address.format())
		if c.cfg.APIKey == "" {
			continue
		}
		wg.Add(1)
		go func(i int, number string) {
			defer wg.Done()
			if addr := c.profileAddress(ctx, number); addr != "" {
				addresses[i] = addr
			}
		}(i, it.CompanyNumber)
	}
	wg.Wait()

	records := make([]domain.CompanyRecord, 0, len(items))
	for i, it := range items {
		records = append(records, domain.CompanyRecord{
			Source:            c.Name(),
			Name:              strings.TrimSpace(it.Title),
			Jurisdiction:      "GB",
			Address:           domain.StringPtr(addresses[i]),
			Status:            c.norm.Status(normalize.RegistryCompaniesHouse, it.CompanyStatus),
			CompanyNumber:     strings.TrimSpace(it.CompanyNumber),
			IncorporationDate: domain.StringPtr(it.DateOfCreation),
			CompanyType:       domain.StringPtr(it.CompanyType),
			URL:               c.norm.RecordURL(normalize.RegistryCompaniesHouse, "", url.PathEscape(strings.TrimSpace(it.CompanyNumber))),
		})
	}
	return records, nil
}

// profileAddress returns "" on any failure so the caller keeps the
// search-level address.
func (c *CompaniesHouse) profileAddress(ctx context.Context, number string) string {
	ctx, cancel := withTimeout(ctx, c.cfg.ProfileTimeout)
	defer cancel()
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/company/" + url.PathEscape(number)
	var profile chProfile
	if err := c.client.FetchJSON(ctx, Request{URL: endpoint}, &profile); err != nil {
		return ""
	}
	return profile.RegisteredOfficeAddress.format()
}

package registry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"ndasearch/internal/domain"
	"ndasearch/internal/normalize"
)

const DefaultOpenCorporatesURL = "https://api.opencorporates.com/v0.4"

var (
	// ErrCompanyNotFound is returned by Details when the registry has no
	// parseable company behind the URL.
	ErrCompanyNotFound = errors.New("registry: company not found")
	// ErrDetailURL rejects detail URLs outside the allowed registry hosts.
	ErrDetailURL = errors.New("registry: unsupported company url")
)

type OpenCorporatesConfig struct {
	BaseURL  string
	APIToken string
	PageSize int
	// Jurisdiction restricts the search to one OpenCorporates jurisdiction
	// code (us_de, gb, ae_du). Empty searches all jurisdictions.
	Jurisdiction string
	// DetailHosts are registrable domains accepted by Details.
	DetailHosts   []string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	HTTPClient    *http.Client
}

// OpenCorporates covers 140+ jurisdictions through a single search API.
type OpenCorporates struct {
	cfg    OpenCorporatesConfig
	client *Client
	norm   *normalize.Normalizer
}

func NewOpenCorporates(cfg OpenCorporatesConfig, norm *normalize.Normalizer) *OpenCorporates {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultOpenCorporatesURL
	}
	cfg.PageSize = defaultInt(cfg.PageSize, 8)
	cfg.Timeout = defaultDur(cfg.Timeout, 10*time.Second)
	if len(cfg.DetailHosts) == 0 {
		cfg.DetailHosts = []string{"opencorporates.com"}
	}
	client := NewClient(WithHTTPClient(cfg.HTTPClient), WithRateLimit(cfg.RatePerSecond, cfg.Burst))
	return &OpenCorporates{cfg: cfg, client: client, norm: norm}
}

func (o *OpenCorporates) Name() string {
	label := o.norm.Label(normalize.RegistryOpenCorporates)
	if o.cfg.Jurisdiction == "" {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, o.norm.Jurisdiction(o.cfg.Jurisdiction))
}

type ocAddress struct {
	StreetAddress string `json:"street_address"`
	Locality      string `json:"locality"`
	Region        string `json:"region"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
}

type ocCompany struct {
	Name                    string     `json:"name"`
	CompanyNumber           string     `json:"company_number"`
	JurisdictionCode        string     `json:"jurisdiction_code"`
	IncorporationDate       string     `json:"incorporation_date"`
	CompanyType             string     `json:"company_type"`
	CurrentStatus           string     `json:"current_status"`
	RegisteredAddressInFull string     `json:"registered_address_in_full"`
	RegisteredAddress       *ocAddress `json:"registered_address"`
	OpenCorporatesURL       string     `json:"opencorporates_url"`
	AgentName               string     `json:"agent_name"`
}

type ocSearchResponse struct {
	Results struct {
		Companies []struct {
			Company ocCompany `json:"company"`
		} `json:"companies"`
	} `json:"results"`
}

type ocDetailResponse struct {
	Results struct {
		Company *ocCompany `json:"company"`
	} `json:"results"`
}

func (o *OpenCorporates) Search(ctx context.Context, query string) ([]domain.CompanyRecord, error) {
	ctx, cancel := withTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	params := url.Values{}
	params.Set("q", query)
	params.Set("per_page", strconv.Itoa(o.cfg.PageSize))
	if o.cfg.Jurisdiction != "" {
		params.Set("jurisdiction_code", strings.ToLower(o.cfg.Jurisdiction))
	}
	if o.cfg.APIToken != "" {
		params.Set("api_token", o.cfg.APIToken)
	}
	endpoint := strings.TrimRight(o.cfg.BaseURL, "/") + "/companies/search?" + params.Encode()

	var out ocSearchResponse
	if err := o.client.FetchJSON(ctx, Request{URL: endpoint}, &out); err != nil {
		return nil, unavailable(o.Name(), err)
	}
	records := make([]domain.CompanyRecord, 0, len(out.Results.Companies))
	for _, c := range out.Results.Companies {
		rec := o.toRecord(c.Company)
		if !rec.Usable() {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (o *OpenCorporates) toRecord(c ocCompany) domain.CompanyRecord {
	var parts []string
	if a := c.RegisteredAddress; a != nil {
		parts = []string{a.StreetAddress, a.Locality, a.Region, a.PostalCode, a.Country}
	}
	number := strings.TrimSpace(c.CompanyNumber)
	deepLink := c.OpenCorporatesURL
	if deepLink == "" && c.JurisdictionCode != "" && number != "" {
		deepLink = "https://opencorporates.com/companies/" + url.PathEscape(strings.ToLower(c.JurisdictionCode)) + "/" + url.PathEscape(number)
	}
	return domain.CompanyRecord{
		Source:            o.Name(),
		Name:              strings.TrimSpace(c.Name),
		Jurisdiction:      o.norm.Jurisdiction(c.JurisdictionCode),
		Address:           domain.StringPtr(normalize.Address(c.RegisteredAddressInFull, parts...)),
		Status:            o.norm.Status(normalize.RegistryOpenCorporates, c.CurrentStatus),
		CompanyNumber:     number,
		IncorporationDate: domain.StringPtr(c.IncorporationDate),
		CompanyType:       domain.StringPtr(c.CompanyType),
		URL:               o.norm.RecordURL(normalize.RegistryOpenCorporates, deepLink, number),
	}
}

// Details fetches one company given its public OpenCorporates URL
// (https://opencorporates.com/companies/{jurisdiction}/{number}).
func (o *OpenCorporates) Details(ctx context.Context, companyURL string) (domain.CompanyDetail, error) {
	jur, number, err := o.parseDetailURL(companyURL)
	if err != nil {
		return domain.CompanyDetail{}, err
	}
	ctx, cancel := withTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	endpoint := strings.TrimRight(o.cfg.BaseURL, "/") + "/companies/" + url.PathEscape(jur) + "/" + url.PathEscape(number)
	if o.cfg.APIToken != "" {
		endpoint += "?" + url.Values{"api_token": {o.cfg.APIToken}}.Encode()
	}
	var out ocDetailResponse
	if err := o.client.FetchJSON(ctx, Request{URL: endpoint}, &out); err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			return domain.CompanyDetail{}, fmt.Errorf("%w: %v", ErrCompanyNotFound, err)
		}
		return domain.CompanyDetail{}, err
	}
	if out.Results.Company == nil {
		return domain.CompanyDetail{}, ErrCompanyNotFound
	}
	rec := o.toRecord(*out.Results.Company)
	if rec.Name == "" {
		return domain.CompanyDetail{}, ErrCompanyNotFound
	}
	rec.Source = o.norm.Label(normalize.RegistryOpenCorporates)
	if rec.URL == "" || rec.URL == o.norm.RecordURL(normalize.RegistryOpenCorporates, "", "") {
		rec.URL = companyURL
	}
	return domain.CompanyDetail{
		CompanyRecord:   rec,
		RegisteredAgent: domain.StringPtr(strings.TrimSpace(out.Results.Company.AgentName)),
	}, nil
}

func (o *OpenCorporates) parseDetailURL(raw string) (string, string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", "", fmt.Errorf("%w: %q", ErrDetailURL, raw)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return "", "", fmt.Errorf("%w: scheme %q", ErrDetailURL, u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		registrable = host
	}
	allowed := false
	for _, h := range o.cfg.DetailHosts {
		if strings.EqualFold(h, registrable) {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", "", fmt.Errorf("%w: host %q", ErrDetailURL, host)
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) != 3 || segs[0] != "companies" || segs[1] == "" || segs[2] == "" {
		return "", "", fmt.Errorf("%w: %s", ErrCompanyNotFound, u.Path)
	}
	return segs[1], segs[2], nil
}

package registry

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ndasearch/internal/domain"
	"ndasearch/internal/normalize"
)

const DefaultARESURL = "https://ares.gov.cz/ekonomicke-subjekty-v-be/rest"

var icoPattern = regexp.MustCompile(`^\d{8}$`)

type ARESConfig struct {
	BaseURL       string
	PageSize      int
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	HTTPClient    *http.Client
}

// ARES searches the Czech administrative register of economic subjects.
// The POST search endpoint is preferred; a GET variant is the fallback.
type ARES struct {
	cfg    ARESConfig
	client *Client
	norm   *normalize.Normalizer
}

func NewARES(cfg ARESConfig, norm *normalize.Normalizer) *ARES {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultARESURL
	}
	cfg.PageSize = defaultInt(cfg.PageSize, 8)
	cfg.Timeout = defaultDur(cfg.Timeout, 8*time.Second)
	client := NewClient(WithHTTPClient(cfg.HTTPClient), WithRateLimit(cfg.RatePerSecond, cfg.Burst))
	return &ARES{cfg: cfg, client: client, norm: norm}
}

func (a *ARES) Name() string { return a.norm.Label(normalize.RegistryARES) }

type aresSearchBody struct {
	ObchodniJmeno string   `json:"obchodniJmeno,omitempty"`
	ICO           []string `json:"ico,omitempty"`
	Start         int      `json:"start"`
	Pocet         int      `json:"pocet"`
}

func (a *ARES) variants(query string) []Request {
	base := strings.TrimRight(a.cfg.BaseURL, "/") + "/ekonomicke-subjekty"
	body := aresSearchBody{ObchodniJmeno: query, Pocet: a.cfg.PageSize}
	get := Request{URL: base + "/vyhledat?" + url.Values{
		"obchodniJmeno": {query},
		"pocet":         {strconv.Itoa(a.cfg.PageSize)},
	}.Encode()}
	if ico := strings.ReplaceAll(query, " ", ""); icoPattern.MatchString(ico) {
		body = aresSearchBody{ICO: []string{ico}, Pocet: a.cfg.PageSize}
		get = Request{URL: base + "/" + ico}
	}
	return []Request{
		{Method: http.MethodPost, URL: base + "/vyhledat", Body: body},
		get,
	}
}

func (a *ARES) Search(ctx context.Context, query string) ([]domain.CompanyRecord, error) {
	var errs []error
	validated := false
	for _, req := range a.variants(query) {
		records, err := a.searchVariant(ctx, req)
		if err != nil {
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
	return nil, unavailable(a.Name(), errors.Join(errs...))
}

func (a *ARES) searchVariant(ctx context.Context, req Request) ([]domain.CompanyRecord, error) {
	ctx, cancel := withTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	var doc any
	if err := a.client.FetchJSON(ctx, req, &doc); err != nil {
		return nil, err
	}
	rows := asObjects(doc, "ekonomickeSubjekty", "ekonomicke_subjekty")
	if obj, ok := doc.(map[string]any); ok && len(rows) == 0 && pickStr(obj, "ico") != "" {
		// single-subject lookup by IČO
		rows = []map[string]any{obj}
	}
	records := make([]domain.CompanyRecord, 0, len(rows))
	for _, row := range rows {
		rec := a.toRecord(row)
		if !rec.Usable() {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (a *ARES) toRecord(row map[string]any) domain.CompanyRecord {
	ico := pickStr(row, "ico", "ICO")
	var address string
	if seat := pickMap(row, "sidlo", "adresaSidla"); seat != nil {
		street := pickStr(seat, "nazevUlice")
		number := pickStr(seat, "cisloDomovni")
		if orient := pickStr(seat, "cisloOrientacni"); orient != "" {
			number = strings.TrimLeft(number+"/"+orient, "/")
		}
		if number != "" {
			street = strings.TrimSpace(street + " " + number)
		}
		address = normalize.Address(
			pickStr(seat, "textovaAdresa"),
			street,
			pickStr(seat, "nazevObce"),
			pickStr(seat, "psc", "pscTxt"),
			pickStr(seat, "nazevStatu"),
		)
	}
	return domain.CompanyRecord{
		Source:            a.Name(),
		Name:              pickStr(row, "obchodniJmeno", "nazev"),
		Jurisdiction:      "CZ",
		Address:           domain.StringPtr(address),
		Status:            a.norm.Status(normalize.RegistryARES, pickStr(row, "stavSubjektu", "stav")),
		CompanyNumber:     ico,
		IncorporationDate: domain.StringPtr(pickStr(row, "datumVzniku")),
		CompanyType:       domain.StringPtr(pickStr(row, "pravniForma")),
		URL:               a.norm.RecordURL(normalize.RegistryARES, "", ico),
	}
}

package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndasearch/internal/normalize"
)

const ocSearchBody = `{"results":{"companies":[
	{"company":{"name":"ACME INC","company_number":"5551234","jurisdiction_code":"us_de","incorporation_date":"2010-03-04","company_type":"Corporation","current_status":"Active","registered_address_in_full":"1 Main St, Dover, DE 19901","opencorporates_url":"https://opencorporates.com/companies/us_de/5551234"}},
	{"company":{"name":"ACME FZE","company_number":"77","jurisdiction_code":"ae_du","registered_address":{"street_address":"Tower 1","locality":"Dubai","country":"United Arab Emirates"}}},
	{"company":{"name":"","company_number":"1","jurisdiction_code":"gb"}}
]}}`

func TestOpenCorporatesSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/companies/search", r.URL.Path)
		assert.Equal(t, "acme", r.URL.Query().Get("q"))
		assert.Equal(t, "8", r.URL.Query().Get("per_page"))
		assert.Equal(t, "tok", r.URL.Query().Get("api_token"))
		assert.Empty(t, r.URL.Query().Get("jurisdiction_code"))
		_, _ = w.Write([]byte(ocSearchBody))
	}))
	defer srv.Close()

	oc := NewOpenCorporates(OpenCorporatesConfig{BaseURL: srv.URL, APIToken: "tok", HTTPClient: srv.Client()}, normalize.Default())
	assert.Equal(t, "OpenCorporates", oc.Name())

	records, err := oc.Search(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "US-DE", records[0].Jurisdiction)
	assert.Equal(t, "1 Main St, Dover, DE 19901", *records[0].Address)
	assert.Equal(t, "https://opencorporates.com/companies/us_de/5551234", records[0].URL)

	assert.Equal(t, "AE-DU", records[1].Jurisdiction)
	assert.Equal(t, "Tower 1, Dubai, United Arab Emirates", *records[1].Address)
	assert.Equal(t, "https://opencorporates.com/companies/ae_du/77", records[1].URL)
	assert.Nil(t, records[1].IncorporationDate)
}

func TestOpenCorporatesPerJurisdiction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "us_de", r.URL.Query().Get("jurisdiction_code"))
		_, _ = w.Write([]byte(`{"results":{"companies":[]}}`))
	}))
	defer srv.Close()

	oc := NewOpenCorporates(OpenCorporatesConfig{BaseURL: srv.URL, Jurisdiction: "US_DE", HTTPClient: srv.Client()}, normalize.Default())
	assert.Equal(t, "OpenCorporates (US-DE)", oc.Name())
	records, err := oc.Search(context.Background(), "acme")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestOpenCorporatesDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/companies/us_de/5551234":
			_, _ = w.Write([]byte(`{"results":{"company":{"name":"ACME INC","company_number":"5551234","jurisdiction_code":"us_de","current_status":"Active","agent_name":"THE CORPORATION TRUST COMPANY","registered_address":{"street_address":"1209 Orange St","locality":"Wilmington","region":"DE","postal_code":"19801"}}}}`))
		case "/companies/gb/empty":
			_, _ = w.Write([]byte(`{"results":{}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"message":"not found"}}`))
		}
	}))
	defer srv.Close()

	oc := NewOpenCorporates(OpenCorporatesConfig{BaseURL: srv.URL, HTTPClient: srv.Client()}, normalize.Default())

	detail, err := oc.Details(context.Background(), "https://opencorporates.com/companies/us_de/5551234")
	require.NoError(t, err)
	assert.Equal(t, "ACME INC", detail.Name)
	assert.Equal(t, "OpenCorporates", detail.Source)
	assert.Equal(t, "US-DE", detail.Jurisdiction)
	assert.Equal(t, "1209 Orange St, Wilmington, DE, 19801", *detail.Address)
	require.NotNil(t, detail.RegisteredAgent)
	assert.Equal(t, "THE CORPORATION TRUST COMPANY", *detail.RegisteredAgent)

	_, err = oc.Details(context.Background(), "https://opencorporates.com/companies/gb/empty")
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	_, err = oc.Details(context.Background(), "https://opencorporates.com/companies/gb/missing")
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	_, err = oc.Details(context.Background(), "https://opencorporates.com/officers/123")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestOpenCorporatesDetailURLValidation(t *testing.T) {
	oc := NewOpenCorporates(OpenCorporatesConfig{}, normalize.Default())
	for _, raw := range []string{
		"https://evil.example.com/companies/gb/1",
		"https://opencorporates.com.evil.io/companies/gb/1",
		"file:///etc/passwd",
		"not a url",
	} {
		_, _, err := oc.parseDetailURL(raw)
		assert.ErrorIs(t, err, ErrDetailURL, raw)
	}

	jur, num, err := oc.parseDetailURL("https://www.opencorporates.com/companies/gb/01234567")
	require.NoError(t, err)
	assert.Equal(t, "gb", jur)
	assert.Equal(t, "01234567", num)
}

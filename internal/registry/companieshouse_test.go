package registry

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndasearch/internal/normalize"
)

const chSearchBody = `{"items":[
	{"title":"ACME LTD","company_number":"01234567","company_status":"active","company_type":"ltd","date_of_creation":"1999-01-02","address_snippet":"1 High St, London"},
	{"title":"ACME SERVICES LTD","company_number":"07654321","company_status":"dissolved","address":{"premises":"2","address_line_1":"Low Rd","locality":"Leeds","postal_code":"LS1 1AA"}},
	{"title":"","company_number":"1"},
	{"title":"NO NUMBER LTD","company_number":""}
]}`

func TestCompaniesHouseSearchWithProfiles(t *testing.T) {
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("key:"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantAuth, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/search/companies":
			assert.Equal(t, "acme", r.URL.Query().Get("q"))
			assert.Equal(t, "5", r.URL.Query().Get("items_per_page"))
			_, _ = w.Write([]byte(chSearchBody))
		case "/company/01234567":
			_, _ = w.Write([]byte(`{"registered_office_address":{"address_line_1":"1 High St","locality":"London","postal_code":"EC1A 1AA","country":"United Kingdom"}}`))
		case "/company/07654321":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ch := NewCompaniesHouse(CompaniesHouseConfig{BaseURL: srv.URL, APIKey: "key", HTTPClient: srv.Client()}, normalize.Default())
	records, err := ch.Search(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Companies House UK", first.Source)
	assert.Equal(t, "ACME LTD", first.Name)
	assert.Equal(t, "GB", first.Jurisdiction)
	assert.Equal(t, "1 High St, London, EC1A 1AA, United Kingdom", *first.Address)
	assert.Equal(t, "Active", first.Status)
	assert.Equal(t, "1999-01-02", *first.IncorporationDate)
	assert.Equal(t, "ltd", *first.CompanyType)
	assert.Equal(t, "https://find-and-update.company-information.service.gov.uk/company/01234567", first.URL)

	// failed profile call keeps the search-level address
	second := records[1]
	assert.Equal(t, "2, Low Rd, Leeds, LS1 1AA", *second.Address)
	assert.Equal(t, "Dissolved", second.Status)
	assert.Nil(t, second.IncorporationDate)
}

func TestCompaniesHouseSkipsProfilesWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		if r.URL.Path != "/search/companies" {
			t.Errorf("unexpected call to %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(chSearchBody))
	}))
	defer srv.Close()

	ch := NewCompaniesHouse(CompaniesHouseConfig{BaseURL: srv.URL, HTTPClient: srv.Client()}, normalize.Default())
	records, err := ch.Search(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1 High St, London", *records[0].Address)
}

func TestCompaniesHouseSlowProfileFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search/companies" {
			_, _ = w.Write([]byte(`{"items":[{"title":"ACME LTD","company_number":"01234567","address_snippet":"1 High St, London"}]}`))
			return
		}
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	ch := NewCompaniesHouse(CompaniesHouseConfig{
		BaseURL:        srv.URL,
		APIKey:         "key",
		ProfileTimeout: 50 * time.Millisecond,
		HTTPClient:     srv.Client(),
	}, normalize.Default())

	start := time.Now()
	records, err := ch.Search(context.Background(), "acme")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	require.Len(t, records, 1)
	assert.Equal(t, "1 High St, London", *records[0].Address)
}

func TestCompaniesHouseUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	ch := NewCompaniesHouse(CompaniesHouseConfig{BaseURL: srv.URL, HTTPClient: srv.Client()}, normalize.Default())
	_, err := ch.Search(context.Background(), "acme")
	var sue *SourceUnavailableError
	require.ErrorAs(t, err, &sue)
	assert.Equal(t, "Companies House UK", sue.Source)
}

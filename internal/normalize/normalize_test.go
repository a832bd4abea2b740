package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJurisdiction(t *testing.T) {
	n := Default()
	cases := []struct {
		in, want string
	}{
		{"gb", "GB"},
		{"us_de", "US-DE"},
		{"gb_sct", "GB-SCT"},
		{"ae_du", "AE-DU"},
		{"uk", "GB"},
		{"za_wc", "ZA-WC"},
		{"  ee ", "EE"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, n.Jurisdiction(tc.in), "input %q", tc.in)
	}
}

func TestStatus(t *testing.T) {
	n := Default()
	assert.Equal(t, "Registered", n.Status(RegistryAriregister, "R"))
	assert.Equal(t, "Deleted", n.Status(RegistryAriregister, "Kustutatud"))
	assert.Equal(t, "Active", n.Status(RegistryAriregister, ""))
	assert.Equal(t, "Pankrotis", n.Status(RegistryAriregister, "Pankrotis"))
	assert.Equal(t, "Active", n.Status(RegistryCompaniesHouse, "active"))
	assert.Equal(t, "In liquidation", n.Status(RegistryARES, "V_LIKVIDACI"))
	assert.Equal(t, "", n.Status(RegistryCompaniesHouse, ""))
	assert.Equal(t, "Exempt", n.Status("unknown", "Exempt"))
}

func TestJoinAddress(t *testing.T) {
	assert.Equal(t, "1 High St, London, EC1A 1AA", JoinAddress("1 High St", "", "London", "  ", "EC1A 1AA"))
	assert.Equal(t, "", JoinAddress("", " "))
	assert.Equal(t, "Full line", Address(" Full line ", "a", "b"))
	assert.Equal(t, "a, b", Address("", "a", "b"))
}

func TestRecordURL(t *testing.T) {
	n := Default()
	assert.Equal(t, "https://x.test/1", n.RecordURL(RegistryAriregister, "https://x.test/1", "1"))
	assert.Equal(t, "https://ariregister.rik.ee/eng/company/10137319", n.RecordURL(RegistryAriregister, "", "10137319"))
	assert.Equal(t, "https://opencorporates.com/", n.RecordURL(RegistryOpenCorporates, "", "123"))
	assert.Equal(t, "", n.RecordURL("nowhere", "", "1"))
}

func TestTablesMergeDoesNotMutateBase(t *testing.T) {
	base := DefaultTables()
	merged := base.Merge(Tables{
		Jurisdictions: map[string]string{"gb_wls": "GB-WLS"},
		Statuses: map[string]StatusTable{
			RegistryAriregister: {Codes: map[string]string{"P": "Bankrupt"}},
		},
	})
	n := New(merged)

	assert.Equal(t, "GB-WLS", n.Jurisdiction("gb_wls"))
	assert.Equal(t, "Bankrupt", n.Status(RegistryAriregister, "P"))
	assert.Equal(t, "Registered", n.Status(RegistryAriregister, "R"))
	assert.Equal(t, "Active", n.Status(RegistryAriregister, ""))

	_, ok := base.Statuses[RegistryAriregister].Codes["P"]
	assert.False(t, ok)
}

package companies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndasearch/internal/domain"
)

func rec(source, name, number, jur, address string) domain.CompanyRecord {
	return domain.CompanyRecord{
		Source:        source,
		Name:          name,
		CompanyNumber: number,
		Jurisdiction:  jur,
		Address:       domain.StringPtr(address),
	}
}

func names(records []domain.CompanyRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestMergeDedupByNumberKeepsHigherPriority(t *testing.T) {
	out := Merge([][]domain.CompanyRecord{
		{rec("Companies House UK", "ACME LTD", "01234567", "GB", "1 High St")},
		{rec("OpenCorporates", "Acme Limited", "01234567", "gb", "elsewhere")},
	}, 12)

	require.Len(t, out, 1)
	assert.Equal(t, "Companies House UK", out[0].Source)
}

func TestMergeDedupByNameKey(t *testing.T) {
	// Different numbers, same normalized name: collapsed even though these
	// may be distinct legal entities.
	out := Merge([][]domain.CompanyRecord{
		{rec("Estonia e-Business Register", "Acme OÜ", "10000001", "EE", "Tallinn")},
		{rec("OpenCorporates", "ACME OU", "99999999", "EE", "")},
	}, 12)

	require.Len(t, out, 1)
	assert.Equal(t, "10000001", out[0].CompanyNumber)
}

func TestMergeSameNumberDifferentJurisdictionKept(t *testing.T) {
	out := Merge([][]domain.CompanyRecord{
		{rec("A", "Alpha", "123", "GB", "")},
		{rec("B", "Beta", "123", "US-DE", "")},
	}, 12)
	assert.Equal(t, []string{"Alpha", "Beta"}, names(out))
}

func TestMergeAddressFirstStable(t *testing.T) {
	out := Merge([][]domain.CompanyRecord{
		{rec("A", "One", "1", "GB", ""), rec("A", "Two", "2", "GB", "addr")},
		{rec("B", "Three", "3", "EE", ""), rec("B", "Four", "4", "EE", "addr")},
		{rec("C", "Five", "5", "CZ", "addr")},
	}, 12)
	assert.Equal(t, []string{"Two", "Four", "Five", "One", "Three"}, names(out))
}

func TestMergeTruncates(t *testing.T) {
	var batch []domain.CompanyRecord
	for i := 0; i < 20; i++ {
		batch = append(batch, rec("A", "Company "+string(rune('a'+i)), string(rune('a'+i)), "GB", ""))
	}
	assert.Len(t, Merge([][]domain.CompanyRecord{batch}, 12), 12)
	assert.Len(t, Merge([][]domain.CompanyRecord{batch}, 0), DefaultPageSize)
	assert.Len(t, Merge(nil, 5), 0)
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	in := [][]domain.CompanyRecord{
		{rec("A", "No Address", "1", "GB", ""), rec("A", "Addressed", "2", "GB", "x")},
	}
	_ = Merge(in, 12)
	assert.Equal(t, "No Address", in[0][0].Name)
}

func TestNameKey(t *testing.T) {
	assert.Equal(t, "acmeltd", nameKey("ACME Ltd."))
	assert.Equal(t, "skodaautoas", nameKey("ŠKODA AUTO a.s."))
	assert.Equal(t, "", nameKey("ООО"))
}

package domain

// Core records returned by the search endpoint. They are produced by the
// registry adapters and never mutated afterwards; the merge step only
// filters and reorders them. Every key is always emitted, missing optional
// values as null, so the form sees one response shape.

type CompanyRecord struct {
	Source            string  `json:"source"`
	Name              string  `json:"name"`
	Jurisdiction      string  `json:"jurisdiction"`
	Address           *string `json:"address"`
	Status            string  `json:"status"`
	CompanyNumber     string  `json:"companyNumber"`
	IncorporationDate *string `json:"incorporationDate"`
	CompanyType       *string `json:"companyType"`
	URL               string  `json:"url"`
}

// HasAddress reports whether the record carries a non-empty address.
func (r CompanyRecord) HasAddress() bool {
	return r.Address != nil && *r.Address != ""
}

// Usable reports whether the record has both a name and a registry number.
func (r CompanyRecord) Usable() bool {
	return r.Name != "" && r.CompanyNumber != ""
}

// CompanyDetail is the denormalized single-company view returned by the
// detail lookup.
type CompanyDetail struct {
	CompanyRecord
	RegisteredAgent *string `json:"registeredAgent"`
}

// StringPtr returns nil for empty strings.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

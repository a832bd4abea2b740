// Package normalize maps registry-specific field values onto the shared
// CompanyRecord vocabulary. All lookup tables are plain data held by a
// Normalizer; nothing here performs I/O.
package normalize

import (
	"fmt"
	"strings"
)

// Registry keys used to select status vocabularies and register URLs.
const (
	RegistryCompaniesHouse = "companieshouse"
	RegistryAriregister    = "ariregister"
	RegistryARES           = "ares"
	RegistryOpenCorporates = "opencorporates"
)

// Register describes how to link to a record on a registry's public site.
type Register struct {
	Label string
	// LinkTemplate receives the company number through a single %s verb.
	LinkTemplate string
	HomeURL      string
}

// StatusTable translates one registry's native status codes.
type StatusTable struct {
	Codes map[string]string
	// Default is used when the registry reports no status at all.
	Default string
}

// Tables is the full set of static lookups a Normalizer consults.
type Tables struct {
	Jurisdictions map[string]string
	Statuses      map[string]StatusTable
	Registers     map[string]Register
}

// Normalizer is safe for concurrent use; it never mutates its tables after
// construction.
type Normalizer struct {
	tables Tables
}

// New copies t so later changes by the caller are not observed.
func New(t Tables) *Normalizer {
	return &Normalizer{tables: t.clone()}
}

// Default returns a Normalizer over DefaultTables.
func Default() *Normalizer { return New(DefaultTables()) }

// Jurisdiction canonicalizes a registry jurisdiction code into ISO-2 form,
// optionally suffixed with a region (US-DE, GB-SCT). Unknown codes pass
// through in canonical shape.
func (n *Normalizer) Jurisdiction(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	mapped := strings.ReplaceAll(strings.ToUpper(code), "_", "-")
	if v, ok := n.tables.Jurisdictions[mapped]; ok {
		return v
	}
	return mapped
}

// Status translates raw using the registry's table. Unmapped values are
// returned verbatim.
func (n *Normalizer) Status(registry, raw string) string {
	table, ok := n.tables.Statuses[registry]
	raw = strings.TrimSpace(raw)
	if !ok {
		return raw
	}
	if raw == "" {
		return table.Default
	}
	if v, ok := table.Codes[raw]; ok {
		return v
	}
	if v, ok := table.Codes[strings.ToLower(raw)]; ok {
		return v
	}
	return raw
}

// RecordURL returns deepLink when present, else the registry's templated
// link for number, else its home page.
func (n *Normalizer) RecordURL(registry, deepLink, number string) string {
	if deepLink = strings.TrimSpace(deepLink); deepLink != "" {
		return deepLink
	}
	reg, ok := n.tables.Registers[registry]
	if !ok {
		return ""
	}
	if number != "" && reg.LinkTemplate != "" {
		return fmt.Sprintf(reg.LinkTemplate, number)
	}
	return reg.HomeURL
}

// Label returns the human-readable register name for a registry key.
func (n *Normalizer) Label(registry string) string {
	if reg, ok := n.tables.Registers[registry]; ok && reg.Label != "" {
		return reg.Label
	}
	return registry
}

// JoinAddress joins the present components with ", ", skipping blanks.
func JoinAddress(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

// Address prefers a pre-formatted full address over assembling parts.
func Address(full string, parts ...string) string {
	if full = strings.TrimSpace(full); full != "" {
		return full
	}
	return JoinAddress(parts...)
}

// Merge returns a copy of t with extra's entries layered on top.
func (t Tables) Merge(extra Tables) Tables {
	out := t.clone()
	for k, v := range extra.Jurisdictions {
		out.Jurisdictions[strings.ReplaceAll(strings.ToUpper(k), "_", "-")] = v
	}
	for reg, st := range extra.Statuses {
		cur := out.Statuses[reg]
		codes := make(map[string]string, len(cur.Codes)+len(st.Codes))
		for k, v := range cur.Codes {
			codes[k] = v
		}
		for k, v := range st.Codes {
			codes[k] = v
		}
		cur.Codes = codes
		if st.Default != "" {
			cur.Default = st.Default
		}
		out.Statuses[reg] = cur
	}
	for k, v := range extra.Registers {
		out.Registers[k] = v
	}
	return out
}

func (t Tables) clone() Tables {
	out := Tables{
		Jurisdictions: make(map[string]string, len(t.Jurisdictions)),
		Statuses:      make(map[string]StatusTable, len(t.Statuses)),
		Registers:     make(map[string]Register, len(t.Registers)),
	}
	for k, v := range t.Jurisdictions {
		out.Jurisdictions[k] = v
	}
	for k, v := range t.Statuses {
		codes := make(map[string]string, len(v.Codes))
		for ck, cv := range v.Codes {
			codes[ck] = cv
		}
		out.Statuses[k] = StatusTable{Codes: codes, Default: v.Default}
	}
	for k, v := range t.Registers {
		out.Registers[k] = v
	}
	return out
}

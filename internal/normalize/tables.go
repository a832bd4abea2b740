package normalize

// DefaultTables returns a fresh copy of the built-in lookup tables.
func DefaultTables() Tables {
	return Tables{
		Jurisdictions: map[string]string{
			"GB": "GB", "UK": "GB", "GB-SCT": "GB-SCT", "GB-NIR": "GB-NIR",
			"US-DE": "US-DE", "US-NY": "US-NY", "US-CA": "US-CA",
			"EE": "EE", "LT": "LT", "PL": "PL", "CZ": "CZ", "ES": "ES",
			"HU": "HU", "DE": "DE", "FR": "FR", "NL": "NL", "IE": "IE",
			"AE": "AE", "AE-DU": "AE-DU", "AE-AZ": "AE-AZ", "SG": "SG", "HK": "HK",
			"CH": "CH", "SV": "SV", "BE": "BE", "AT": "AT", "IT": "IT", "PT": "PT",
		},
		Statuses: map[string]StatusTable{
			RegistryCompaniesHouse: {Codes: map[string]string{
				"active":                 "Active",
				"dissolved":              "Dissolved",
				"liquidation":            "In liquidation",
				"administration":         "In administration",
				"receivership":           "In receivership",
				"converted-closed":       "Closed",
				"insolvency-proceedings": "Insolvency proceedings",
			}},
			RegistryAriregister: {
				Codes: map[string]string{
					"R":                  "Registered",
					"Registrisse kantud": "Registered",
					"K":                  "Deleted",
					"Kustutatud":         "Deleted",
					"L":                  "In liquidation",
					"Likvideerimisel":    "In liquidation",
				},
				Default: "Active",
			},
			RegistryARES: {Codes: map[string]string{
				"AKTIVNI":     "Active",
				"ZANIKLY":     "Deleted",
				"V_LIKVIDACI": "In liquidation",
			}},
		},
		Registers: map[string]Register{
			RegistryCompaniesHouse: {
				Label:        "Companies House UK",
				LinkTemplate: "https://find-and-update.company-information.service.gov.uk/company/%s",
				HomeURL:      "https://find-and-update.company-information.service.gov.uk/",
			},
			RegistryAriregister: {
				Label:        "Estonia e-Business Register",
				LinkTemplate: "https://ariregister.rik.ee/eng/company/%s",
				HomeURL:      "https://ariregister.rik.ee/",
			},
			RegistryARES: {
				Label:        "ARES Czech Business Register",
				LinkTemplate: "https://ares.gov.cz/ekonomicke-subjekty?ico=%s",
				HomeURL:      "https://ares.gov.cz/",
			},
			RegistryOpenCorporates: {
				Label:   "OpenCorporates",
				HomeURL: "https://opencorporates.com/",
			},
		},
	}
}

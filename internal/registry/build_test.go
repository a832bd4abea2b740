package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ndasearch/internal/config"
	"ndasearch/internal/normalize"
)

func TestBuildPriorityOrder(t *testing.T) {
	cfg := config.Config{OpenCorporatesJurisdictions: []string{"us_de", "ae"}}
	sources, details := Build(cfg, normalize.Default(), nil, nil)

	var names []string
	for _, s := range sources {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{
		"Companies House UK",
		"Estonia e-Business Register",
		"ARES Czech Business Register",
		"OpenCorporates (US-DE)",
		"OpenCorporates (AE)",
		"OpenCorporates",
	}, names)
	assert.Same(t, details, sources[len(sources)-1])
}

func TestBuildDisabledSources(t *testing.T) {
	off := false
	cfg := config.Config{Sources: config.Sources{
		Estonia:        config.SourceConfig{Enabled: &off},
		OpenCorporates: config.SourceConfig{Enabled: &off},
	}}
	sources, details := Build(cfg, normalize.Default(), nil, nil)

	assert.Len(t, sources, 2)
	assert.NotNil(t, details, "detail lookups stay available")
}

//go:build tools

package tools

// This file tracks tool dependencies for reproducible builds.
// oapi-codegen regenerates internal/api from api/openapi.yaml (go generate ./internal/api);
// goose runs the migrations in internal/adapters/postgres/migrations by hand.

import (
	_ "github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen"
	_ "github.com/pressly/goose/v3/cmd/goose"
)

package main

import (
	"encoding/json"
	"io"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/smartymode/folio/internal/platform"
	"github.com/smartymode/folio/pkg/core"
)

func openApp(reg prometheus.Registerer) (*platform.App, error) {
	return platform.FromConfig(cfg, logger, reg)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func collectionArg(name string) (core.Collection, error) {
	return core.ParseCollection(name)
}

func sourceLabel(kind core.SourceKind) string {
	switch kind {
	case core.SourceEditor:
		return color.GreenString(string(kind))
	case core.SourceLocal:
		return color.CyanString(string(kind))
	case core.SourceCatalog:
		return color.YellowString(string(kind))
	}
	return string(kind)
}

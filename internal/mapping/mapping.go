// Package mapping builds and loads the slug -> tenant domain table that the
// directory client consults in production.
package mapping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BruksfildServices01/vetcard/internal/directory"
)

const DefaultTenantDomain = "https://vet.digispace.pro"

type Table map[string]string

// FallbackClinics is used when the directory cannot produce a list at build time.
var FallbackClinics = []directory.ClinicListItem{
	{Slug: "my-clinic", TenantDomain: DefaultTenantDomain},
}

type ClinicLister interface {
	FetchClinicList(ctx context.Context) ([]directory.ClinicListItem, error)
}

// Fetch returns the clinics to build the table from, degrading to
// FallbackClinics on any error or an empty list.
func Fetch(ctx context.Context, lister ClinicLister, logger *slog.Logger) []directory.ClinicListItem {
	clinics, err := lister.FetchClinicList(ctx)
	if err != nil {
		logger.Warn("mapping.fetch_failed", "fallback", true, "err", err)
		return FallbackClinics
	}
	if len(clinics) == 0 {
		logger.Warn("mapping.fetch_empty", "fallback", true)
		return FallbackClinics
	}

	logger.Info("mapping.fetched", "clinics", len(clinics))
	return clinics
}

func Build(clinics []directory.ClinicListItem) Table {
	t := make(Table, len(clinics))
	for _, c := range clinics {
		if c.Slug == "" {
			continue
		}
		t[c.Slug] = directory.NormalizeBaseURL(c.TenantDomain)
	}
	return t
}

// Routes lists the public pages of every clinic, catalog first.
func Routes(clinics []directory.ClinicListItem) []string {
	routes := []string{"/"}
	for _, c := range clinics {
		if c.Slug == "" {
			continue
		}
		routes = append(routes, "/"+c.Slug, "/"+c.Slug+"/appointment")
	}
	return routes
}

func Encode(t Table) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

func Decode(b []byte) (Table, error) {
	var t Table
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("mapping: decode: %w", err)
	}
	if t == nil {
		t = Table{}
	}
	return t, nil
}

func WriteFile(path string, t Table) error {
	b, err := Encode(t)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mapping: create dir: %w", err)
		}
	}
	return os.WriteFile(path, b, 0o644)
}

// ReadFile returns an empty table when the file does not exist.
func ReadFile(path string) (Table, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mapping: read %s: %w", path, err)
	}
	return Decode(b)
}

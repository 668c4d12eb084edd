package mapping

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/BruksfildServices01/vetcard/internal/directory"
)

type stubLister struct {
	items []directory.ClinicListItem
	err   error
}

func (s stubLister) FetchClinicList(context.Context) ([]directory.ClinicListItem, error) {
	return s.items, s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetch_FallsBack(t *testing.T) {
	ctx := context.Background()

	got := Fetch(ctx, stubLister{err: errors.New("boom")}, quietLogger())
	if len(got) != 1 || got[0].Slug != "my-clinic" {
		t.Fatalf("expected fallback clinics on error, got %+v", got)
	}

	got = Fetch(ctx, stubLister{}, quietLogger())
	if len(got) != 1 || got[0].Slug != "my-clinic" {
		t.Fatalf("expected fallback clinics on empty list, got %+v", got)
	}

	items := []directory.ClinicListItem{{Slug: "a", TenantDomain: "a.example.com"}}
	got = Fetch(ctx, stubLister{items: items}, quietLogger())
	if len(got) != 1 || got[0].Slug != "a" {
		t.Fatalf("expected fetched clinics, got %+v", got)
	}
}

func TestBuildAndRoutes(t *testing.T) {
	clinics := []directory.ClinicListItem{
		{Slug: "a", TenantDomain: "a.example.com"},
		{Slug: "b", TenantDomain: "http://b.local:8000"},
		{Slug: "", TenantDomain: "ignored.example.com"},
	}

	table := Build(clinics)
	if len(table) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(table))
	}
	if table["a"] != "https://a.example.com" {
		t.Fatalf("expected https prefix, got %s", table["a"])
	}
	if table["b"] != "http://b.local:8000" {
		t.Fatalf("expected explicit scheme kept, got %s", table["b"])
	}

	routes := Routes(clinics)
	want := []string{"/", "/a", "/a/appointment", "/b", "/b/appointment"}
	if len(routes) != len(want) {
		t.Fatalf("expected %d routes, got %v", len(want), routes)
	}
	for i := range want {
		if routes[i] != want[i] {
			t.Fatalf("route %d: expected %s, got %s", i, want[i], routes[i])
		}
	}
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "clinic_mapping.json")

	missing, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile on missing file failed: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("expected empty table, got %v", missing)
	}

	if err := WriteFile(path, Table{"a": "https://a.example.com"}); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if got["a"] != "https://a.example.com" {
		t.Fatalf("unexpected table: %v", got)
	}
}

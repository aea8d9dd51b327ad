// Package ioseed fills lookup tables with default entries taken from
// a YAML document. Entry IDs are UUID v5 of the taxonomy and the name,
// so seeding different databases gives the same IDs and reruns are
// harmless.
package ioseed

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/gnames/gnuuid"
	"github.com/gnames/retroshelf/pkg/db"
	"github.com/gnames/retroshelf/pkg/schema"
	"github.com/gnames/retroshelf/pkg/shelf"
	"github.com/gnames/retroshelf/pkg/templates"
	"gopkg.in/yaml.v3"
)

// Taxonomies is the content of a taxonomies YAML file.
type Taxonomies struct {
	Systems        []string `yaml:"systems"`
	Categories     []string `yaml:"categories"`
	Regions        []string `yaml:"regions"`
	Authenticities []string `yaml:"authenticities"`
}

func (t Taxonomies) names(tx schema.Taxonomy) []string {
	switch tx {
	case schema.System:
		return t.Systems
	case schema.Category:
		return t.Categories
	case schema.Region:
		return t.Regions
	case schema.Authenticity:
		return t.Authenticities
	default:
		return nil
	}
}

type seeder struct {
	operator db.Operator
	data     Taxonomies
}

// New creates a Seeder for the given taxonomies.
func New(op db.Operator, data Taxonomies) shelf.Seeder {
	return &seeder{operator: op, data: data}
}

// Default returns the taxonomies embedded into the program.
func Default() (Taxonomies, error) {
	return parse([]byte(templates.TaxonomiesYAML), "embedded taxonomies.yaml")
}

// Load reads taxonomies from a YAML file.
func Load(path string) (Taxonomies, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Taxonomies{}, ReadError(path, err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (Taxonomies, error) {
	var res Taxonomies
	if err := yaml.Unmarshal(data, &res); err != nil {
		return res, ReadError(source, err)
	}
	return res, nil
}

// EntryID returns the deterministic ID of a seeded entry.
func EntryID(tx schema.Taxonomy, name string) string {
	return gnuuid.New(tx.String() + ":" + name).String()
}

// Seed inserts missing entries in one transaction.
func (s *seeder) Seed(ctx context.Context) (int, error) {
	sqlDB := s.operator.DB()
	if sqlDB == nil {
		return 0, NotConnectedError()
	}

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, InsertError("begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	var total int
	for _, t := range schema.Taxonomies {
		q := "INSERT OR IGNORE INTO " + t.Table() + " (id, name) VALUES (?, ?)"
		for _, name := range s.data.names(t) {
			name = gnlib.FixUtf8(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			res, err := tx.ExecContext(ctx, q, EntryID(t, name), name)
			if err != nil {
				return 0, InsertError(t.String(), err)
			}
			if n, err := res.RowsAffected(); err == nil {
				total += int(n)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, InsertError("commit", err)
	}

	slog.Info("Seeded taxonomies", "inserted", total)
	return total, nil
}

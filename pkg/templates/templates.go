// Package templates provides embedded YAML templates.
package templates

import _ "embed"

// ConfigYAML contains the default config.yaml template for application configuration.
//
//go:embed config.yaml
var ConfigYAML string

// TaxonomiesYAML contains default entries for systems, categories, regions
// and authenticity grades.
//
//go:embed taxonomies.yaml
var TaxonomiesYAML string

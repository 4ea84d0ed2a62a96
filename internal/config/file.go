package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nao1215/brokerseo/internal/filter"
	"github.com/nao1215/brokerseo/internal/model"
)

// ServerFile is the "server" section of the configuration file.
type ServerFile struct {
	// Addr overrides the listen address.
	Addr string `yaml:"addr,omitempty"`

	// CORSOrigins lists allowed browser origins.
	CORSOrigins []string `yaml:"corsOrigins,omitempty"`
}

// File represents the structure of the .brokerseo configuration file.
// Every field is optional; empty values keep the current setting.
type File struct {
	BaseURL         string     `yaml:"baseURL,omitempty"`
	Catalog         string     `yaml:"catalog,omitempty"`
	Pages           string     `yaml:"pages,omitempty"`
	Sort            string     `yaml:"sort,omitempty"`
	Order           string     `yaml:"order,omitempty"`
	UnknownLeverage string     `yaml:"unknownLeverage,omitempty"`
	Storage         string     `yaml:"storage,omitempty"`
	DataDir         string     `yaml:"dataDir,omitempty"`
	BatchSize       int        `yaml:"batchSize,omitempty"`
	Server          ServerFile `yaml:"server,omitempty"`
}

// Apply copies the non-empty values of f into c.
// Relative catalog and pages paths are resolved against baseDir, the
// directory that holds the configuration file.
func (f *File) Apply(c *Config, baseDir string) error {
	if f.BaseURL != "" {
		c.BaseURL = strings.TrimRight(f.BaseURL, "/")
	}
	if f.Catalog != "" {
		c.CatalogPath = resolve(baseDir, f.Catalog)
	}
	if f.Pages != "" {
		c.PagesPath = resolve(baseDir, f.Pages)
	}
	if f.Sort != "" {
		k, err := model.ParseSortKey(f.Sort)
		if err != nil {
			return fmt.Errorf("config sort: %w", err)
		}
		c.Sort.Key = k
	}
	if f.Order != "" {
		o, err := model.ParseSortOrder(f.Order)
		if err != nil {
			return fmt.Errorf("config order: %w", err)
		}
		c.Sort.Order = o
	}
	if f.UnknownLeverage != "" {
		p, err := filter.ParsePolicy(f.UnknownLeverage)
		if err != nil {
			return fmt.Errorf("config unknownLeverage: %w", err)
		}
		c.UnknownLeverage = p
	}
	if f.Storage != "" {
		c.Storage = strings.ToLower(f.Storage)
	}
	if f.DataDir != "" {
		c.DataDir = resolve(baseDir, f.DataDir)
	}
	if f.BatchSize != 0 {
		c.BatchSize = f.BatchSize
	}
	if f.Server.Addr != "" {
		c.Addr = f.Server.Addr
	}
	if len(f.Server.CORSOrigins) > 0 {
		c.CORSOrigins = f.Server.CORSOrigins
	}
	return nil
}

func resolve(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, p)
}

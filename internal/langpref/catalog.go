package langpref

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Language pairs an ISO language code with a display name.
type Language struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// Catalog is the ordered set of languages the platform ships translations
// for, plus per-locale translations of their display names. Loaded once at
// startup from a YAML file and never mutated.
type Catalog struct {
	Languages    []Language                   `yaml:"languages"`
	Translations map[string]map[string]string `yaml:"translations"`
}

// LoadCatalog reads the language catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read language catalog: %w", err)
	}
	var catalog Catalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("parse language catalog %s: %w", path, err)
	}
	if len(catalog.Languages) == 0 {
		return nil, fmt.Errorf("language catalog %s lists no languages", path)
	}
	for i, lang := range catalog.Languages {
		if lang.Code == "" || lang.Name == "" {
			return nil, fmt.Errorf("language catalog %s: entry %d needs both code and name", path, i)
		}
	}
	return &catalog, nil
}

// DisplayName returns the display name of code translated into locale,
// falling back to the catalog name when no translation exists.
func (c *Catalog) DisplayName(code, locale string) string {
	name := ""
	for _, lang := range c.Languages {
		if lang.Code == code {
			name = lang.Name
			break
		}
	}
	if byCode, ok := c.Translations[locale]; ok {
		if translated, ok := byCode[code]; ok {
			return translated
		}
	}
	return name
}

// Contains reports whether code is in the catalog.
func (c *Catalog) Contains(code string) bool {
	for _, lang := range c.Languages {
		if lang.Code == code {
			return true
		}
	}
	return false
}

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"school-placement/internal/domain"
)

// LoadCatalog lee el catálogo de programas desde YAML. Sin path devuelve el catálogo por defecto.
func LoadCatalog(path string) (domain.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return domain.DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodifica el YAML y normaliza los códigos a mayúsculas.
func ParseCatalog(data []byte) (domain.Catalog, error) {
	var catalog domain.Catalog
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return domain.Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	for i := range catalog.Programs {
		catalog.Programs[i].Code = strings.ToUpper(strings.TrimSpace(catalog.Programs[i].Code))
	}
	return catalog, nil
}

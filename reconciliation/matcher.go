package reconciliation

import (
	"strings"

	"carnes-boutique/models"
)

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FindMenuItem resolves a distributor's item name against the catalog.
// It tries exact (case-insensitive) equality over the whole catalog first, then
// substring containment in either direction. The first item hit in catalog order
// wins, so overlapping names such as "costilla" and "costilla baby back" resolve
// to whichever comes first.
func FindMenuItem(items []models.CatalogItem, reportedName string) (models.CatalogItem, bool) {
	name := normalizeName(reportedName)
	if name == "" {
		return models.CatalogItem{}, false
	}

	for _, item := range items {
		if normalizeName(item.Name) == name {
			return item, true
		}
	}

	for _, item := range items {
		candidate := normalizeName(item.Name)
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, name) || strings.Contains(name, candidate) {
			return item, true
		}
	}

	return models.CatalogItem{}, false
}

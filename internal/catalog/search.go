package catalog

import (
	"strings"

	"markethub_front_end/internal/models"
)

// Search filtre par sous-chaîne, sans tenir compte de la casse, sur le nom
// et la catégorie. Un terme vide retourne tout le catalogue.
func Search(products []models.Product, term string) []models.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products
	}
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Category), term) {
			out = append(out, p)
		}
	}
	return out
}

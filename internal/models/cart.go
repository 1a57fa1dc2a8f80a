package models

// MaxQuantity plafonne la quantité d'une ligne. Les tags `lte=999` des
// handlers et de CartItem reprennent cette valeur.
const MaxQuantity = 999

// CartItem est une ligne du panier local : un produit et sa quantité.
// La quantité n'est jamais persistée ni affichée sous 1 ni au-dessus de MaxQuantity.
type CartItem struct {
	ID            string   `json:"id" validate:"required"`
	Name          string   `json:"name"`
	Price         float64  `json:"price" validate:"gte=0"`
	DiscountPrice *float64 `json:"discountPrice,omitempty" validate:"omitempty,gte=0"`
	Image         string   `json:"image"`
	Quantity      int      `json:"quantity" validate:"gte=1,lte=999"`
}

// UnitPrice retourne le prix remisé s'il existe, sinon le prix catalogue
func (i CartItem) UnitPrice() float64 {
	if i.DiscountPrice != nil && *i.DiscountPrice > 0 {
		return *i.DiscountPrice
	}
	return i.Price
}

func (i CartItem) Subtotal() float64 {
	return i.UnitPrice() * float64(i.Quantity)
}

// CartSummary est la vue du panier renvoyée aux clients HTTP et websocket
type CartSummary struct {
	Items      []CartItem `json:"items"`
	Total      float64    `json:"total"`
	Count      int        `json:"count"`
	TotalItems int        `json:"totalItems"`
}

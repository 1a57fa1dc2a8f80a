package models

const (
	StockStatusInStock    = "In Stock"
	StockStatusOutOfStock = "Out of Stock"
)

type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	DiscountPrice   *float64 `json:"discountPrice,omitempty"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription"`
	Images          []string `json:"images"`
	Category        string   `json:"category"`
	Vendor          string   `json:"vendorName"`
	Stock           int      `json:"stock"`
}

// EffectivePrice applique la remise quand elle est renseignée
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 {
		return *p.DiscountPrice
	}
	return p.Price
}

func (p Product) StockStatus() string {
	if p.Stock > 0 {
		return StockStatusInStock
	}
	return StockStatusOutOfStock
}

// MainImage retourne la première image de la galerie ou ""
func (p Product) MainImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// CartItem convertit le produit en ligne de panier
func (p Product) CartItem(quantity int) CartItem {
	item := CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.MainImage(),
		Quantity: quantity,
	}
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 {
		d := *p.DiscountPrice
		item.DiscountPrice = &d
	}
	return item
}

func (p Product) WishlistItem() WishlistItem {
	return WishlistItem{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.EffectivePrice(),
		Image: p.MainImage(),
	}
}

package catalog

import "github.com/yashd04xyz/LC-web/internal/domain"

// DefaultProducts is the minimal launch catalog matching the storefront.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Blush Evening Dress", Category: "dresses", Size: "M", Color: "pink", Occasion: "evening", Price: 2799, Image: "images/eveningdress.jpg", Description: "A flowing blush dress with gentle pleats and a flattering waist."},
		{ID: "p2", Name: "Classic Black Dress", Category: "dresses", Size: "S", Color: "black", Occasion: "evening", Price: 3499, Image: "images/red.jpg", Description: "Timeless black dress with refined neckline and tailored fit."},
		{ID: "p3", Name: "White Silk Blouse", Category: "tops", Size: "L", Color: "white", Occasion: "work", Price: 1299, Image: "images/white.jpg", Description: "Soft silk blend blouse with subtle sheen and buttoned cuffs."},
		{ID: "p4", Name: "Lavender Peplum Top", Category: "tops", Size: "M", Color: "lavender", Occasion: "casual", Price: 999, Image: "images/pink.jpg", Description: "Playful peplum silhouette with soft stretch fabric."},
		{ID: "p5", Name: "Gold Festive Kurta Set", Category: "ethnic", Size: "XL", Color: "gold", Occasion: "festive", Price: 2999, Image: "images/or.jpg", Description: "Minimal tote with gold accents and roomy interior."},
		{ID: "p7", Name: "Blush Sheen Scarf", Category: "accessories", Size: "NA", Color: "pink", Occasion: "casual", Price: 599, Image: "images/pink.jpg", Description: "Lightweight scarf with soft finish and elegant drape."},
	}
}

package domain

type Product struct {
	ID          string  `bson:"_id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Category    string  `bson:"category" json:"category"`
	Size        string  `bson:"size" json:"size"`
	Color       string  `bson:"color" json:"color"`
	Occasion    string  `bson:"occasion" json:"occasion"`
	Price       float64 `bson:"price" json:"price"`
	Image       string  `bson:"img" json:"img"`
	Description string  `bson:"desc" json:"desc"`
}

// ProductFilter narrows a catalog listing. Zero values and the literal
// "all" mean no constraint on that field.
type ProductFilter struct {
	Category string
	Size     string
	Color    string
	Occasion string
	MaxPrice float64
	Search   string
}

func (f ProductFilter) wants(field, value string) bool {
	return field == "" || field == "all" || field == value
}

// Matches applies the filter to a single product. Search-term matching
// on name and description happens in the repository, not here.
func (f ProductFilter) Matches(p Product) bool {
	if !f.wants(f.Category, p.Category) {
		return false
	}
	if !f.wants(f.Size, p.Size) && p.Size != "all" && p.Size != "NA" {
		return false
	}
	if !f.wants(f.Color, p.Color) {
		return false
	}
	if !f.wants(f.Occasion, p.Occasion) {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	return true
}

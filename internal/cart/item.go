package cart

import "github.com/google/uuid"

// Item is a single line in the cart: one product at a given size/modifier
// configuration with a quantity. Two items with the same merge key
// (product, size, dough, crust) are the same line; the ID only
// distinguishes snapshots of the same product added at different times.
type Item struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
	Dough     string  `json:"dough,omitempty"`
	Crust     string  `json:"crust,omitempty"`
	Extras    []Extra `json:"extras,omitempty"`
	Note      string  `json:"note,omitempty"`
}

// Extra is an add-on applied to a line item (extra cheese, dips, ...).
// Its price is informational: the line's unit Price already includes
// all modifier surcharges.
type Extra struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ItemInput is the item data supplied by the caller when adding to the
// cart. It carries no identity; the engine mints one if a new line is
// created.
type ItemInput struct {
	ProductID string
	Name      string
	Size      string
	Price     float64
	Quantity  int
	Image     string
	Dough     string
	Crust     string
	Extras    []Extra
	Note      string
}

// ItemPatch is a partial update applied to an existing line. Nil fields
// are left untouched. Patching size/dough/crust deliberately does not
// re-evaluate the merge key against other lines.
type ItemPatch struct {
	Name   *string
	Size   *string
	Price  *float64
	Image  *string
	Dough  *string
	Crust  *string
	Extras *[]Extra
	Note   *string
}

// sameLine reports whether a new input belongs to an existing line.
// Comparison is exact and case-sensitive; identity is never consulted.
func sameLine(it Item, in ItemInput) bool {
	return it.ProductID == in.ProductID &&
		it.Size == in.Size &&
		it.Dough == in.Dough &&
		it.Crust == in.Crust
}

func newItem(in ItemInput) Item {
	return Item{
		ID:        uuid.NewString(),
		ProductID: in.ProductID,
		Name:      in.Name,
		Size:      in.Size,
		Price:     in.Price,
		Quantity:  in.Quantity,
		Image:     in.Image,
		Dough:     in.Dough,
		Crust:     in.Crust,
		Extras:    in.Extras,
		Note:      in.Note,
	}
}

func (p ItemPatch) apply(it Item) Item {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Size != nil {
		it.Size = *p.Size
	}
	if p.Price != nil {
		it.Price = *p.Price
	}
	if p.Image != nil {
		it.Image = *p.Image
	}
	if p.Dough != nil {
		it.Dough = *p.Dough
	}
	if p.Crust != nil {
		it.Crust = *p.Crust
	}
	if p.Extras != nil {
		it.Extras = *p.Extras
	}
	if p.Note != nil {
		it.Note = *p.Note
	}
	return it
}

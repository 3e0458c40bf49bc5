package domain

// ItemKind identifica el tipo de artículo con stock: materia prima o producto terminado.
type ItemKind string

const (
	ItemMaterial ItemKind = "material"
	ItemProduct  ItemKind = "product"
)

// Valid indica si el tipo es conocido.
func (k ItemKind) Valid() bool {
	return k == ItemMaterial || k == ItemProduct
}

// ItemRef referencia un artículo con stock (tipo + ID).
type ItemRef struct {
	Kind ItemKind
	ID   string
}

// MaterialRef construye la referencia a una materia prima.
func MaterialRef(id string) ItemRef { return ItemRef{Kind: ItemMaterial, ID: id} }

// ProductRef construye la referencia a un producto terminado.
func ProductRef(id string) ItemRef { return ItemRef{Kind: ItemProduct, ID: id} }

// Field devuelve el nombre del campo de entrada asociado (material_id / product_id).
func (r ItemRef) Field() string {
	return string(r.Kind) + "_id"
}

package filter

// Op tags a predicate node.
type Op int

const (
	OpAnd Op = iota
	OpOr
	OpEquals
	OpNotEquals
	OpContains
	OpRange
	OpIn
	OpNotNull
)

// Field names understood by the store adapter. Relation fields
// (category.name etc.) are translated into subqueries by the adapter.
const (
	FieldPublished          = "is_published"
	FieldStatus             = "status"
	FieldSalePrice          = "sale_price"
	FieldRegularPrice       = "regular_price"
	FieldStock              = "stock_quantity"
	FieldVariantStock       = "variants.stock_quantity"
	FieldParentCategoryID   = "parent_category_id"
	FieldTitle              = "title"
	FieldSKU                = "sku"
	FieldDescription        = "description"
	FieldBrand              = "brand_name"
	FieldSizeType           = "size_type"
	FieldCategoryName       = "category.name"
	FieldSubCategoryName    = "sub_category.name"
	FieldParentCategoryName = "parent_category.name"
	FieldCreatedAt          = "created_at"
	FieldID                 = "id"
)

// Predicate is a transient filter tree built fresh per request.
// Leaf nodes carry Field plus the operand matching their Op; And/Or nodes
// carry Children only.
type Predicate struct {
	Op       Op
	Field    string
	Value    interface{}
	Min, Max *float64
	Values   []string
	Children []Predicate
}

func And(children ...Predicate) Predicate {
	return Predicate{Op: OpAnd, Children: children}
}

func Or(children ...Predicate) Predicate {
	return Predicate{Op: OpOr, Children: children}
}

func Equals(field string, value interface{}) Predicate {
	return Predicate{Op: OpEquals, Field: field, Value: value}
}

func NotEquals(field string, value interface{}) Predicate {
	return Predicate{Op: OpNotEquals, Field: field, Value: value}
}

// Contains matches a case-sensitive substring.
func Contains(field, term string) Predicate {
	return Predicate{Op: OpContains, Field: field, Value: term}
}

// Range matches field between min and max, both inclusive; either bound may
// be nil.
func Range(field string, min, max *float64) Predicate {
	return Predicate{Op: OpRange, Field: field, Min: min, Max: max}
}

func In(field string, values []string) Predicate {
	return Predicate{Op: OpIn, Field: field, Values: values}
}

func NotNull(field string) Predicate {
	return Predicate{Op: OpNotNull, Field: field}
}

// SortSpec is the order clause for a catalog query.
type SortSpec struct {
	Field string
	Desc  bool
}

package catalog

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"storefront.GO/catalog/filter"
	catalogEntity "storefront.GO/model/entity/catalog"
)

// ProductRepository executes predicate-filtered catalog queries.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindPage returns one page of products matching pred, with category and
// variant associations eagerly loaded.
func (r *ProductRepository) FindPage(ctx context.Context, pred filter.Predicate, sort filter.SortSpec, skip, take int) ([]catalogEntity.Product, error) {
	sql, args, err := translate(pred)
	if err != nil {
		return nil, err
	}
	order, err := orderClause(sort)
	if err != nil {
		return nil, err
	}
	var products []catalogEntity.Product
	q := r.db.WithContext(ctx).
		Preload("Category").
		Preload("SubCategory").
		Preload("ParentCategory").
		Preload("Variants").
		Where(sql, args...).
		Order(order).
		Offset(skip).
		Limit(take)
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Count returns the total number of products matching pred.
func (r *ProductRepository) Count(ctx context.Context, pred filter.Predicate) (int64, error) {
	sql, args, err := translate(pred)
	if err != nil {
		return 0, err
	}
	var total int64
	err = r.db.WithContext(ctx).
		Model(&catalogEntity.Product{}).
		Where(sql, args...).
		Count(&total).Error
	return total, err
}

// plainColumns are product table columns a predicate leaf may reference
// directly. Anything else must be one of the relation fields handled in
// translate.
var plainColumns = map[string]bool{
	filter.FieldPublished:        true,
	filter.FieldStatus:           true,
	filter.FieldSalePrice:        true,
	filter.FieldRegularPrice:     true,
	filter.FieldStock:            true,
	filter.FieldParentCategoryID: true,
	filter.FieldTitle:            true,
	filter.FieldSKU:              true,
	filter.FieldDescription:      true,
	filter.FieldBrand:            true,
	filter.FieldSizeType:         true,
	filter.FieldCreatedAt:        true,
	filter.FieldID:               true,
}

// categoryNameColumns maps relation name fields to the FK column the
// subquery constrains.
var categoryNameColumns = map[string]string{
	filter.FieldCategoryName:       "category_id",
	filter.FieldSubCategoryName:    "sub_category_id",
	filter.FieldParentCategoryName: "parent_category_id",
}

// translate renders a predicate tree into a parameterized SQL fragment.
// Field names are validated against the known column sets; an unknown field
// is a programming error and is rejected rather than interpolated.
func translate(p filter.Predicate) (string, []interface{}, error) {
	switch p.Op {
	case filter.OpAnd, filter.OpOr:
		return translateGroup(p)
	case filter.OpEquals, filter.OpNotEquals:
		return translateEquality(p)
	case filter.OpContains:
		col, err := column(p.Field)
		if err != nil {
			return "", nil, err
		}
		return col + " LIKE ?", []interface{}{"%" + fmt.Sprint(p.Value) + "%"}, nil
	case filter.OpRange:
		return translateRange(p)
	case filter.OpIn:
		col, err := column(p.Field)
		if err != nil {
			return "", nil, err
		}
		return col + " IN ?", []interface{}{p.Values}, nil
	case filter.OpNotNull:
		col, err := column(p.Field)
		if err != nil {
			return "", nil, err
		}
		return col + " IS NOT NULL", nil, nil
	default:
		return "", nil, fmt.Errorf("catalog: unknown predicate op %d", p.Op)
	}
}

func translateGroup(p filter.Predicate) (string, []interface{}, error) {
	if len(p.Children) == 0 {
		// An empty group matches everything.
		return "1 = 1", nil, nil
	}
	sep := " AND "
	if p.Op == filter.OpOr {
		sep = " OR "
	}
	parts := make([]string, 0, len(p.Children))
	var args []interface{}
	for _, child := range p.Children {
		sql, childArgs, err := translate(child)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, "("+sql+")")
		args = append(args, childArgs...)
	}
	return strings.Join(parts, sep), args, nil
}

func translateEquality(p filter.Predicate) (string, []interface{}, error) {
	op := "="
	if p.Op == filter.OpNotEquals {
		op = "<>"
	}
	if fk, ok := categoryNameColumns[p.Field]; ok {
		// Negation excludes the named category rather than matching any
		// differently named one.
		in := "IN"
		if p.Op == filter.OpNotEquals {
			in = "NOT IN"
		}
		sql := fmt.Sprintf("%s %s (SELECT id FROM categories WHERE name = ?)", fk, in)
		return sql, []interface{}{p.Value}, nil
	}
	col, err := column(p.Field)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%s %s ?", col, op), []interface{}{p.Value}, nil
}

func translateRange(p filter.Predicate) (string, []interface{}, error) {
	if p.Field == filter.FieldVariantStock {
		return variantStockExists(p)
	}
	col, err := column(p.Field)
	if err != nil {
		return "", nil, err
	}
	var parts []string
	var args []interface{}
	if p.Min != nil {
		parts = append(parts, col+" >= ?")
		args = append(args, *p.Min)
	}
	if p.Max != nil {
		parts = append(parts, col+" <= ?")
		args = append(args, *p.Max)
	}
	if len(parts) == 0 {
		return "1 = 1", nil, nil
	}
	return strings.Join(parts, " AND "), args, nil
}

func variantStockExists(p filter.Predicate) (string, []interface{}, error) {
	conds := []string{"product_variants.product_id = products.id"}
	var args []interface{}
	if p.Min != nil {
		conds = append(conds, "product_variants.stock_quantity >= ?")
		args = append(args, *p.Min)
	}
	if p.Max != nil {
		conds = append(conds, "product_variants.stock_quantity <= ?")
		args = append(args, *p.Max)
	}
	sql := "EXISTS (SELECT 1 FROM product_variants WHERE " + strings.Join(conds, " AND ") + ")"
	return sql, args, nil
}

func column(field string) (string, error) {
	if !plainColumns[field] {
		return "", fmt.Errorf("catalog: field %q not filterable", field)
	}
	return field, nil
}

// orderClause renders a sort spec. Sortable columns are the plain column set.
func orderClause(s filter.SortSpec) (string, error) {
	field := s.Field
	if field == "" {
		field = filter.FieldCreatedAt
	}
	if !plainColumns[field] {
		return "", fmt.Errorf("catalog: field %q not sortable", field)
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return field + " " + dir, nil
}

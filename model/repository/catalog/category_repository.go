package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	catalogEntity "storefront.GO/model/entity/catalog"
)

// CategoryRepository reads and writes the category tree.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// FindTopLevelByNames returns the first top-level category whose name equals
// any of the given literal spellings, or (nil, nil) when none exists.
// Name matching is case-sensitive; callers enumerate accepted casings.
func (r *CategoryRepository) FindTopLevelByNames(ctx context.Context, names []string) (*catalogEntity.Category, error) {
	var cat catalogEntity.Category
	err := r.db.WithContext(ctx).
		Where("parent_id IS NULL AND name IN ?", names).
		First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// FindByID returns a category by primary key.
func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*catalogEntity.Category, error) {
	var cat catalogEntity.Category
	if err := r.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// UpsertByNameAndParent creates the category unless one with the same name
// and parent already exists. Reports whether a row was created. Used by
// marketplace category sync.
func (r *CategoryRepository) UpsertByNameAndParent(ctx context.Context, name string, parentID *uint) (*catalogEntity.Category, bool, error) {
	var cat catalogEntity.Category
	q := r.db.WithContext(ctx).Where("name = ?", name)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	err := q.First(&cat).Error
	if err == nil {
		return &cat, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	cat = catalogEntity.Category{Name: name, ParentID: parentID}
	if err := r.db.WithContext(ctx).Create(&cat).Error; err != nil {
		return nil, false, err
	}
	return &cat, true, nil
}

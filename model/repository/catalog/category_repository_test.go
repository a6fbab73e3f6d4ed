package catalog

import (
	"context"
	"testing"

	catalogEntity "storefront.GO/model/entity/catalog"
)

func TestFindTopLevelByNames(t *testing.T) {
	db := catalogTestDB(t)
	womens := catalogEntity.Category{Name: "Womens"}
	if err := db.Create(&womens).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	// A nested category with a matching name must not be picked up.
	nested := catalogEntity.Category{Name: "Women", ParentID: &womens.ID}
	if err := db.Create(&nested).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	repo := NewCategoryRepository(db)

	cat, err := repo.FindTopLevelByNames(context.Background(), []string{"women", "Womens"})
	if err != nil {
		t.Fatalf("FindTopLevelByNames: %v", err)
	}
	if cat == nil || cat.ID != womens.ID {
		t.Fatalf("cat = %+v, want the top-level Womens", cat)
	}

	cat, err = repo.FindTopLevelByNames(context.Background(), []string{"mens", "Mens"})
	if err != nil {
		t.Fatalf("FindTopLevelByNames: %v", err)
	}
	if cat != nil {
		t.Fatalf("cat = %+v, want nil for no match", cat)
	}
}

func TestUpsertByNameAndParent(t *testing.T) {
	db := catalogTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	parent, created, err := repo.UpsertByNameAndParent(ctx, "Womens", nil)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !created {
		t.Error("first upsert should create")
	}

	again, created, err := repo.UpsertByNameAndParent(ctx, "Womens", nil)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if created {
		t.Error("second upsert should not create")
	}
	if again.ID != parent.ID {
		t.Errorf("IDs differ: %d vs %d", again.ID, parent.ID)
	}

	// Same name under a parent is a distinct node.
	child, created, err := repo.UpsertByNameAndParent(ctx, "Womens", &parent.ID)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !created {
		t.Error("child upsert should create")
	}
	if child.ID == parent.ID {
		t.Error("child must not reuse the parent row")
	}

	got, err := repo.FindByID(ctx, child.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.ParentID == nil || *got.ParentID != parent.ID {
		t.Errorf("ParentID = %v, want %d", got.ParentID, parent.ID)
	}
}

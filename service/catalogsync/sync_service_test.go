package catalogsync

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"storefront.GO/marketplace"
	catalogEntity "storefront.GO/model/entity/catalog"
)

type fakeSource struct {
	name string
	tree []marketplace.RemoteCategory
	err  error
}

func (f fakeSource) Name() string { return f.name }

func (f fakeSource) FetchCategoryTree(ctx context.Context) ([]marketplace.RemoteCategory, error) {
	return f.tree, f.err
}

func syncTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&catalogEntity.Category{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSyncCategories(t *testing.T) {
	db := syncTestDB(t)
	src := fakeSource{
		name: "testmarket",
		tree: []marketplace.RemoteCategory{
			{Name: "Womens", Children: []marketplace.RemoteCategory{
				{Name: "Dresses"},
				{Name: "Tops"},
			}},
			{Name: "Mens", Children: []marketplace.RemoteCategory{
				{Name: "Shoes"},
			}},
		},
	}

	res, err := SyncCategories(context.Background(), db, src)
	if err != nil {
		t.Fatalf("SyncCategories: %v", err)
	}
	if res.Marketplace != "testmarket" {
		t.Errorf("Marketplace = %q", res.Marketplace)
	}
	if res.Seen != 5 || res.Created != 5 {
		t.Errorf("seen/created = %d/%d, want 5/5", res.Seen, res.Created)
	}

	var womens catalogEntity.Category
	if err := db.Where("name = ? AND parent_id IS NULL", "Womens").First(&womens).Error; err != nil {
		t.Fatalf("Womens missing: %v", err)
	}
	var children int64
	db.Model(&catalogEntity.Category{}).Where("parent_id = ?", womens.ID).Count(&children)
	if children != 2 {
		t.Errorf("Womens children = %d, want 2", children)
	}

	// A second run sees the same tree but creates nothing.
	res, err = SyncCategories(context.Background(), db, src)
	if err != nil {
		t.Fatalf("SyncCategories rerun: %v", err)
	}
	if res.Seen != 5 || res.Created != 0 {
		t.Errorf("rerun seen/created = %d/%d, want 5/0", res.Seen, res.Created)
	}
}

func TestSyncCategoriesSkipsUnnamed(t *testing.T) {
	db := syncTestDB(t)
	src := fakeSource{
		name: "testmarket",
		tree: []marketplace.RemoteCategory{
			{Name: ""},
			{Name: "Womens", Children: []marketplace.RemoteCategory{{Name: ""}}},
		},
	}

	res, err := SyncCategories(context.Background(), db, src)
	if err != nil {
		t.Fatalf("SyncCategories: %v", err)
	}
	if res.Created != 1 {
		t.Errorf("Created = %d, want 1", res.Created)
	}
	if len(res.Warnings) != 2 {
		t.Errorf("Warnings = %v, want 2 entries", res.Warnings)
	}
}

func TestSyncCategoriesFetchError(t *testing.T) {
	db := syncTestDB(t)
	src := fakeSource{name: "testmarket", err: errors.New("upstream 500")}

	if _, err := SyncCategories(context.Background(), db, src); err == nil {
		t.Fatal("expected fetch error to propagate")
	}
	var count int64
	db.Model(&catalogEntity.Category{}).Count(&count)
	if count != 0 {
		t.Errorf("count = %d, want 0 after failed fetch", count)
	}
}

func TestConfiguredSources(t *testing.T) {
	for _, key := range []string{
		"EBAY_CLIENT_ID", "EBAY_CLIENT_SECRET",
		"WALMART_CLIENT_ID", "WALMART_CLIENT_SECRET",
		"SHEIN_OPEN_KEY_ID", "SHEIN_SECRET_KEY",
	} {
		t.Setenv(key, "")
	}
	if got := ConfiguredSources(); len(got) != 0 {
		t.Errorf("sources = %d, want 0 with no credentials", len(got))
	}

	t.Setenv("EBAY_CLIENT_ID", "id")
	t.Setenv("EBAY_CLIENT_SECRET", "secret")
	t.Setenv("SHEIN_OPEN_KEY_ID", "key")
	t.Setenv("SHEIN_SECRET_KEY", "secret")
	got := ConfiguredSources()
	if len(got) != 2 {
		t.Fatalf("sources = %d, want 2", len(got))
	}
	if got[0].Name() != "ebay" || got[1].Name() != "shein" {
		t.Errorf("sources = %s, %s", got[0].Name(), got[1].Name())
	}
}

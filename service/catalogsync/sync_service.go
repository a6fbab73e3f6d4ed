package catalogsync

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"storefront.GO/marketplace"
	"storefront.GO/marketplace/ebay"
	"storefront.GO/marketplace/shein"
	"storefront.GO/marketplace/walmart"
	catalogRepo "storefront.GO/model/repository/catalog"
)

// Result summarizes one sync run.
type Result struct {
	Marketplace string
	Created     int
	Seen        int
	Warnings    []string
	TotalTime   time.Duration
}

// SyncCategories upserts a marketplace category tree into the local
// categories table: top-level nodes become parent categories, children
// become sub-categories. Existing rows are matched by name and parent.
func SyncCategories(ctx context.Context, db *gorm.DB, source marketplace.CategorySource) (*Result, error) {
	start := time.Now()
	repo := catalogRepo.NewCategoryRepository(db)

	tree, err := source.FetchCategoryTree(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalogsync: fetch %s tree: %w", source.Name(), err)
	}

	res := &Result{Marketplace: source.Name()}
	for _, parent := range tree {
		if parent.Name == "" {
			res.Warnings = append(res.Warnings, "skipped unnamed top-level category")
			continue
		}
		res.Seen++
		p, created, err := repo.UpsertByNameAndParent(ctx, parent.Name, nil)
		if err != nil {
			return nil, err
		}
		if created {
			res.Created++
		}
		for _, child := range parent.Children {
			if child.Name == "" {
				res.Warnings = append(res.Warnings, "skipped unnamed child of "+parent.Name)
				continue
			}
			res.Seen++
			_, created, err := repo.UpsertByNameAndParent(ctx, child.Name, &p.ID)
			if err != nil {
				return nil, err
			}
			if created {
				res.Created++
			}
		}
	}
	res.TotalTime = time.Since(start)
	return res, nil
}

// ConfiguredSources builds clients for every marketplace whose credentials
// are present in the environment.
func ConfiguredSources() []marketplace.CategorySource {
	var out []marketplace.CategorySource
	if id, secret := os.Getenv("EBAY_CLIENT_ID"), os.Getenv("EBAY_CLIENT_SECRET"); id != "" && secret != "" {
		out = append(out, ebay.NewClient(id, secret))
	}
	if id, secret := os.Getenv("WALMART_CLIENT_ID"), os.Getenv("WALMART_CLIENT_SECRET"); id != "" && secret != "" {
		out = append(out, walmart.NewClient(id, secret))
	}
	if key, secret := os.Getenv("SHEIN_OPEN_KEY_ID"), os.Getenv("SHEIN_SECRET_KEY"); key != "" && secret != "" {
		out = append(out, shein.NewClient(key, secret))
	}
	return out
}

// SyncAll runs SyncCategories for every configured marketplace. Failures are
// logged per marketplace; one failing source does not stop the others.
func SyncAll(ctx context.Context, db *gorm.DB) []*Result {
	var results []*Result
	for _, src := range ConfiguredSources() {
		res, err := SyncCategories(ctx, db, src)
		if err != nil {
			log.Printf("category sync: %v", err)
			continue
		}
		log.Printf("category sync: %s seen=%d created=%d in %s",
			res.Marketplace, res.Seen, res.Created, res.TotalTime.Round(time.Millisecond))
		results = append(results, res)
	}
	return results
}

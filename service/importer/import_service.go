package importer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	catalogEntity "storefront.GO/model/entity/catalog"
	catalogRepo "storefront.GO/model/repository/catalog"
)

// Options tunes an import run.
type Options struct {
	// BatchSize rows per insert batch; defaults to 100.
	BatchSize int
	// DryRun parses and validates without writing.
	DryRun bool
}

// Result is the import report.
type Result struct {
	TotalRows int
	Created   int
	Updated   int
	Skipped   int
	Warnings  []string
	TotalTime time.Duration
}

// Expected CSV header. Order matters; a header row is required.
var header = []string{
	"sku", "title", "brand", "description", "regular_price", "sale_price",
	"stock_quantity", "size_type", "status", "published", "category", "image_url",
}

// ImportProducts reads a product CSV and upserts rows by SKU. The category
// column is a " > " path; missing tree nodes are created on the fly.
func ImportProducts(ctx context.Context, db *gorm.DB, r io.Reader, opts Options) (*Result, error) {
	start := time.Now()
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	first, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("importer: read header: %w", err)
	}
	if err := checkHeader(first); err != nil {
		return nil, err
	}

	categories := catalogRepo.NewCategoryRepository(db)
	res := &Result{}

	// New rows accumulate and are flushed in insert batches of BatchSize;
	// rows whose SKU already exists update in place immediately.
	var pending []*catalogEntity.Product
	pendingSKUs := map[string]bool{}
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		if err := db.WithContext(ctx).CreateInBatches(pending, opts.BatchSize).Error; err != nil {
			return fmt.Errorf("importer: insert batch: %w", err)
		}
		res.Created += len(pending)
		pending = nil
		pendingSKUs = map[string]bool{}
		return nil
	}

	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("importer: row %d: %w", rowNum, err)
		}
		rowNum++
		res.TotalRows++

		product, warn := parseRow(record)
		if warn != "" {
			res.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("row %d: %s", rowNum, warn))
			continue
		}

		if path := strings.TrimSpace(record[10]); path != "" && !opts.DryRun {
			if err := assignCategories(ctx, categories, product, path); err != nil {
				return nil, fmt.Errorf("importer: row %d: %w", rowNum, err)
			}
		}
		if opts.DryRun {
			continue
		}

		// A repeated SKU within one file must see its earlier row, so the
		// pending batch is flushed before the existence check.
		if pendingSKUs[product.SKU] {
			if err := flush(); err != nil {
				return nil, err
			}
		}

		var existing catalogEntity.Product
		err = db.WithContext(ctx).Where("sku = ?", product.SKU).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			pending = append(pending, product)
			pendingSKUs[product.SKU] = true
			if len(pending) >= opts.BatchSize {
				if err := flush(); err != nil {
					return nil, err
				}
			}
		case err != nil:
			return nil, fmt.Errorf("importer: row %d: %w", rowNum, err)
		default:
			product.ID = existing.ID
			if err := db.WithContext(ctx).Model(&existing).Updates(product).Error; err != nil {
				return nil, fmt.Errorf("importer: row %d: %w", rowNum, err)
			}
			res.Updated++
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	res.TotalTime = time.Since(start)
	return res, nil
}

func checkHeader(got []string) error {
	if len(got) != len(header) {
		return fmt.Errorf("importer: header has %d columns, want %d", len(got), len(header))
	}
	for i, want := range header {
		if strings.TrimSpace(strings.ToLower(got[i])) != want {
			return fmt.Errorf("importer: header column %d is %q, want %q", i+1, got[i], want)
		}
	}
	return nil
}

func parseRow(rec []string) (*catalogEntity.Product, string) {
	if len(rec) != len(header) {
		return nil, "wrong column count"
	}
	sku := strings.TrimSpace(rec[0])
	title := strings.TrimSpace(rec[1])
	if sku == "" || title == "" {
		return nil, "sku and title are required"
	}

	regular, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return nil, "invalid regular_price"
	}
	p := &catalogEntity.Product{
		SKU:          sku,
		Title:        title,
		BrandName:    strings.TrimSpace(rec[2]),
		Description:  rec[3],
		RegularPrice: regular,
		SizeType:     strings.TrimSpace(rec[7]),
		Status:       strings.TrimSpace(rec[8]),
		IsPublished:  strings.EqualFold(strings.TrimSpace(rec[9]), "true"),
	}
	if p.Status == "" {
		p.Status = catalogEntity.StatusDraft
	}
	if v := strings.TrimSpace(rec[5]); v != "" {
		sale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, "invalid sale_price"
		}
		p.SalePrice = &sale
	}
	if v := strings.TrimSpace(rec[6]); v != "" {
		qty, err := strconv.Atoi(v)
		if err != nil {
			return nil, "invalid stock_quantity"
		}
		p.StockQuantity = qty
	}
	if img := strings.TrimSpace(rec[11]); img != "" {
		raw, _ := json.Marshal([]string{img})
		p.Images = datatypes.JSON(raw)
	}
	return p, ""
}

// assignCategories resolves a " > " path into parent/sub/leaf category IDs,
// creating missing nodes.
func assignCategories(ctx context.Context, repo *catalogRepo.CategoryRepository, p *catalogEntity.Product, path string) error {
	var parentID *uint
	segs := strings.Split(path, " > ")
	ids := make([]*uint, 0, 3)
	for i, seg := range segs {
		if i >= 3 {
			break
		}
		name := strings.TrimSpace(seg)
		if name == "" {
			continue
		}
		cat, _, err := repo.UpsertByNameAndParent(ctx, name, parentID)
		if err != nil {
			return err
		}
		id := cat.ID
		ids = append(ids, &id)
		parentID = &id
	}
	if len(ids) > 0 {
		p.ParentCategoryID = ids[0]
	}
	if len(ids) > 1 {
		p.SubCategoryID = ids[1]
	}
	if len(ids) > 2 {
		p.CategoryID = ids[2]
	}
	return nil
}

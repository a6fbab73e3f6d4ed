package marketplace

import "context"

// RemoteCategory is one node of a marketplace category tree.
type RemoteCategory struct {
	Name     string
	Children []RemoteCategory
}

// CategorySource is a marketplace that can report its category tree.
// All three integrations (eBay, Walmart, Shein) implement it.
type CategorySource interface {
	// Name identifies the marketplace in logs and sync reports.
	Name() string
	// FetchCategoryTree pulls the top two levels of the remote tree.
	FetchCategoryTree(ctx context.Context) ([]RemoteCategory, error)
}

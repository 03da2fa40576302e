package domain

type ProductCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProductImage struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Product is a catalog entry as cached in the store. Prices stay strings,
// the way the store API reports them.
type Product struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Slug          string            `json:"slug"`
	Type          string            `json:"type"`
	Status        string            `json:"status"`
	SKU           string            `json:"sku"`
	Price         string            `json:"price"`
	RegularPrice  string            `json:"regular_price"`
	SalePrice     string            `json:"sale_price"`
	StockStatus   string            `json:"stock_status"`
	StockQuantity *int              `json:"stock_quantity"`
	Featured      bool              `json:"featured"`
	Categories    []ProductCategory `json:"categories"`
	Images        []ProductImage    `json:"images"`
}

// ProductList is the paging state of the product listing. RequestedPage
// moves on request; CurrentPage and ProductIDs only move on success, so the
// page on screen stays put while the next one loads.
type ProductList struct {
	RequestedPage int     `json:"requestedPage"`
	CurrentPage   int     `json:"currentPage"`
	TotalPages    int     `json:"totalPages"`
	TotalProducts int     `json:"totalProducts"`
	ProductIDs    []int64 `json:"productIds"`
}

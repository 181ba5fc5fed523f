package models

// Product represents one tracked perishable item.
//
// ExpiryDate, PurchaseDate and DateAdded are civil dates in YYYY-MM-DD form;
// LastModified is an RFC3339 timestamp. The JSON field names match the backup
// format produced by earlier versions of the application, so exported files
// remain importable.
type Product struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	ExpiryDate   string  `json:"expiryDate"`
	Category     string  `json:"category,omitempty"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Location     string  `json:"location,omitempty"`
	Barcode      string  `json:"barcode,omitempty"`
	Notes        string  `json:"notes,omitempty"`
	PurchaseDate string  `json:"purchaseDate,omitempty"`
	DateAdded    string  `json:"dateAdded,omitempty"`
	LastModified string  `json:"lastModified,omitempty"`
}

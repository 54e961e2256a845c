package model

// Product is a catalogue entry owned by one supplier. Stock is tracked only
// as a flag.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Name        string  `json:"name" gorm:"type:varchar(100);not null"`
	Price       float64 `json:"price" gorm:"not null"`
	Unit        string  `json:"unit" gorm:"type:varchar(20)"`
	Category    string  `json:"category" gorm:"type:varchar(50);index"`
	SupplierID  string  `json:"supplierId" gorm:"type:varchar(64);index;not null"`
	InStock     bool    `json:"inStock"`
	Icon        string  `json:"icon,omitempty" gorm:"type:varchar(16)"`
	Color       string  `json:"color,omitempty" gorm:"type:varchar(64)"`
	Description string  `json:"description,omitempty" gorm:"type:text"`
	MinQuantity int     `json:"minQuantity,omitempty"`
}

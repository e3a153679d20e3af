package categories

import "time"

// FixedCostsName is the category whose expenses count as monthly fixed costs.
const FixedCostsName = "Gastos fijos"

type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	AccountID string    `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"not null"`
	IsActive  bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type Subcategory struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	CategoryID string    `gorm:"type:uuid;index;not null"`
	Name       string    `gorm:"not null"`
	IsActive   bool      `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

type CategoryWithSubcategories struct {
	Category
	Subcategories []Subcategory
}

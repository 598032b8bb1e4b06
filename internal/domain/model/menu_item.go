package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryAppetizer  Category = "Appetizer"
	CategoryMainCourse Category = "Main Course"
	CategoryDessert    Category = "Dessert"
	CategoryBeverage   Category = "Beverage"
)

// Categories はメニューのカテゴリ一覧（表示順）。
var Categories = []Category{
	CategoryAppetizer,
	CategoryMainCourse,
	CategoryDessert,
	CategoryBeverage,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

const DefaultPreparationTime = 15

type MenuItem struct {
	ID              string          `gorm:"type:varchar(36);primaryKey" json:"_id"`
	Name            string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	Category        Category        `gorm:"type:varchar(20);not null;index" json:"category"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Ingredients     Ingredients     `gorm:"type:text;not null" json:"ingredients"`
	IsAvailable     bool            `gorm:"not null;index" json:"isAvailable"`
	PreparationTime int             `gorm:"not null" json:"preparationTime"`
	ImageURL        string          `gorm:"type:text;not null" json:"imageUrl"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime;index" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// Ingredients はJSON文字列として1カラムに保存する。
type Ingredients []string

func (in Ingredients) Value() (driver.Value, error) {
	if in == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(in))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (in *Ingredients) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*in = Ingredients{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("ingredients: unsupported type %T", src)
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("ingredients: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*in = out
	return nil
}

func (in Ingredients) MarshalJSON() ([]byte, error) {
	if in == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(in))
}

// IndexMenuItems はIDをキーにしたマップを作る。
func IndexMenuItems(items []MenuItem) map[string]MenuItem {
	m := make(map[string]MenuItem, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}

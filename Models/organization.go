package Models

import "gorm.io/gorm"

type Organization struct {
	gorm.Model
	Name     string `json:"name" gorm:"unique"`
	Address  string `json:"address"`
	Contact  string `json:"contact"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}

package Models

import "gorm.io/gorm"

const (
	RoleAgent = "AGENT"
	RoleAdmin = "ADMIN"
)

type User struct {
	gorm.Model
	Name           string `json:"name"`
	Email          string `json:"email" gorm:"unique"`
	Password       []byte `json:"-"`
	Role           string `json:"role" gorm:"default:AGENT"`
	Permission     int    `json:"permission"`
	OrganizationID uint   `json:"organization_id" gorm:"index"`
	IsActive       bool   `json:"is_active" gorm:"default:true"`
}

package models

import "time"

// Client is a customer that owns projects.
type Client struct {
	ID           uint      `gorm:"column:client_id;primaryKey" json:"client_id"`
	ClientName   string    `gorm:"type:varchar(150);not null;uniqueIndex:uq_clients_client_name" json:"client_name"`
	ContactName  *string   `gorm:"type:varchar(100)" json:"contact_name"`
	ContactEmail *string   `gorm:"type:varchar(255)" json:"contact_email"`
	ContactPhone *string   `gorm:"type:varchar(30)" json:"contact_phone"`
	IsActive     bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Client) TableName() string { return "clients" }

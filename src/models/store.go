package models

import (
	"time"
)

// Area represents a geographic area a bookstore belongs to
type Area struct {
	ID         int    `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Prefecture string `json:"prefecture" db:"prefecture"`
	SortOrder  int    `json:"sort_order" db:"sort_order"`
	IsActive   bool   `json:"is_active" db:"is_active"`
}

// CategoryTag represents a store category tag
type CategoryTag struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	DisplayName string `json:"display_name" db:"display_name"`
	IsActive    bool   `json:"is_active" db:"is_active"`
}

// Store represents a physical bookstore
type Store struct {
	ID           int           `json:"id" db:"id"`
	Name         string        `json:"name" db:"name"`
	AreaID       int           `json:"area_id" db:"area_id"`
	XURL         *string       `json:"x_url,omitempty" db:"x_url"`
	InstagramURL *string       `json:"instagram_url,omitempty" db:"instagram_url"`
	WebsiteURL   *string       `json:"website_url,omitempty" db:"website_url"`
	GoogleMapURL *string       `json:"google_map_url,omitempty" db:"google_map_url"`
	Description  *string       `json:"description,omitempty" db:"description"`
	IsActive     bool          `json:"is_active" db:"is_active"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
	Area         *Area         `json:"area,omitempty"`
	CategoryTags []CategoryTag `json:"category_tags"`
}

// CreateStoreRequest represents the request payload for creating a store
type CreateStoreRequest struct {
	Name           string  `json:"name" binding:"required,max=200"`
	AreaID         int     `json:"area_id" binding:"required"`
	XURL           *string `json:"x_url,omitempty" binding:"omitempty,url"`
	InstagramURL   *string `json:"instagram_url,omitempty" binding:"omitempty,url"`
	WebsiteURL     *string `json:"website_url,omitempty" binding:"omitempty,url"`
	GoogleMapURL   *string `json:"google_map_url,omitempty" binding:"omitempty,url"`
	Description    *string `json:"description,omitempty"`
	CategoryTagIDs []int   `json:"category_tag_ids,omitempty"`
}

// StoreFilter represents filter options for store list queries
type StoreFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Limit    int    `form:"limit,default=10" binding:"min=1"`
	Offset   int    `form:"offset,default=0" binding:"min=0"`
}

// StoreListResponse represents the response for store list
type StoreListResponse struct {
	Stores []Store `json:"stores"`
}

// AreaListResponse represents the response for area lookups
type AreaListResponse struct {
	Areas []Area `json:"areas"`
}

// CategoryTagListResponse represents the response for category tag lookups
type CategoryTagListResponse struct {
	CategoryTags []CategoryTag `json:"category_tags"`
}

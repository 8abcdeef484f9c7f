package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is a decoration package offered in the catalog.
type Service struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name           string             `bson:"service_name" json:"service_name"`
	Cost           float64            `bson:"cost" json:"cost"`
	Unit           string             `bson:"unit" json:"unit"`
	Category       string             `bson:"category" json:"category"`
	Description    string             `bson:"description" json:"description"`
	Image          string             `bson:"image" json:"image"`
	CreatedByEmail string             `bson:"createdByEmail" json:"createdByEmail"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ServiceQuery holds catalog listing criteria.
type ServiceQuery struct {
	Search   string
	Category string
	MinCost  *float64
	MaxCost  *float64
	Page     int
	Limit    int
	// SortField is a persisted field name; SortDesc orders it descending.
	SortField string
	SortDesc  bool
}

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

type ServicePage struct {
	Services   []Service  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

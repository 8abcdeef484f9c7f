package catalog

import (
	"strings"

	"styledecor/models"
)

// ServiceInput is the body of a catalog create.
type ServiceInput struct {
	Name        string   `json:"service_name" validate:"required,max=100"`
	Cost        *float64 `json:"cost" validate:"required,gte=0"`
	Unit        string   `json:"unit" validate:"required,max=50"`
	Category    string   `json:"category" validate:"required,max=50"`
	Description string   `json:"description" validate:"required,max=1000"`
	Image       string   `json:"image" validate:"required"`
	// CreatedByEmail is only honoured when the caller has no email of its own.
	CreatedByEmail string `json:"createdByEmail"`
}

func (in ServiceInput) trimmed() ServiceInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	in.Image = strings.TrimSpace(in.Image)
	in.CreatedByEmail = models.NormalizeEmail(in.CreatedByEmail)
	return in
}

// ServicePatch is the body of a catalog update; absent fields are left alone.
type ServicePatch struct {
	Name        *string  `json:"service_name" validate:"omitempty,max=100"`
	Cost        *float64 `json:"cost" validate:"omitempty,gte=0"`
	Unit        *string  `json:"unit" validate:"omitempty,max=50"`
	Category    *string  `json:"category" validate:"omitempty,max=50"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Image       *string  `json:"image"`
}

func (p ServicePatch) apply(s *models.Service) {
	set := func(dst *string, v *string) {
		if v != nil && strings.TrimSpace(*v) != "" {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&s.Name, p.Name)
	set(&s.Unit, p.Unit)
	set(&s.Category, p.Category)
	set(&s.Description, p.Description)
	set(&s.Image, p.Image)
	if p.Cost != nil {
		s.Cost = *p.Cost
	}
}

// ListParams are the raw catalog query-string values.
type ListParams struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	MinCost  string `form:"minCost"`
	MaxCost  string `form:"maxCost"`
	Page     string `form:"page"`
	Limit    string `form:"limit"`
	Sort     string `form:"sort"`
}

package catalog

// CreateResourceRequest is the admin body for adding a bookable resource.
type CreateResourceRequest struct {
	Name             string `json:"name" validate:"required"`
	Description      string `json:"description"`
	Location         string `json:"location" validate:"required"`
	Capacity         int    `json:"capacity" validate:"gte=0"`
	Quantity         int    `json:"quantity" validate:"required,gt=0"`
	RequiresApproval bool   `json:"requires_approval"`
}

// UpdateResourceRequest carries optional fields; nil means unchanged.
type UpdateResourceRequest struct {
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	Location         *string `json:"location,omitempty"`
	Capacity         *int    `json:"capacity,omitempty"`
	Quantity         *int    `json:"quantity,omitempty"`
	RequiresApproval *bool   `json:"requires_approval,omitempty"`
	IsActive         *bool   `json:"is_active,omitempty"`
}

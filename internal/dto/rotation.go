package dto

// ── rotations ──

// CreateRotationRequest create a rotation
type CreateRotationRequest struct {
	Title      string `json:"title"       binding:"required,min=1,max=200"`
	Duration   string `json:"duration"    binding:"required,duration"`
	TotalSlots int    `json:"total_slots" binding:"min=0"`
}

// UpdateRotationRequest partial update of a rotation
type UpdateRotationRequest struct {
	Title      *string `json:"title"       binding:"omitempty,min=1,max=200"`
	Duration   *string `json:"duration"    binding:"omitempty,duration"`
	TotalSlots *int    `json:"total_slots" binding:"omitempty,min=0"`
}

// RotationListRequest rotation list query
type RotationListRequest struct {
	Available bool `form:"available"`
}

// RotationResponse a rotation with its live availability
type RotationResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Duration       string `json:"duration"`
	Months         int    `json:"months"`
	TotalSlots     int    `json:"total_slots"`
	AvailableSlots int    `json:"available_slots"`
	IsAvailable    bool   `json:"is_available"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

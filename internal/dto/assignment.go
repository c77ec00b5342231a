package dto

// ── assignments ──

// CreateAssignmentRequest assign an intern to a rotation
type CreateAssignmentRequest struct {
	InternID   string `json:"intern_id"   binding:"required,uuid"`
	RotationID string `json:"rotation_id" binding:"required,uuid"`
}

// ChooseRotationForm rotation picked from the intern page
type ChooseRotationForm struct {
	RotationID string `form:"rotation_id" binding:"required,uuid"`
}

// AssignmentListRequest assignment list query
type AssignmentListRequest struct {
	InternID   string `form:"intern_id"   binding:"omitempty,uuid"`
	RotationID string `form:"rotation_id" binding:"omitempty,uuid"`
}

// AssignmentResponse an assignment with display names
type AssignmentResponse struct {
	ID            string `json:"id"`
	InternID      string `json:"intern_id"`
	InternName    string `json:"intern_name,omitempty"`
	InternEmail   string `json:"intern_email,omitempty"`
	RotationID    string `json:"rotation_id"`
	RotationTitle string `json:"rotation_title,omitempty"`
	CreatedAt     string `json:"created_at"`
}

package dto

// ── interns ──

// CreateInternRequest create an intern; the lookup token is generated
type CreateInternRequest struct {
	LastName  string `json:"last_name"  binding:"required,max=200"`
	FirstName string `json:"first_name" binding:"required,max=200"`
	Email     string `json:"email"      binding:"omitempty,max=200"`
	Phone     string `json:"phone"      binding:"omitempty,max=200"`
}

// UpdateInternRequest partial update of an intern's identity
type UpdateInternRequest struct {
	LastName  *string `json:"last_name"  binding:"omitempty,min=1,max=200"`
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=200"`
	Email     *string `json:"email"      binding:"omitempty,max=200"`
	Phone     *string `json:"phone"      binding:"omitempty,max=200"`
}

// InternListRequest intern list query
type InternListRequest struct {
	PaginationRequest
}

// InternResponse intern identity
type InternResponse struct {
	ID          string `json:"id"`
	LastName    string `json:"last_name"`
	FirstName   string `json:"first_name"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	LookupToken string `json:"lookup_token"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

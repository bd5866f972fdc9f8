package rbac

type CreatePolicyRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type PolicyResponse struct {
	ID       string `json:"id,omitempty"`
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	BuiltIn  bool   `json:"built_in"`
}

package userhandler

type RegisterBody struct {
	Email    string `json:"email"    binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
	Name     string `json:"name"     binding:"required"       example:"Ada Lovelace"`
	Role     string `json:"role"     example:"Bidder"`
} // @name RegisterRequest

type LoginBody struct {
	Email    string `json:"email"    binding:"required" example:"ada@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
} // @name LoginRequest

type SetRoleBody struct {
	Role string `json:"role" binding:"required" example:"Admin"`
} // @name SetRoleRequest

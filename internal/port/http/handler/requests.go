package handler

// Typed request bodies. Shape and constraint checks live in the validate
// tags; handlers reject anything that fails before touching a service.

type SignupRequest struct {
	Username        string `json:"username" validate:"required,min=3"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type AddItemRequest struct {
	UserID    string `json:"userId" validate:"required,objectid"`
	ProductID string `json:"productId" validate:"required,objectid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CartItemRequest covers increase, decrease and remove, which all address a
// single (user, product) pair.
type CartItemRequest struct {
	UserID    string `json:"userId" validate:"required,objectid"`
	ProductID string `json:"productId" validate:"required,objectid"`
}

type ProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	CategoryID  string  `json:"categoryId" validate:"omitempty,objectid"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

package request

// CreateUserRequest accepts every role so that STORE_OWNER can be refused
// with a dedicated message by the service.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,password"`
	Address  string `json:"address" validate:"max=400"`
	Role     string `json:"role" validate:"required,oneof=NORMAL_USER STORE_OWNER SYSTEM_ADMIN"`
}

type CreateStoreRequest struct {
	StoreName    string `json:"storeName" validate:"required,max=255"`
	StoreAddress string `json:"storeAddress" validate:"max=400"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Password     string `json:"password" validate:"required,password"`
	OwnerName    string `json:"ownerName" validate:"required,min=20,max=60"`
	OwnerAddress string `json:"ownerAddress" validate:"max=400"`
}

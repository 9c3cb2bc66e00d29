package request

type RateStoreRequest struct {
	Value int `json:"value" validate:"required,min=1,max=5"`
}

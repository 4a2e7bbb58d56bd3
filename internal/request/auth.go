package request

type SignInRequest struct {
	Code string `json:"code" validate:"required,max=2048"`
}

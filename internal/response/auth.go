package response

import "teabag/internal/dto"

type UserResponse struct {
	User dto.UserDTO `json:"user"`
}

type SignOutResponse struct {
	Success bool `json:"success"`
}

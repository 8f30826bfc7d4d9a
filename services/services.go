package services

import (
	"github.com/JayL96/user-management/repositories"
)

// Services holds all service instances
type Services struct {
	Users UserService
	Logs  LogService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories) *Services {
	return &Services{
		Users: NewUserService(repos.Users),
		Logs:  NewLogService(repos.Logs),
	}
}

package service

import (
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/repository"
)

type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.repo.ByID(id)
}

func (s *UserService) Delete(id string) error {
	return s.repo.Delete(id)
}

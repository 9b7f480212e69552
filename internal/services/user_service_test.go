package services

import (
	"testing"

	"expense-manager/internal/dto"
	"expense-manager/internal/models"
	"expense-manager/internal/repositories"
	"expense-manager/internal/repositories/repository_mocks"
	"expense-manager/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	userRepo        *repository_mocks.MockUserRepositoryInterface
	passwordService *service_mocks.MockPasswordServiceInterface
	service         UserServiceInterface
	user            *models.User
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.userRepo = repository_mocks.NewMockUserRepositoryInterface(s.ctrl)
	s.passwordService = service_mocks.NewMockPasswordServiceInterface(s.ctrl)
	s.service = NewUserService(s.userRepo, s.passwordService)
	s.user = &models.User{
		ID:           uuid.New(),
		Email:        "owner@example.com",
		Name:         gofakeit.Name(),
		PasswordHash: "hashed",
	}
}

func (s *UserServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *UserServiceTestSuite) TestGetProfile_NotFound() {
	s.userRepo.EXPECT().GetByID(s.user.ID).Return(nil, repositories.ErrUserNotFound)

	user, err := s.service.GetProfile(s.user.ID)

	s.ErrorIs(err, ErrUserNotFound)
	s.Nil(user)
}

func (s *UserServiceTestSuite) TestUpdateProfile_NameAndEmail() {
	name := "New Name"
	email := "New@Example.com"

	s.userRepo.EXPECT().GetByID(s.user.ID).Return(s.user, nil)
	s.userRepo.EXPECT().GetByEmailExcluding("new@example.com", s.user.ID).Return(nil, repositories.ErrUserNotFound)
	s.userRepo.EXPECT().UpdateFields(s.user.ID, gomock.Any()).DoAndReturn(func(_ uuid.UUID, fields map[string]interface{}) error {
		s.Equal("New Name", fields["name"])
		s.Equal("new@example.com", fields["email"])
		s.Contains(fields, "updated_at")
		return nil
	})

	user, err := s.service.UpdateProfile(s.user.ID, &dto.UpdateUserRequest{Name: &name, Email: &email})

	s.NoError(err)
	s.Equal("New Name", user.Name)
	s.Equal("new@example.com", user.Email)
}

func (s *UserServiceTestSuite) TestUpdateProfile_EmailTaken() {
	email := "taken@example.com"

	s.userRepo.EXPECT().GetByID(s.user.ID).Return(s.user, nil)
	s.userRepo.EXPECT().GetByEmailExcluding(email, s.user.ID).Return(&models.User{ID: uuid.New(), Email: email}, nil)

	user, err := s.service.UpdateProfile(s.user.ID, &dto.UpdateUserRequest{Email: &email})

	s.ErrorIs(err, ErrEmailAlreadyInUse)
	s.Nil(user)
}

func (s *UserServiceTestSuite) TestUpdateProfile_NothingChanged() {
	s.userRepo.EXPECT().GetByID(s.user.ID).Return(s.user, nil)

	user, err := s.service.UpdateProfile(s.user.ID, &dto.UpdateUserRequest{Email: &s.user.Email})

	s.NoError(err)
	s.Equal(s.user, user)
}

func (s *UserServiceTestSuite) TestUpdateProfile_BlankName() {
	blank := "   "
	s.userRepo.EXPECT().GetByID(s.user.ID).Return(s.user, nil)

	user, err := s.service.UpdateProfile(s.user.ID, &dto.UpdateUserRequest{Name: &blank})

	s.ErrorIs(err, ErrInvalidProfile)
	s.Nil(user)
}

func (s *UserServiceTestSuite) TestChangePassword_Success() {
	req := &dto.ChangePasswordRequest{CurrentPassword: "old-pass1", NewPassword: "new-pass1"}

	s.userRepo.EXPECT().GetByID(s.user.ID).Return(s.user, nil)
	s.passwordService.EXPECT().ComparePassword(req.CurrentPassword, s.user.PasswordHash).Return(true)
	s.passwordService.EXPECT().HashPassword(req.NewPassword).Return("new-hash", nil)
	s.userRepo.EXPECT().UpdateFields(s.user.ID, gomock.Any()).DoAndReturn(func(_ uuid.UUID, fields map[string]interface{}) error {
		s.Equal("new-hash", fields["password_hash"])
		return nil
	})

	s.NoError(s.service.ChangePassword(s.user.ID, req))
}

func (s *UserServiceTestSuite) TestChangePassword_WrongCurrent() {
	req := &dto.ChangePasswordRequest{CurrentPassword: "wrong-pass1", NewPassword: "new-pass1"}

	s.userRepo.EXPECT().GetByID(s.user.ID).Return(s.user, nil)
	s.passwordService.EXPECT().ComparePassword(req.CurrentPassword, s.user.PasswordHash).Return(false)

	s.ErrorIs(s.service.ChangePassword(s.user.ID, req), ErrCurrentPasswordWrong)
}

func (s *UserServiceTestSuite) TestChangePassword_SamePassword() {
	req := &dto.ChangePasswordRequest{CurrentPassword: "same-pass1", NewPassword: "same-pass1"}

	s.ErrorIs(s.service.ChangePassword(s.user.ID, req), ErrSamePassword)
}

func (s *UserServiceTestSuite) TestDeleteAccount() {
	s.userRepo.EXPECT().DeleteWithData(s.user.ID).Return(nil)

	s.NoError(s.service.DeleteAccount(s.user.ID))
}

func (s *UserServiceTestSuite) TestDeleteAccount_NotFound() {
	s.userRepo.EXPECT().DeleteWithData(s.user.ID).Return(repositories.ErrUserNotFound)

	s.ErrorIs(s.service.DeleteAccount(s.user.ID), ErrUserNotFound)
}

package repositories

import (
	"testing"
	"time"

	"expense-manager/internal/database"
	"expense-manager/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

func TestUserRepository(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

type UserRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo UserRepositoryInterface
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewUserRepository(s.db.DB)
}

func (s *UserRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *UserRepositorySuite) newUser(email string) *models.User {
	return &models.User{
		Email:        email,
		PasswordHash: "hashed_password",
		Name:         "Test User",
	}
}

func (s *UserRepositorySuite) TestCreate() {
	user := s.newUser("test@example.com")

	err := s.repo.Create(user)
	s.NoError(err)
	s.NotEqual(uuid.Nil, user.ID)
	s.NotZero(user.CreatedAt)
}

func (s *UserRepositorySuite) TestCreate_DuplicateEmail() {
	s.Require().NoError(s.repo.Create(s.newUser("dup@example.com")))

	err := s.repo.Create(s.newUser("DUP@example.com"))
	s.ErrorIs(err, ErrUserAlreadyExists)
}

func (s *UserRepositorySuite) TestCreate_Nil() {
	s.Error(s.repo.Create(nil))
}

func (s *UserRepositorySuite) TestGetByEmail_CaseInsensitive() {
	user := s.newUser("test@example.com")
	s.Require().NoError(s.repo.Create(user))

	found, err := s.repo.GetByEmail("  Test@Example.com")
	s.NoError(err)
	s.Equal(user.ID, found.ID)

	_, err = s.repo.GetByEmail("nonexistent@example.com")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserRepositorySuite) TestGetByID() {
	user := s.newUser("id@example.com")
	s.Require().NoError(s.repo.Create(user))

	found, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal("id@example.com", found.Email)

	_, err = s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserRepositorySuite) TestGetByEmailExcluding() {
	first := s.newUser("first@example.com")
	second := s.newUser("second@example.com")
	s.Require().NoError(s.repo.Create(first))
	s.Require().NoError(s.repo.Create(second))

	_, err := s.repo.GetByEmailExcluding("first@example.com", first.ID)
	s.ErrorIs(err, ErrUserNotFound)

	found, err := s.repo.GetByEmailExcluding("first@example.com", second.ID)
	s.NoError(err)
	s.Equal(first.ID, found.ID)
}

func (s *UserRepositorySuite) TestUpdateFields() {
	user := s.newUser("fields@example.com")
	s.Require().NoError(s.repo.Create(user))

	err := s.repo.UpdateFields(user.ID, map[string]interface{}{"name": "Renamed"})
	s.NoError(err)

	found, err := s.repo.GetByID(user.ID)
	s.Require().NoError(err)
	s.Equal("Renamed", found.Name)

	err = s.repo.UpdateFields(uuid.New(), map[string]interface{}{"name": "Ghost"})
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserRepositorySuite) TestFailedLoginAttempts() {
	user := s.newUser("locked@example.com")
	s.Require().NoError(s.repo.Create(user))

	user.Lock()
	s.NoError(s.repo.UpdateFailedLoginAttempts(user))

	found, err := s.repo.GetByID(user.ID)
	s.Require().NoError(err)
	s.True(found.IsLocked())
	s.Equal(models.MaxFailedLoginAttempts, found.FailedLoginAttempts)

	s.NoError(s.repo.ResetFailedLoginAttempts(user.ID))

	found, err = s.repo.GetByID(user.ID)
	s.Require().NoError(err)
	s.False(found.IsLocked())
	s.Zero(found.FailedLoginAttempts)
}

func (s *UserRepositorySuite) TestUpdateLastLogin() {
	user := s.newUser("login@example.com")
	s.Require().NoError(s.repo.Create(user))

	at := time.Now().UTC().Truncate(time.Second)
	s.NoError(s.repo.UpdateLastLogin(user.ID, at))

	found, err := s.repo.GetByID(user.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found.LastLoginAt)
	s.True(at.Equal(found.LastLoginAt.UTC()))
}

func (s *UserRepositorySuite) TestDeleteWithData() {
	user := database.CreateTestUser(s.T(), s.db, "owner@example.com")
	other := database.CreateTestUser(s.T(), s.db, "other@example.com")
	food := database.CreateTestCategory(s.T(), s.db, user.ID, "Food", models.CategoryTypeExpense)
	salary := database.CreateTestCategory(s.T(), s.db, user.ID, "Salary", models.CategoryTypeIncome)
	keep := database.CreateTestCategory(s.T(), s.db, other.ID, "Food", models.CategoryTypeExpense)
	database.CreateTestExpense(s.T(), s.db, food, "10.00", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	database.CreateTestIncome(s.T(), s.db, salary, "100.00", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	database.CreateTestExpense(s.T(), s.db, keep, "5.00", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	s.NoError(s.repo.DeleteWithData(user.ID))

	_, err := s.repo.GetByID(user.ID)
	s.ErrorIs(err, ErrUserNotFound)

	var count int64
	s.db.Model(&models.Expense{}).Count(&count)
	s.Equal(int64(1), count)
	s.db.Model(&models.Income{}).Count(&count)
	s.Zero(count)
	s.db.Model(&models.Category{}).Count(&count)
	s.Equal(int64(1), count)

	s.ErrorIs(s.repo.DeleteWithData(uuid.New()), ErrUserNotFound)
}

package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/repositories"
	pkgauth "github.com/amangusss/EPAM-WCA25-gym-application-sub001/pkg/auth"
)

// TestUsername generates a unique username using a timestamp
func TestUsername(suffix string) string {
	return fmt.Sprintf("test.%s%d", suffix, time.Now().UnixNano())
}

// SeedUser creates a user with a known password and returns it.
func SeedUser(ctx context.Context, repo *repositories.UserRepository, username, role string) (*models.User, error) {
	hash, err := pkgauth.HashPassword("TestPassword123!")
	if err != nil {
		return nil, err
	}

	return repo.Create(ctx, &models.User{
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hash,
		Role:         role,
	})
}

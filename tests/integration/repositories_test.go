package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/repositories"
)

var (
	testDB     *TestDB
	setupOnce  sync.Once
	setupError error
)

// sharedDB starts the postgres container once for the whole package.
func sharedDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	setupOnce.Do(func() {
		testDB, setupError = SetupTestDatabase(context.Background())
	})
	if setupError != nil {
		t.Skipf("postgres container unavailable: %v", setupError)
	}
	return testDB
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := sharedDB(t)
	ctx := context.Background()
	repo := repositories.NewUserRepository(db.DB)

	username := TestUsername("create")
	created, err := SeedUser(ctx, repo, username, models.RoleTrainee)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.True(t, created.Active)

	fetched, err := repo.GetByUsername(ctx, username)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, models.RoleTrainee, fetched.Role)

	exists, err := repo.UsernameExists(ctx, username)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.UsernameExists(ctx, TestUsername("missing"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := sharedDB(t)
	ctx := context.Background()
	repo := repositories.NewUserRepository(db.DB)

	username := TestUsername("dup")
	_, err := SeedUser(ctx, repo, username, models.RoleTrainee)
	require.NoError(t, err)

	_, err = SeedUser(ctx, repo, username, models.RoleTrainee)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db := sharedDB(t)
	ctx := context.Background()
	repo := repositories.NewUserRepository(db.DB)

	username := TestUsername("pwd")
	_, err := SeedUser(ctx, repo, username, models.RoleTrainee)
	require.NoError(t, err)

	require.NoError(t, repo.UpdatePassword(ctx, username, "new-hash"))

	fetched, err := repo.GetByUsername(ctx, username)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", fetched.PasswordHash)

	err = repo.UpdatePassword(ctx, TestUsername("nobody"), "hash")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserRepository_SetActiveAndDelete(t *testing.T) {
	db := sharedDB(t)
	ctx := context.Background()
	repo := repositories.NewUserRepository(db.DB)

	username := TestUsername("lifecycle")
	_, err := SeedUser(ctx, repo, username, models.RoleTrainee)
	require.NoError(t, err)

	require.NoError(t, repo.SetActive(ctx, username, false))
	fetched, err := repo.GetByUsername(ctx, username)
	require.NoError(t, err)
	assert.False(t, fetched.Active)

	require.NoError(t, repo.Delete(ctx, username))
	_, err = repo.GetByUsername(ctx, username)
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = repo.Delete(ctx, username)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestTraineeRepository_ProfileRoundTrip(t *testing.T) {
	db := sharedDB(t)
	ctx := context.Background()
	userRepo := repositories.NewUserRepository(db.DB)
	traineeRepo := repositories.NewTraineeRepository(db.DB)

	username := TestUsername("trainee")
	user, err := SeedUser(ctx, userRepo, username, models.RoleTrainee)
	require.NoError(t, err)

	dob := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)
	addr := "1 Main St"
	require.NoError(t, traineeRepo.CreateProfile(ctx, user.ID, &dob, &addr))

	profile, err := traineeRepo.GetByUsername(ctx, username)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
	require.NotNil(t, profile.DateOfBirth)
	assert.Equal(t, 1990, profile.DateOfBirth.Year())
	require.NotNil(t, profile.Address)
	assert.Equal(t, addr, *profile.Address)
	require.NotNil(t, profile.User)
	assert.Equal(t, username, profile.User.Username)

	newAddr := "2 Side St"
	require.NoError(t, traineeRepo.UpdateProfile(ctx, username, nil, &newAddr))
	profile, err = traineeRepo.GetByUsername(ctx, username)
	require.NoError(t, err)
	require.NotNil(t, profile.Address)
	assert.Equal(t, newAddr, *profile.Address)
}

func TestTrainerRepository_ProfileWithSpecialization(t *testing.T) {
	db := sharedDB(t)
	ctx := context.Background()
	userRepo := repositories.NewUserRepository(db.DB)
	trainerRepo := repositories.NewTrainerRepository(db.DB)
	typeRepo := repositories.NewTrainingTypeRepository(db.DB)

	yoga, err := typeRepo.GetByName(ctx, "yoga")
	require.NoError(t, err)

	username := TestUsername("trainer")
	user, err := SeedUser(ctx, userRepo, username, models.RoleTrainer)
	require.NoError(t, err)

	require.NoError(t, trainerRepo.CreateProfile(ctx, user.ID, yoga.ID))

	profile, err := trainerRepo.GetByUsername(ctx, username)
	require.NoError(t, err)
	require.NotNil(t, profile.Specialization)
	assert.Equal(t, "yoga", profile.Specialization.Name)

	fitness, err := typeRepo.GetByName(ctx, "fitness")
	require.NoError(t, err)
	require.NoError(t, trainerRepo.UpdateSpecialization(ctx, username, fitness.ID))

	profile, err = trainerRepo.GetByUsername(ctx, username)
	require.NoError(t, err)
	require.NotNil(t, profile.Specialization)
	assert.Equal(t, "fitness", profile.Specialization.Name)
}

func TestTrainingTypeRepository_Catalog(t *testing.T) {
	db := sharedDB(t)
	ctx := context.Background()
	typeRepo := repositories.NewTrainingTypeRepository(db.DB)

	types, err := typeRepo.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, types)

	names := make(map[string]bool)
	for _, tt := range types {
		names[tt.Name] = true
	}
	assert.True(t, names["fitness"])
	assert.True(t, names["yoga"])

	_, err = typeRepo.GetByName(ctx, "underwater-basket-weaving")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestTrainingRepository_CreateAndList(t *testing.T) {
	db := sharedDB(t)
	ctx := context.Background()
	userRepo := repositories.NewUserRepository(db.DB)
	traineeRepo := repositories.NewTraineeRepository(db.DB)
	trainerRepo := repositories.NewTrainerRepository(db.DB)
	typeRepo := repositories.NewTrainingTypeRepository(db.DB)
	trainingRepo := repositories.NewTrainingRepository(db.DB)

	traineeName := TestUsername("tng.trainee")
	trainee, err := SeedUser(ctx, userRepo, traineeName, models.RoleTrainee)
	require.NoError(t, err)
	require.NoError(t, traineeRepo.CreateProfile(ctx, trainee.ID, nil, nil))

	trainerName := TestUsername("tng.trainer")
	trainer, err := SeedUser(ctx, userRepo, trainerName, models.RoleTrainer)
	require.NoError(t, err)
	yoga, err := typeRepo.GetByName(ctx, "yoga")
	require.NoError(t, err)
	require.NoError(t, trainerRepo.CreateProfile(ctx, trainer.ID, yoga.ID))

	date := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	created, err := trainingRepo.Create(ctx, &models.Training{
		TraineeID: trainee.ID,
		TrainerID: trainer.ID,
		Name:      "Morning yoga",
		TypeID:    yoga.ID,
		Date:      date,
		Duration:  45 * time.Minute,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	forTrainee, err := trainingRepo.ListForTrainee(ctx, traineeName, nil, nil)
	require.NoError(t, err)
	require.Len(t, forTrainee, 1)
	assert.Equal(t, "Morning yoga", forTrainee[0].Name)
	assert.Equal(t, 45*time.Minute, forTrainee[0].Duration)
	assert.Equal(t, trainerName, forTrainee[0].TrainerUsername)

	forTrainer, err := trainingRepo.ListForTrainer(ctx, trainerName, nil, nil)
	require.NoError(t, err)
	require.Len(t, forTrainer, 1)
	assert.Equal(t, traineeName, forTrainer[0].TraineeUsername)

	// Date range excluding the training returns nothing.
	from := date.Add(24 * time.Hour)
	filtered, err := trainingRepo.ListForTrainee(ctx, traineeName, &from, nil)
	require.NoError(t, err)
	assert.Empty(t, filtered)

	// Range covering it returns it again.
	to := date.Add(24 * time.Hour)
	fromEarly := date.Add(-24 * time.Hour)
	filtered, err = trainingRepo.ListForTrainee(ctx, traineeName, &fromEarly, &to)
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
}

func TestLoginAttemptRepository_RecordAndPurge(t *testing.T) {
	db := sharedDB(t)
	ctx := context.Background()
	attemptRepo := repositories.NewLoginAttemptRepository(db.DB)

	username := TestUsername("attempts")
	lockedUntil := time.Now().Add(15 * time.Minute)

	// One live row and one already expired.
	require.NoError(t, attemptRepo.RecordAttempt(ctx, &models.LoginAttempt{
		Username:     username,
		Successful:   false,
		AttemptCount: 5,
		LockedUntil:  &lockedUntil,
		AttemptTime:  time.Now(),
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}))
	require.NoError(t, attemptRepo.RecordAttempt(ctx, &models.LoginAttempt{
		Username:    username,
		Successful:  true,
		AttemptTime: time.Now().Add(-48 * time.Hour),
		ExpiresAt:   time.Now().Add(-24 * time.Hour),
	}))

	attempts, err := attemptRepo.ListByUsername(ctx, username, 10)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.False(t, attempts[0].Successful)
	require.NotNil(t, attempts[0].LockedUntil)

	deleted, err := attemptRepo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(1))

	attempts, err = attemptRepo.ListByUsername(ctx, username, 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.False(t, attempts[0].Successful)
}

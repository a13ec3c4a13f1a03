package auth

import (
	"context"
	"errors"

	"github.com/codr1/ScoreChallenge/internal/api/authz"
	appdb "github.com/codr1/ScoreChallenge/internal/db"
	dbgen "github.com/codr1/ScoreChallenge/internal/db/generated"
	"github.com/codr1/ScoreChallenge/internal/models"
)

// CreateAccount inserts a user and seeds a blank prediction for every
// scheduled match in one transaction.
func CreateAccount(ctx context.Context, database *appdb.DB, username, passwordHash, email string, role authz.Role) (dbgen.User, error) {
	if database == nil {
		return dbgen.User{}, errors.New("database is required")
	}

	var user dbgen.User
	err := database.RunInTx(ctx, func(txdb *appdb.DB) error {
		var err error
		user, err = txdb.Queries.CreateUser(ctx, dbgen.CreateUserParams{
			Username:     username,
			PasswordHash: passwordHash,
			Role:         string(role),
			Email:        models.ToNullString(email),
		})
		if err != nil {
			return err
		}
		_, err = txdb.Queries.SeedUserMatchesForUser(ctx, user.ID)
		return err
	})
	if err != nil {
		return dbgen.User{}, err
	}
	return user, nil
}

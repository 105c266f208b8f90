package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/model"
	"github.com/kwikkconnect/kwikkconnect/pkg/repository/memory"
	"github.com/m-mizutani/gt"
)

func TestExpertRepository_Put(t *testing.T) {
	t.Run("put and get round trip", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		_, err := repo.Expert().Put(ctx, &model.Expert{
			Email:    "alice@example.com",
			Name:     "Alice",
			IsOnline: true,
		})
		gt.NoError(t, err).Required()

		got, err := repo.Expert().Get(ctx, "alice@example.com")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("Alice")
		gt.Bool(t, got.IsOnline).True()
	})

	t.Run("re-registering the same email overwrites, never duplicates", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		_, err := repo.Expert().Put(ctx, &model.Expert{Email: "bob@example.com", Name: "Bob"})
		gt.NoError(t, err).Required()
		_, err = repo.Expert().Put(ctx, &model.Expert{Email: "bob@example.com", Name: "Robert", IsOnline: true})
		gt.NoError(t, err).Required()

		experts, err := repo.Expert().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, experts).Length(1)
		gt.Value(t, experts[0].Name).Equal("Robert")
		gt.Bool(t, experts[0].IsOnline).True()
	})
}

func TestExpertRepository_Get(t *testing.T) {
	t.Run("unknown email yields ErrNotFound", func(t *testing.T) {
		repo := memory.New()
		_, err := repo.Expert().Get(context.Background(), "ghost@example.com")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, memory.ErrNotFound)).True()
	})
}

func TestExpertRepository_List(t *testing.T) {
	t.Run("listing is ordered by email", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		for _, email := range []string{"charlie@example.com", "alice@example.com", "bob@example.com"} {
			_, err := repo.Expert().Put(ctx, &model.Expert{Email: email, Name: email})
			gt.NoError(t, err).Required()
		}

		experts, err := repo.Expert().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, experts).Length(3)
		gt.Value(t, experts[0].Email).Equal("alice@example.com")
		gt.Value(t, experts[1].Email).Equal("bob@example.com")
		gt.Value(t, experts[2].Email).Equal("charlie@example.com")
	})
}

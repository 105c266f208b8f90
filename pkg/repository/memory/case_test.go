package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/model"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/types"
	"github.com/kwikkconnect/kwikkconnect/pkg/repository/memory"
	"github.com/m-mizutani/gt"
)

func TestCaseRepository_Create(t *testing.T) {
	t.Run("IDs are sequential starting at CASE-0001", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		first, err := repo.Case().Create(ctx, &model.Case{Title: "first", Description: "d"})
		gt.NoError(t, err).Required()
		gt.Value(t, first.ID).Equal(types.CaseID("CASE-0001"))

		second, err := repo.Case().Create(ctx, &model.Case{Title: "second", Description: "d"})
		gt.NoError(t, err).Required()
		gt.Value(t, second.ID).Equal(types.CaseID("CASE-0002"))

		third, err := repo.Case().Create(ctx, &model.Case{Title: "third", Description: "d"})
		gt.NoError(t, err).Required()
		gt.Value(t, third.ID).Equal(types.CaseID("CASE-0003"))
	})

	t.Run("timestamps are set on create", func(t *testing.T) {
		repo := memory.New()
		created, err := repo.Case().Create(context.Background(), &model.Case{Title: "t", Description: "d"})
		gt.NoError(t, err).Required()
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Value(t, created.UpdatedAt).Equal(created.CreatedAt)
	})

	t.Run("stored case is isolated from caller mutation", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		input := &model.Case{Title: "original", Description: "d"}
		created, err := repo.Case().Create(ctx, input)
		gt.NoError(t, err).Required()

		input.Title = "mutated"
		created.Title = "also mutated"

		stored, err := repo.Case().Get(ctx, types.CaseID("CASE-0001"))
		gt.NoError(t, err).Required()
		gt.Value(t, stored.Title).Equal("original")
	})
}

func TestCaseRepository_Get(t *testing.T) {
	t.Run("unknown ID yields ErrNotFound", func(t *testing.T) {
		repo := memory.New()
		_, err := repo.Case().Get(context.Background(), "CASE-9999")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, memory.ErrNotFound)).True()
	})
}

func TestCaseRepository_List(t *testing.T) {
	t.Run("listing preserves creation order", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		titles := []string{"alpha", "bravo", "charlie"}
		for _, title := range titles {
			_, err := repo.Case().Create(ctx, &model.Case{Title: title, Description: "d"})
			gt.NoError(t, err).Required()
		}

		cases, err := repo.Case().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, cases).Length(3)
		for i, c := range cases {
			gt.Value(t, c.Title).Equal(titles[i])
		}
	})

	t.Run("empty store lists zero cases", func(t *testing.T) {
		repo := memory.New()
		cases, err := repo.Case().List(context.Background())
		gt.NoError(t, err).Required()
		gt.Array(t, cases).Length(0)
	})
}

func TestCaseRepository_ListByAssignee(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	_, err := repo.Case().Create(ctx, &model.Case{Title: "a", Description: "d", AssignedTo: "alice@example.com"})
	gt.NoError(t, err).Required()
	_, err = repo.Case().Create(ctx, &model.Case{Title: "b", Description: "d", AssignedTo: "bob@example.com"})
	gt.NoError(t, err).Required()
	_, err = repo.Case().Create(ctx, &model.Case{Title: "c", Description: "d", AssignedTo: "alice@example.com"})
	gt.NoError(t, err).Required()

	mine, err := repo.Case().ListByAssignee(ctx, "alice@example.com")
	gt.NoError(t, err).Required()
	gt.Array(t, mine).Length(2)
	gt.Value(t, mine[0].Title).Equal("a")
	gt.Value(t, mine[1].Title).Equal("c")

	none, err := repo.Case().ListByAssignee(ctx, "nobody@example.com")
	gt.NoError(t, err).Required()
	gt.Array(t, none).Length(0)
}

func TestCaseRepository_Update(t *testing.T) {
	t.Run("update keeps CreatedAt and refreshes UpdatedAt", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		created, err := repo.Case().Create(ctx, &model.Case{
			Title:       "t",
			Description: "d",
			Status:      types.CaseStatusNew,
		})
		gt.NoError(t, err).Required()

		created.Status = types.CaseStatusInProgress
		updated, err := repo.Case().Update(ctx, created)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Status).Equal(types.CaseStatusInProgress)
		gt.Value(t, updated.CreatedAt).Equal(created.CreatedAt)
		gt.Bool(t, updated.UpdatedAt.Before(created.CreatedAt)).False()
	})

	t.Run("updating an unknown case does not insert it", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		_, err := repo.Case().Update(ctx, &model.Case{ID: "CASE-0007", Title: "ghost", Description: "d"})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, memory.ErrNotFound)).True()

		cases, err := repo.Case().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, cases).Length(0)
	})
}

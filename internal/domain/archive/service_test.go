package archive_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rahat/messbook/internal/domain/archive"
	"github.com/rahat/messbook/internal/repository"
	"github.com/rahat/messbook/internal/repository/mocks"
)

func TestList(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ArchiveRepository{}
	repo.On("List", ctx).Return([]archive.Cycle{{ID: "a2"}, {ID: "a1"}}, nil)

	svc := archive.NewService(repo, nil)
	cycles, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, cycles, 2)
	require.Equal(t, "a2", cycles[0].ID)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ArchiveRepository{}
	repo.On("Delete", ctx, "a1").Return(nil)

	svc := archive.NewService(repo, nil)
	require.NoError(t, svc.Delete(ctx, "a1"))
	repo.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ArchiveRepository{}
	repo.On("Delete", ctx, "ghost").Return(repository.ErrNotFound)

	svc := archive.NewService(repo, nil)
	err := svc.Delete(ctx, "ghost")
	require.ErrorIs(t, err, archive.ErrArchiveNotFound)
}

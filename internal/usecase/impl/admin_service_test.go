package impl

import (
	"context"
	"testing"

	"rentease/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_ListUsers(t *testing.T) {
	store := newMemStore()
	media := &fakeMediaStore{}
	admin := NewAdminService(&fakeTxManager{store: store}, media, discardLogger())
	listings := NewListingService(&fakeTxManager{store: store}, media, fakeQRService{}, discardLogger())
	ctx := context.Background()

	users := &fakeUserRepo{store: store}
	alice := &entity.User{Name: "Alice", Email: "alice@example.com", Role: entity.RoleUser}
	bob := &entity.User{Name: "Bob", Email: "bob@example.com", Role: entity.RoleUser}
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	_, err := listings.Create(ctx, listingFixture(alice.ID))
	require.NoError(t, err)
	_, err = listings.Create(ctx, listingFixture(alice.ID))
	require.NoError(t, err)

	overviews, err := admin.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, overviews, 2)

	counts := make(map[string]int64, len(overviews))
	for _, overview := range overviews {
		counts[overview.User.Email] = overview.PostCount
	}
	assert.Equal(t, int64(2), counts["alice@example.com"])
	assert.Zero(t, counts["bob@example.com"])
}

func TestAdminService_DeleteUserCascades(t *testing.T) {
	store := newMemStore()
	media := &fakeMediaStore{}
	admin := NewAdminService(&fakeTxManager{store: store}, media, discardLogger())
	listings := NewListingService(&fakeTxManager{store: store}, media, fakeQRService{}, discardLogger())
	ctx := context.Background()

	users := &fakeUserRepo{store: store}
	alice := &entity.User{Name: "Alice", Email: "alice@example.com", Role: entity.RoleUser}
	bob := &entity.User{Name: "Bob", Email: "bob@example.com", Role: entity.RoleUser}
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	aliceListing, err := listings.Create(ctx, listingFixture(alice.ID))
	require.NoError(t, err)
	bobListing, err := listings.Create(ctx, listingFixture(bob.ID))
	require.NoError(t, err)

	require.NoError(t, admin.DeleteUser(ctx, alice.ID))

	_, err = users.FindByID(ctx, alice.ID)
	assert.Error(t, err)
	assert.Equal(t, aliceListing.Images, media.removedPaths())

	// Bob and his listing are untouched.
	_, err = users.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	remaining, err := listings.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, bobListing.ID, remaining[0].ID)
}

func TestAdminService_DeleteUnknownUserIsNoOp(t *testing.T) {
	media := &fakeMediaStore{}
	admin := NewAdminService(&fakeTxManager{store: newMemStore()}, media, discardLogger())

	require.NoError(t, admin.DeleteUser(context.Background(), uuid.New()))
	assert.Empty(t, media.removedPaths())
}

package service

import (
	"context"
	"testing"
	"time"

	"blogicum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile_IncludesDraftsAndScheduled(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	ctx := context.Background()

	author := f.user(t, "alice")
	f.post(t, author.ID, func(p *models.Post) { p.Title = "live" })
	f.post(t, author.ID, func(p *models.Post) {
		p.Title = "draft"
		p.IsPublished = false
	})
	f.post(t, author.ID, func(p *models.Post) {
		p.Title = "scheduled"
		p.PubDate = time.Now().UTC().Add(24 * time.Hour)
	})

	user, posts, err := f.users.GetProfile(ctx, "alice", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, author.ID, user.ID)
	assert.Len(t, posts, 3)
}

func TestGetProfile_UnknownUsername(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	_, _, err := f.users.GetProfile(context.Background(), "nobody", 10, 0)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestUpdateProfile_TargetsRequesterOnly(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	ctx := context.Background()

	me := f.user(t, "bob")
	other := f.user(t, "carol")

	first := "Robert"
	updated, err := f.users.UpdateProfile(ctx, UpdateProfileInput{
		UserID:    me.ID,
		Username:  "bobby",
		FirstName: &first,
	})
	require.NoError(t, err)
	assert.Equal(t, "bobby", updated.Username)
	assert.Equal(t, "Robert", updated.FirstName)

	var untouched models.User
	require.NoError(t, f.db.First(&untouched, other.ID).Error)
	assert.Equal(t, "carol", untouched.Username)
}

func TestUpdateProfile_RejectsInvalidUsername(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	me := f.user(t, "dan")

	_, err := f.users.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:   me.ID,
		Username: "-bad-",
	})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeValidation))
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	ctx := context.Background()

	victim := f.user(t, "erin")
	f.post(t, victim.ID)

	require.NoError(t, f.users.DeleteUser(ctx, victim.ID))

	var userCount, postCount int64
	require.NoError(t, f.db.Model(&models.User{}).Where("id = ?", victim.ID).Count(&userCount).Error)
	require.NoError(t, f.db.Model(&models.Post{}).Where("author_id = ?", victim.ID).Count(&postCount).Error)
	assert.Zero(t, userCount)
	assert.Zero(t, postCount)

	err := f.users.DeleteUser(ctx, victim.ID)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

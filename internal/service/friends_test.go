package service

import (
	"context"
	"errors"
	"testing"
	"royale-tracker/internal/api"
	"royale-tracker/internal/repository"
)

func TestAddFriend(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createAccount(t, "acct-1", "#PLAYER")

	friend, err := env.friendsS.AddFriend(ctx, "acct-1", "#RIVAL")
	if err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}
	if friend.FriendTag != "#RIVAL" || friend.FriendName == "" {
		t.Errorf("friend = %+v, want canonical tag and a display name", friend)
	}

	// rating state is initialized so the first sync starts from the default
	rating := env.ratingFor(t, "acct-1")
	if rating.EloRating != 1500 {
		t.Errorf("rating = %d, want 1500", rating.EloRating)
	}
}

func TestAddFriend_UnknownTag(t *testing.T) {
	env := newTestEnv(t)
	env.createAccount(t, "acct-1", "#PLAYER")
	env.source.infoErr["#NOPE"] = &api.Error{StatusCode: 404, Body: "notFound"}

	_, err := env.friendsS.AddFriend(context.Background(), "acct-1", "#NOPE")
	if !errors.Is(err, ErrInvalidPlayerTag) {
		t.Errorf("err = %v, want ErrInvalidPlayerTag", err)
	}
}

func TestAddFriend_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createAccount(t, "acct-1", "#PLAYER")

	if _, err := env.friendsS.AddFriend(ctx, "acct-1", "#RIVAL"); err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}
	_, err := env.friendsS.AddFriend(ctx, "acct-1", "#RIVAL")
	if !errors.Is(err, repository.ErrAlreadyTracking) {
		t.Errorf("err = %v, want ErrAlreadyTracking", err)
	}
}

func TestRemoveFriend(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createAccount(t, "acct-1", "#PLAYER")

	friend, err := env.friendsS.AddFriend(ctx, "acct-1", "#RIVAL")
	if err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}
	if err := env.friendsS.RemoveFriend(ctx, "acct-1", friend.ID); err != nil {
		t.Fatalf("RemoveFriend failed: %v", err)
	}

	friends, err := env.friendsS.ListFriends(ctx, "acct-1")
	if err != nil {
		t.Fatalf("ListFriends failed: %v", err)
	}
	if len(friends) != 0 {
		t.Errorf("friends = %v, want empty", friends)
	}
}

func TestValidatePlayer(t *testing.T) {
	env := newTestEnv(t)
	env.source.infoErr["#BAD"] = &api.Error{StatusCode: 404, Body: "notFound"}

	info, err := env.friendsS.ValidatePlayer(context.Background(), "#GOOD")
	if err != nil {
		t.Fatalf("ValidatePlayer failed: %v", err)
	}
	if info.Tag != "#GOOD" {
		t.Errorf("tag = %s, want #GOOD", info.Tag)
	}

	_, err = env.friendsS.ValidatePlayer(context.Background(), "#BAD")
	if !errors.Is(err, ErrInvalidPlayerTag) {
		t.Errorf("err = %v, want ErrInvalidPlayerTag", err)
	}
}

package repository

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicateUser         = errors.New("username or email already in use")
	ErrPostNotFound          = errors.New("post not found")
	ErrTaskNotFound          = errors.New("task not found")
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrPersonalityNotFound   = errors.New("personality not found")
	ErrAlreadyFriends        = errors.New("users are already friends")
	ErrFriendRequestExists   = errors.New("friend request already sent")
	ErrFriendRequestNotFound = errors.New("friend request not found")
)

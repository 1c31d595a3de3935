package models

// FriendRequests lists pending requests in both directions.
type FriendRequests struct {
	Received []PublicUser `json:"received"`
	Sent     []PublicUser `json:"sent"`
}

const (
	FriendActionAccept = "accept"
	FriendActionReject = "reject"
)

type FriendResponse struct {
	Action string `json:"action"`
}

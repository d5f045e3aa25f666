package users

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const usersCollection = "users"

// FirestoreStore handles Firestore operations for user documents.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore store wrapper.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	if client == nil {
		return nil
	}
	return &FirestoreStore{client: client}
}

// GetUser retrieves a user document.
// Path: /users/{userId}
func (f *FirestoreStore) GetUser(ctx context.Context, userID string) (*User, error) {
	if f == nil || f.client == nil {
		return nil, status.Error(codes.Internal, "firestore client is nil")
	}
	if userID == "" {
		return nil, status.Error(codes.InvalidArgument, "userID must be non-empty")
	}

	doc, err := f.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, status.Errorf(codes.NotFound, "user not found: %s", userID)
		}
		return nil, status.Errorf(codes.Internal, "failed to get user %s: %v", userID, err)
	}

	var user User
	if err := doc.DataTo(&user); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to parse user %s: %v", userID, err)
	}

	return &user, nil
}

// CreateUser creates a user document after signup.
// Uses Create for idempotency - a retried signup bootstrap is not an error.
func (f *FirestoreStore) CreateUser(ctx context.Context, user *User) error {
	if f == nil || f.client == nil {
		return status.Error(codes.Internal, "firestore client is nil")
	}
	if user == nil || user.ID == "" || user.Email == "" {
		return status.Error(codes.InvalidArgument, "user ID and email must be non-empty")
	}

	_, err := f.client.Collection(usersCollection).Doc(user.ID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil // Idempotent - already bootstrapped
		}
		return status.Errorf(codes.Internal, "failed to create user %s: %v", user.ID, err)
	}

	return nil
}

// UpdateUser updates the editable fields of a user document.
func (f *FirestoreStore) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) error {
	if f == nil || f.client == nil {
		return status.Error(codes.Internal, "firestore client is nil")
	}
	if userID == "" {
		return status.Error(codes.InvalidArgument, "userID must be non-empty")
	}

	updates := make([]firestore.Update, 0, 3)
	if req.Name != "" {
		updates = append(updates, firestore.Update{Path: "name", Value: req.Name})
	}
	if req.AvatarURL != "" {
		updates = append(updates, firestore.Update{Path: "avatar_url", Value: req.AvatarURL})
	}
	if req.Profile != nil {
		updates = append(updates, firestore.Update{Path: "profile", Value: req.Profile})
	}

	if len(updates) == 0 {
		return status.Error(codes.InvalidArgument, "no updatable fields provided")
	}

	_, err := f.client.Collection(usersCollection).Doc(userID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return status.Errorf(codes.NotFound, "user not found: %s", userID)
		}
		return status.Errorf(codes.Internal, "failed to update user %s: %v", userID, err)
	}

	return nil
}

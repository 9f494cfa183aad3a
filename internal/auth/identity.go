package auth

import "context"

// Identity is what a successful authentication binds to the request.
// Mobile is set only by the mobile header variant; SessionID only by
// bearer_session; Token by both bearer variants.
type Identity struct {
	UserID    string
	Email     string
	Mobile    string
	SessionID string
	Token     string
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}

package booking

import "context"

type contextKey string

const guestKey contextKey = "guestID"

func NewContextWithGuestID(ctx context.Context, guestID string) context.Context {
	return context.WithValue(ctx, guestKey, guestID)
}

func GuestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(guestKey).(string)

	return id, ok && id != ""
}

package shared

import "context"

// DefaultActor is recorded for every change until authentication exists.
const DefaultActor = "admin"

type sessionContextKey struct{}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// ActorFromContext names the user performing the request.
func ActorFromContext(ctx context.Context) string {
	if sess := SessionFromContext(ctx); sess != nil && sess.User() != "" {
		return sess.User()
	}
	return DefaultActor
}

package session

// Repo persists sessions across restarts. Implementations return
// errs.ErrSessionNotFound from Get when the session does not exist.
type Repo interface {
	Upsert(sessionID string, session Session) error
	Get(sessionID string) (Session, error)
	Delete(sessionID string) error
}

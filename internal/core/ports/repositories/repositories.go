package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container at startup.
type RepositoryProvider struct {
	UserRepo         UserRepository
	CommentRepo      CommentRepository
	RefreshTokenRepo RefreshTokenRepository
}

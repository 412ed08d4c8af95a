package services

// ServiceContainer holds instances of all application services. Handlers
// receive this at route registration time.
type ServiceContainer struct {
	User       UserSvcFacade
	Token      TokenSvcFacade
	Comment    CommentSvcFacade
	Authorizer AuthorizerSvcFacade
}

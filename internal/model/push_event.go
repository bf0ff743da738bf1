package model

// PushEvent is the provider-independent form of a push webhook.
type PushEvent struct {
	Owner     string
	Name      string
	Ref       string
	CommitSHA string
	// PresentedSecret is the secret or signature the sender supplied, with any
	// scheme prefix removed. It may be empty.
	PresentedSecret string
}

// RepoName returns the "owner/name" key used to look up the repository.
func (e PushEvent) RepoName() string {
	return e.Owner + "/" + e.Name
}

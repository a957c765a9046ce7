package model

import "fmt"

// PullRequest identifies the pull request under review
type PullRequest struct {
	Owner  string
	Repo   string
	Number int
	Title  string
}

// FullName returns "owner/repo"
func (x *PullRequest) FullName() string {
	return x.Owner + "/" + x.Repo
}

func (x *PullRequest) String() string {
	return fmt.Sprintf("%s#%d", x.FullName(), x.Number)
}

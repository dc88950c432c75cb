package jobsource

import "time"

// Job is a job posting as delivered by the remote source. Postings are
// issue-shaped: free-text labels carry the modality, level and technology
// information. The client never mutates a Job, it only reads it.
type Job struct {
	ID        int64     `json:"id"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Labels    []Label   `json:"labels"`
	State     string    `json:"state"`
	Comments  int       `json:"comments"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	URL       string    `json:"url"`
	HTMLURL   string    `json:"html_url"`

	User       Account    `json:"user"`
	Repository Repository `json:"repository"`
}

// Label is an unstructured tag on a posting.
type Label struct {
	Name string `json:"name"`
}

// Account identifies the posting author or an organization.
type Account struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Repository is the provenance of a posting.
type Repository struct {
	Name         string  `json:"name"`
	FullName     string  `json:"full_name"`
	Organization Account `json:"organization"`
}

// PageInfo carries pagination metadata delivered via response headers,
// when the source includes it.
type PageInfo struct {
	TotalPages   int
	TotalResults int
	CurrentPage  int
}

// Query holds optional passthrough parameters for the job source.
type Query struct {
	Term   string // free-text term
	Label  string // label filter
	Org    string // organization login
	Author string // posting author login
}

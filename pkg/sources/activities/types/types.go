package types

const (
	TypeVote    = "producthunt:vote"
	TypeComment = "producthunt:comment"
)

type Member struct {
	Twitter string `json:"twitter,omitempty"`
}

// Activity is a single engagement event in the analytics workspace.
type Activity struct {
	Title        string   `json:"title"`
	Tags         []string `json:"tags"`
	ActivityType string   `json:"activity_type"`
	// Key is unique per workspace, the API rejects a second activity with the same key.
	Key         string `json:"key"`
	OccurredAt  string `json:"occurred_at"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
	LinkText    string `json:"link_text,omitempty"`
	Member      Member `json:"member"`
}

// Identity ties the activity to a member profile on the source platform.
type Identity struct {
	Source     string `json:"source"`
	SourceHost string `json:"source_host"`
	Username   string `json:"username"`
	URL        string `json:"url,omitempty"`
	UID        string `json:"uid"`
}

type Record struct {
	Activity Activity `json:"activity"`
	Identity Identity `json:"identity"`
}

func (r Record) Key() string {
	return r.Activity.Key
}

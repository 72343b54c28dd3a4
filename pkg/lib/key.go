package lib

import "fmt"

// ActivityKey is the idempotency key of an activity.
// It only depends on the source, the kind of activity and the upstream ID,
// so re-syncing an overlapping window yields the same keys.
type ActivityKey struct {
	Source string
	Kind   string
	ID     string
}

func NewActivityKey(source, kind string, id any) ActivityKey {
	return ActivityKey{
		Source: source,
		Kind:   kind,
		ID:     fmt.Sprint(id),
	}
}

func (k ActivityKey) String() string {
	return fmt.Sprintf("%s-%s-%s", k.Source, k.Kind, k.ID)
}

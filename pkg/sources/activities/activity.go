package activities

import (
	"strconv"
	"time"

	"github.com/defeedco/orbit-producthunt/pkg/lib"
	"github.com/defeedco/orbit-producthunt/pkg/sources/activities/types"
	"github.com/defeedco/orbit-producthunt/pkg/sources/producthunt"
)

const (
	keySource = "producthunt"

	sourceName = "Product Hunt"
	sourceHost = "producthunt.com"
	channelTag = "channel:producthunt"

	commentLinkText = "View comment on Product Hunt"

	// Millisecond precision, always UTC.
	occurredAtLayout = "2006-01-02T15:04:05.000Z"
)

func FromVote(v *producthunt.Vote) types.Record {
	return types.Record{
		Activity: types.Activity{
			Title:        "Upvoted on Product Hunt",
			Tags:         []string{channelTag},
			ActivityType: types.TypeVote,
			Key:          VoteKey(v.ID),
			OccurredAt:   formatTime(v.CreatedAt),
			Member:       types.Member{Twitter: v.User.TwitterUsername},
		},
		Identity: identity(v.User),
	}
}

func FromComment(c *producthunt.Comment) types.Record {
	description, err := lib.HTMLToText(c.Body)
	if err != nil {
		description = c.Body
	}

	return types.Record{
		Activity: types.Activity{
			Title:        "Commented on Product Hunt",
			Tags:         []string{channelTag},
			ActivityType: types.TypeComment,
			Key:          CommentKey(c.ID),
			OccurredAt:   formatTime(c.CreatedAt),
			Description:  description,
			Link:         c.URL,
			LinkText:     commentLinkText,
			Member:       types.Member{Twitter: c.User.TwitterUsername},
		},
		Identity: identity(c.User),
	}
}

func FromVotes(votes []*producthunt.Vote) []types.Record {
	out := make([]types.Record, 0, len(votes))
	for _, v := range votes {
		out = append(out, FromVote(v))
	}
	return out
}

func FromComments(comments []*producthunt.Comment) []types.Record {
	out := make([]types.Record, 0, len(comments))
	for _, c := range comments {
		out = append(out, FromComment(c))
	}
	return out
}

func VoteKey(id int64) string {
	return lib.NewActivityKey(keySource, "vote", id).String()
}

func CommentKey(id int64) string {
	return lib.NewActivityKey(keySource, "comment", id).String()
}

func identity(u producthunt.User) types.Identity {
	return types.Identity{
		Source:     sourceName,
		SourceHost: sourceHost,
		Username:   u.Username,
		URL:        u.ProfileURL,
		UID:        strconv.FormatInt(u.ID, 10),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(occurredAtLayout)
}

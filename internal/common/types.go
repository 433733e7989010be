package common

// EventKind is the interaction that produced a notification.
type EventKind string

const (
	KindLike    EventKind = "like"
	KindComment EventKind = "comment"
	KindReply   EventKind = "reply"
	KindFollow  EventKind = "follow"
)

func (k EventKind) String() string {
	return string(k)
}

func (k EventKind) IsValid() bool {
	switch k {
	case KindLike, KindComment, KindReply, KindFollow:
		return true
	}
	return false
}

// RequiresSubject reports whether the kind refers to a post.
func (k EventKind) RequiresSubject() bool {
	return k == KindLike || k == KindComment || k == KindReply
}

// AllSelector targets every event of the recipient in mark-read and delete.
const AllSelector = "all"

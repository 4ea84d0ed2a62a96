package compare

import "fmt"

// NoticeKind classifies the outcome of Store.Add.
type NoticeKind int

const (
	// NoticeAdded means the broker was added.
	NoticeAdded NoticeKind = iota
	// NoticeFull means the selection already held MaxSelection brokers.
	NoticeFull
	// NoticeDuplicate means the broker was already selected.
	NoticeDuplicate
)

// String returns a short name for the kind.
func (k NoticeKind) String() string {
	switch k {
	case NoticeAdded:
		return "added"
	case NoticeFull:
		return "full"
	case NoticeDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k NoticeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *NoticeKind) UnmarshalText(text []byte) error {
	for _, v := range []NoticeKind{NoticeAdded, NoticeFull, NoticeDuplicate} {
		if string(text) == v.String() {
			*k = v
			return nil
		}
	}
	return fmt.Errorf("unknown notice kind %q", string(text))
}

// Notice is the user-facing outcome of an Add.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// Changed reports whether the selection was modified.
func (n Notice) Changed() bool {
	return n.Kind == NoticeAdded
}

func addedNotice(name string) Notice {
	return Notice{Kind: NoticeAdded, Message: fmt.Sprintf("%s added to your comparison", name)}
}

func fullNotice() Notice {
	return Notice{Kind: NoticeFull, Message: fmt.Sprintf("You can compare up to %d brokers at a time", MaxSelection)}
}

func duplicateNotice(name string) Notice {
	return Notice{Kind: NoticeDuplicate, Message: fmt.Sprintf("%s is already in your comparison", name)}
}

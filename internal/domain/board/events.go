package board

// Kind tags an inbound board event. Values are the wire action types the
// board service sends; unknown values survive parsing and are rejected by
// the event router, not the decoder.
type Kind string

const (
	KindLabelAdded     Kind = "addLabelToCard"
	KindLabelRemoved   Kind = "removeLabelFromCard"
	KindCardCreated    Kind = "createCard"
	KindCardUpdated    Kind = "updateCard"
	KindCardDeleted    Kind = "deleteCard"
	KindCommentAdded   Kind = "commentCard"
	KindCommentUpdated Kind = "updateComment"
	KindCommentDeleted Kind = "deleteComment"
)

type BoardRef struct {
	ID   string
	Name string
}

type ListRef struct {
	ID   string
	Name string
}

type CardRef struct {
	ID        string
	ShortLink string
	Name      string
}

// URL returns the canonical card link for the referenced card.
func (c CardRef) URL() string {
	return CardURL(c.ShortLink, c.Name)
}

// Event is a parsed inbound notification. Only the fields relevant to the
// event's kind are populated.
type Event struct {
	Kind    Kind
	Actor   string
	Card    CardRef
	Board   BoardRef
	Label   string
	Comment string

	// ListBefore/ListAfter are set on a card-updated event that represents
	// a move between lists.
	ListBefore *ListRef
	ListAfter  *ListRef

	// PosChanged marks a card-updated event that only reordered the card
	// within its list.
	PosChanged bool
}

// IsMove reports whether a card-updated event carries a list transition.
func (e *Event) IsMove() bool {
	return e.ListBefore != nil || e.ListAfter != nil
}

package trello

// boardPayload is a board as the Trello REST API returns it.
type boardPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// listPayload is a list as the Trello REST API returns it.
type listPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	BoardID string `json:"idBoard"`
}

// labelPayload is the nested label object carried on cards.
type labelPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// cardPayload is a card as the Trello REST API returns it.
type cardPayload struct {
	ID        string         `json:"id"`
	ShortLink string         `json:"shortLink"`
	Name      string         `json:"name"`
	Desc      string         `json:"desc"`
	ListID    string         `json:"idList"`
	BoardID   string         `json:"idBoard"`
	Labels    []labelPayload `json:"labels"`
}

// searchPayload is the envelope of the /search endpoint.
type searchPayload struct {
	Cards []cardPayload `json:"cards"`
}

// errorPayload is the body Trello returns on non-2xx responses.
type errorPayload struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

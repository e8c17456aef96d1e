package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"boardsync/internal/domain/board"
	sharedConfig "boardsync/internal/shared/config"
	appLogger "boardsync/internal/shared/logger"
)

// Client provides Trello REST API operations. It implements the board.Client
// port used by the reconciliation layer. Only the boards of the configured
// organisations are visible through it.
type Client struct {
	config     sharedConfig.TrelloConfig
	httpClient *http.Client
	baseURL    string
	logger     appLogger.Interface
}

// NewClient creates a new Trello API client.
func NewClient(config sharedConfig.TrelloConfig, log appLogger.Interface) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://api.trello.com/1",
		logger:  log.Named("trello"),
	}
}

// GetBoards returns the boards of all configured organisations.
func (c *Client) GetBoards(ctx context.Context) ([]board.Board, error) {
	var boards []board.Board
	for _, org := range c.config.Organisations {
		var payload []boardPayload
		path := fmt.Sprintf("/organizations/%s/boards", url.PathEscape(org))
		if err := c.get(ctx, path, nil, &payload); err != nil {
			return nil, fmt.Errorf("failed to list boards of %s: %w", org, err)
		}
		for _, b := range payload {
			boards = append(boards, board.Board{ID: b.ID, Name: b.Name})
		}
	}
	return boards, nil
}

// GetCards returns all cards of a board.
func (c *Client) GetCards(ctx context.Context, boardID string) ([]board.Card, error) {
	var payload []cardPayload
	path := fmt.Sprintf("/boards/%s/cards", url.PathEscape(boardID))
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to list cards of board %s: %w", boardID, err)
	}

	cards := make([]board.Card, 0, len(payload))
	for _, p := range payload {
		cards = append(cards, toDomainCard(p))
	}
	return cards, nil
}

// GetLists returns all lists of a board.
func (c *Client) GetLists(ctx context.Context, boardID string) ([]board.List, error) {
	var payload []listPayload
	path := fmt.Sprintf("/boards/%s/lists", url.PathEscape(boardID))
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to list lists of board %s: %w", boardID, err)
	}

	lists := make([]board.List, 0, len(payload))
	for _, p := range payload {
		lists = append(lists, board.List{ID: p.ID, Name: p.Name, BoardID: p.BoardID})
	}
	return lists, nil
}

// SearchCards searches cards across the visible boards.
func (c *Client) SearchCards(ctx context.Context, query string) ([]board.Card, error) {
	params := url.Values{
		"query":      {query},
		"modelTypes": {"cards"},
	}
	if len(c.config.Organisations) > 0 {
		params.Set("idOrganizations", strings.Join(c.config.Organisations, ","))
	}

	var payload searchPayload
	if err := c.get(ctx, "/search", params, &payload); err != nil {
		return nil, fmt.Errorf("failed to search cards: %w", err)
	}

	cards := make([]board.Card, 0, len(payload.Cards))
	for _, p := range payload.Cards {
		cards = append(cards, toDomainCard(p))
	}
	return cards, nil
}

// CreateCard creates a card on the given list.
func (c *Client) CreateCard(ctx context.Context, listID, name, desc string) (*board.Card, error) {
	params := url.Values{
		"idList": {listID},
		"name":   {name},
		"desc":   {desc},
	}

	var payload cardPayload
	if err := c.do(ctx, http.MethodPost, "/cards", params, &payload); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	c.logger.Infow("created card", "card_id", payload.ID, "list_id", listID, "name", name)
	card := toDomainCard(payload)
	return &card, nil
}

// UpdateCard sets a card's name and description.
func (c *Client) UpdateCard(ctx context.Context, cardID, name, desc string) error {
	params := url.Values{
		"name": {name},
		"desc": {desc},
	}

	path := fmt.Sprintf("/cards/%s", url.PathEscape(cardID))
	if err := c.do(ctx, http.MethodPut, path, params, nil); err != nil {
		return fmt.Errorf("failed to update card %s: %w", cardID, err)
	}

	c.logger.Debugw("updated card", "card_id", cardID, "name", name)
	return nil
}

// AddComment posts a comment on a card.
func (c *Client) AddComment(ctx context.Context, cardID, text string) error {
	params := url.Values{
		"text": {text},
	}

	path := fmt.Sprintf("/cards/%s/actions/comments", url.PathEscape(cardID))
	if err := c.do(ctx, http.MethodPost, path, params, nil); err != nil {
		return fmt.Errorf("failed to comment on card %s: %w", cardID, err)
	}

	c.logger.Debugw("added comment", "card_id", cardID)
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, out)
}

// do performs an authenticated request. Trello takes its credentials and
// all write parameters as query parameters.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("key", c.config.APIKey)
	params.Set("token", c.config.Token)

	requestURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorPayload
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("api error (status %d): %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("api error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func toDomainCard(p cardPayload) board.Card {
	labels := make([]string, 0, len(p.Labels))
	for _, l := range p.Labels {
		labels = append(labels, l.Name)
	}
	return board.Card{
		ID:        p.ID,
		ShortLink: p.ShortLink,
		Name:      p.Name,
		Desc:      p.Desc,
		ListID:    p.ListID,
		BoardID:   p.BoardID,
		Labels:    labels,
	}
}

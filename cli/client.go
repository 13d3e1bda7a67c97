package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the Maitred API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	Restaurant string
	SessionID  string
	Token      string
}

// NewApiClient creates a new API client
func NewApiClient(sessionID string) *ApiClient {
	baseURL := os.Getenv("MAITRED_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	restaurant := os.Getenv("MAITRED_RESTAURANT")
	if restaurant == "" {
		restaurant = "demo"
	}

	return &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL:    baseURL,
		Restaurant: restaurant,
		SessionID:  sessionID,
		Token:      os.Getenv("MAITRED_TOKEN"),
	}
}

// CheckHealth checks if the API is up and running
func (c *ApiClient) CheckHealth() (bool, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API health check failed with status code: %d", resp.StatusCode)
	}

	return true, nil
}

// ChatMessage is one prior turn replayed to the server for context
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TurnRequest is one chat turn submitted for resolution
type TurnRequest struct {
	Restaurant string        `json:"restaurant"`
	SessionID  string        `json:"session_id"`
	Role       string        `json:"role"`
	Message    string        `json:"message"`
	History    []ChatMessage `json:"history,omitempty"`
}

// PendingAction is the typed action the engine proposed
type PendingAction struct {
	ID                   string          `json:"id"`
	Type                 string          `json:"type"`
	Data                 json.RawMessage `json:"data"`
	ConfirmationMessage  string          `json:"confirmation_message"`
	RequiresConfirmation bool            `json:"requires_confirmation"`
	FallbackOptions      []string        `json:"fallback_options,omitempty"`
}

// TurnMetrics is the confidence verdict attached to a turn
type TurnMetrics struct {
	AdjustedConfidence float64 `json:"adjusted_confidence"`
	ReliabilityScore   float64 `json:"reliability_score"`
	RecommendedAction  string  `json:"recommended_action"`
}

// TurnResponse is the engine's answer to one turn
type TurnResponse struct {
	Intent  string         `json:"intent"`
	Action  *PendingAction `json:"action,omitempty"`
	Metrics TurnMetrics    `json:"metrics"`
	Reply   string         `json:"reply,omitempty"`
}

// SubmitTurn sends one chat message through the resolution engine
func (c *ApiClient) SubmitTurn(message string, history []ChatMessage) (*TurnResponse, error) {
	req := TurnRequest{
		Restaurant: c.Restaurant,
		SessionID:  c.SessionID,
		Role:       "user",
		Message:    message,
		History:    history,
	}

	var resp TurnResponse
	if err := c.post("/api/v1/chat/turns", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OutcomeRequest reports how the user settled a pending action
type OutcomeRequest struct {
	SessionID           string  `json:"session_id"`
	ActionID            string  `json:"action_id"`
	ActionType          string  `json:"action_type"`
	PredictedConfidence float64 `json:"predicted_confidence"`
	Resolution          string  `json:"resolution"`
}

// ReportOutcome tells the server whether the action was confirmed
func (c *ApiClient) ReportOutcome(action *PendingAction, confidence float64, resolution string) error {
	req := OutcomeRequest{
		SessionID:           c.SessionID,
		ActionID:            action.ID,
		ActionType:          action.Type,
		PredictedConfidence: confidence,
		Resolution:          resolution,
	}
	return c.post("/api/v1/chat/outcomes", req, nil)
}

// MenuItem is one catalog entry
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	DietaryTags []string `json:"dietary_tags,omitempty"`
	Available   bool     `json:"available"`
}

// GetMenu fetches the restaurant's menu snapshot
func (c *ApiClient) GetMenu() ([]MenuItem, error) {
	var payload struct {
		Menu []MenuItem `json:"menu"`
	}
	url := fmt.Sprintf("/api/v1/menu?restaurant=%s", c.Restaurant)
	if err := c.get(url, &payload); err != nil {
		return nil, err
	}
	return payload.Menu, nil
}

// Suggestion is one ranked upsell suggestion
type Suggestion struct {
	Type       string  `json:"type"`
	Priority   int     `json:"priority"`
	Message    string  `json:"message"`
	Confidence float64 `json:"confidence"`
}

// GetRecommendations fetches the ranked suggestions for this session
func (c *ApiClient) GetRecommendations() ([]Suggestion, error) {
	var payload struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	url := fmt.Sprintf("/api/v1/recommendations?restaurant=%s&session_id=%s", c.Restaurant, c.SessionID)
	if err := c.get(url, &payload); err != nil {
		return nil, err
	}
	return payload.Suggestions, nil
}

func (c *ApiClient) post(path string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", c.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *ApiClient) get(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", c.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(raw))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

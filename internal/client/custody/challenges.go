package custody

import (
	"context"
	"fmt"
	"time"

	httpClient "github.com/keygrant/keygrant-api/internal/client/http"
	"github.com/keygrant/keygrant-api/internal/services"
)

// challengeRequest is the wire shape of a delegation-challenge request.
type challengeRequest struct {
	WalletID        string   `json:"walletId"`
	UserID          string   `json:"userId"`
	ReferenceID     string   `json:"referenceId"`
	Kind            string   `json:"kind"`
	AllowedActions  []string `json:"allowedActions"`
	SpendingLimit   int64    `json:"spendingLimit"`
	DurationSeconds int64    `json:"durationSeconds"`
}

// ChallengeResponse represents the response when creating a delegation challenge
type ChallengeResponse struct {
	Data struct {
		ChallengeID string `json:"challengeId"`
	} `json:"data"`
}

// ChallengeStatusResponse represents the response when reading a challenge
type ChallengeStatusResponse struct {
	Data struct {
		ChallengeID     string    `json:"challengeId"`
		Status          string    `json:"status"`
		DelegateAddress string    `json:"delegateAddress"`
		CreateDate      time.Time `json:"createDate"`
	} `json:"data"`
}

// CreateDelegationChallenge asks the custody provider to start the
// out-of-band approval flow (PIN entry) that binds a delegate signer to the
// wallet. The provider confirms asynchronously via webhook.
func (c *Client) CreateDelegationChallenge(ctx context.Context, params services.CustodyChallengeParams) (*services.CustodyChallengeHandle, error) {
	req := challengeRequest{
		WalletID:        params.WalletID,
		UserID:          params.UserID,
		ReferenceID:     params.SessionKeyID.String(),
		Kind:            params.RequestedKind,
		AllowedActions:  params.AllowedActions,
		SpendingLimit:   params.SpendingLimit,
		DurationSeconds: params.DurationSeconds,
	}

	resp, err := c.httpClient.Post(
		ctx,
		"/v1/delegations/challenge",
		req,
		httpClient.WithBearerToken(c.apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create delegation challenge: %w", err)
	}

	var response ChallengeResponse
	if err := c.httpClient.ProcessJSONResponse(resp, &response); err != nil {
		return nil, fmt.Errorf("failed to process delegation challenge response: %w", err)
	}

	return &services.CustodyChallengeHandle{ChallengeID: response.Data.ChallengeID}, nil
}

// GetChallenge reads the current state of a challenge. Used for reconciling
// missed webhooks.
func (c *Client) GetChallenge(ctx context.Context, challengeID string) (*ChallengeStatusResponse, error) {
	resp, err := c.httpClient.Get(
		ctx,
		"/v1/delegations/challenge/"+challengeID,
		httpClient.WithBearerToken(c.apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get delegation challenge: %w", err)
	}

	var response ChallengeStatusResponse
	if err := c.httpClient.ProcessJSONResponse(resp, &response); err != nil {
		return nil, fmt.Errorf("failed to process delegation challenge response: %w", err)
	}

	return &response, nil
}

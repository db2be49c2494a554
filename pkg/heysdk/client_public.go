package heysdk

import (
	"context"
	"net/http"
	"strconv"
)

// GetJWKS retrieves the keys session tokens are signed with.
func (c *SDKClient) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/.well-known/jwks.json", nil, nil)
	if err != nil {
		return nil, err
	}

	var jwks JWKSResponse
	if err := decodeJSON(resp, &jwks, http.StatusOK); err != nil {
		return nil, err
	}

	return &jwks, nil
}

// GetGuideWeek returns the development guide for week 1..40.
func (c *SDKClient) GetGuideWeek(ctx context.Context, week int) (*GuideWeek, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/guide/weeks/"+strconv.Itoa(week), nil, nil)
	if err != nil {
		return nil, err
	}

	var w GuideWeek
	if err := decodeJSON(resp, &w, http.StatusOK); err != nil {
		return nil, err
	}

	return &w, nil
}

func (c *SDKClient) GetMilestones(ctx context.Context) ([]Milestone, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/guide/milestones", nil, nil)
	if err != nil {
		return nil, err
	}

	var m MilestonesResponse
	if err := decodeJSON(resp, &m, http.StatusOK); err != nil {
		return nil, err
	}

	return m.Milestones, nil
}

package geofusion

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
)

const (
	segmentationProbsPath = "/seg-intra-service/public/enrichPoint"
	segmentationMaxPath   = "/seg-intra-service/public/enrichPointMax"
)

type segmentationProbsResponse struct {
	Probs map[string]float64 `json:"probs"`
}

type segmentationMaxResponse struct {
	Max string `json:"max"`
}

// SegmentationProbs returns the intra-urban cluster membership probabilities
// for a coordinate.
func (c *httpClient) SegmentationProbs(ctx context.Context, lat, lng float64) (map[string]float64, error) {
	body, err := c.getJSON(ctx, segmentationProbsPath, coordQuery(lat, lng))
	if err != nil {
		return nil, err
	}

	var resp segmentationProbsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "geofusion: parse segmentation probs")
	}
	return resp.Probs, nil
}

// SegmentationMax returns the most likely intra-urban cluster for a
// coordinate. The API reports an empty max for points outside any cluster;
// the caller decides what that means.
func (c *httpClient) SegmentationMax(ctx context.Context, lat, lng float64) (string, error) {
	body, err := c.getJSON(ctx, segmentationMaxPath, coordQuery(lat, lng))
	if err != nil {
		return "", err
	}

	var resp segmentationMaxResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", eris.Wrap(err, "geofusion: parse segmentation max")
	}
	return resp.Max, nil
}

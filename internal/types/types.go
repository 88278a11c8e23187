package types

import (
	"github.com/DSchneidersAH/ai-fit-tool/internal/fit"
	"github.com/DSchneidersAH/ai-fit-tool/internal/render"
)

// AssessRequest represents the request structure for the assess endpoint
type AssessRequest struct {
	Values []int `json:"values" binding:"required"`
	Public bool  `json:"public"`
}

// AssessResponse carries the ranked fit scores plus the chart geometry the
// client needs to draw the task against the reference profiles
type AssessResponse struct {
	Results []fit.FitResult `json:"results"`
	Best    fit.FitResult   `json:"best"`
	Chart   render.Chart    `json:"chart"`
}

// DimensionsResponse lists the rating axes and the scale sliders run on
type DimensionsResponse struct {
	Scale      fit.Scale       `json:"scale"`
	Dimensions []fit.Dimension `json:"dimensions"`
}

// ProfilesResponse lists the reference profiles on the canonical scale
type ProfilesResponse struct {
	Scale    fit.Scale     `json:"scale"`
	Profiles []fit.Profile `json:"profiles"`
}

package dto

import (
	"github.com/raceboard/backend/internal/lib/i18n"
	"github.com/raceboard/backend/internal/model"
	"github.com/raceboard/backend/internal/validation"
)

type GetLocationConfigsRequest struct {
	RaceType *model.RaceType `query:"c_race_type" json:"-" validate:"omitempty,race_type" doc:"Race type"`
}

func (r *GetLocationConfigsRequest) Validate() error {
	return validation.Validate(r)
}

type LocationConfigResponse struct {
	LocationConfigID int64   `json:"location_config_id" doc:"Location config id"`
	LocationID       int64   `json:"location_id" doc:"Location id"`
	Name             string  `json:"name" doc:"Location name"`
	Image            string  `json:"image" doc:"Location config image, base64"`
	Description      string  `json:"description" doc:"Location config description"`
	Length           float64 `json:"length" doc:"Location config length"`
	Difficulty       int     `json:"difficulty" doc:"Location config difficulty"`
}

func NewLocationConfigResponse(c *model.LocationConfig, loc i18n.Locale) LocationConfigResponse {
	return LocationConfigResponse{
		LocationConfigID: c.ID,
		LocationID:       c.LocationID,
		Name:             loc.Translate(c.Name),
		Image:            EncodeBinary(c.Image),
		Description:      loc.Translate(c.Description),
		Length:           c.Length,
		Difficulty:       c.Difficulty,
	}
}

func NewLocationConfigsResponse(configs []model.LocationConfig, loc i18n.Locale) []LocationConfigResponse {
	res := make([]LocationConfigResponse, 0, len(configs))
	for i := range configs {
		res = append(res, NewLocationConfigResponse(&configs[i], loc))
	}
	return res
}

package dto

import "github.com/raceboard/backend/internal/model"

type OrganizerEventYearsResponse struct {
	RaceType model.RaceType `json:"c_race_type" doc:"Race type (code)"`
	Years    []int          `json:"years" doc:"Event years, newest first"`
}

func NewOrganizerEventYearsResponse(groups []model.OrganizerEventYears) []OrganizerEventYearsResponse {
	res := make([]OrganizerEventYearsResponse, 0, len(groups))
	for _, g := range groups {
		years := g.Years
		if years == nil {
			years = []int{}
		}
		res = append(res, OrganizerEventYearsResponse{RaceType: g.RaceType, Years: years})
	}
	return res
}

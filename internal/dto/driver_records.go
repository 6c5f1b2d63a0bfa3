package dto

import (
	"github.com/raceboard/backend/internal/lib/i18n"
	"github.com/raceboard/backend/internal/model"
	"github.com/raceboard/backend/internal/validation"
)

type GetDriverRecordsRequest struct {
	DriverID int64           `param:"driver_id" json:"-" validate:"required,min=1" doc:"Driver id"`
	RaceType *model.RaceType `query:"c_race_type" json:"-" validate:"omitempty,race_type" doc:"Race type"`
	Year     *int            `query:"year" json:"-" validate:"required" doc:"Event year"`
}

func (r *GetDriverRecordsRequest) Validate() error {
	return validation.Validate(r)
}

// Filter converts the request. It must only be called after Validate succeeded.
func (r *GetDriverRecordsRequest) Filter() model.DriverRecordFilter {
	return model.DriverRecordFilter{RaceType: r.RaceType, Year: *r.Year}
}

// DriverRecordResponse is one best lap of a driver. Time attack and drag
// records share this shape.
type DriverRecordResponse struct {
	RaceType           model.RaceType `json:"c_race_type" doc:"Race type"`
	VehicleID          int64          `json:"vehicle_id" doc:"Vehicle id"`
	VehicleName        string         `json:"vehicle_name" doc:"Vehicle name"`
	LocationID         int64          `json:"location_id" doc:"Location id"`
	LocationName       string         `json:"location_name" doc:"Location name"`
	LocationConfigID   int64          `json:"location_config_id" doc:"Location config id"`
	LocationConfigName string         `json:"location_config_name" doc:"Location config name"`
	TiresID            *int64         `json:"tires_id" doc:"Tires id"`
	RoadCondition      int            `json:"c_road_condition" doc:"Road condition (code)"`
	TiresName          string         `json:"tires_name" doc:"Tires name, N/A when unknown"`
	LapTime            *string        `json:"lap_time" doc:"Lap time, zero-padded to 9 characters"`
}

func NewDriverRecordResponse(r *model.DriverRecord, loc i18n.Locale) DriverRecordResponse {
	return DriverRecordResponse{
		RaceType:           r.RaceType,
		VehicleID:          r.VehicleID,
		VehicleName:        r.VehicleName,
		LocationID:         r.LocationID,
		LocationName:       loc.Translate(r.LocationName),
		LocationConfigID:   r.LocationConfigID,
		LocationConfigName: loc.Translate(r.LocationConfigName),
		TiresID:            r.TiresID,
		RoadCondition:      r.RoadCondition,
		TiresName:          TiresName(r.TiresName),
		LapTime:            PadLapTime(r.LapTime),
	}
}

func NewDriverRecordsResponse(records []model.DriverRecord, loc i18n.Locale) []DriverRecordResponse {
	res := make([]DriverRecordResponse, 0, len(records))
	for i := range records {
		res = append(res, NewDriverRecordResponse(&records[i], loc))
	}
	return res
}

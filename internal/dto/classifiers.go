package dto

import "github.com/raceboard/backend/internal/model"

type ClassifierTypeResponse struct {
	Type int    `json:"type" doc:"Classifier type"`
	Name string `json:"name" doc:"Classifier type name"`
}

func NewClassifierTypesResponse(types []model.ClassifierType) []ClassifierTypeResponse {
	res := make([]ClassifierTypeResponse, 0, len(types))
	for _, t := range types {
		res = append(res, ClassifierTypeResponse{Type: t.Type, Name: t.Name})
	}
	return res
}

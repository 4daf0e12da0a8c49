package dto

import (
	"weekgrid/internal/domains/roster/model"
)

type AddPersonRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type PersonResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r *PersonResponse) FromModel(model model.Person) {
	r.ID = model.ID
	r.Name = model.Name
}

func FromModels(models []model.Person) []PersonResponse {
	responses := make([]PersonResponse, len(models))
	for i, mod := range models {
		responses[i].FromModel(mod)
	}

	return responses
}

type DeleteResponse struct {
	Ok bool `json:"ok"`
}

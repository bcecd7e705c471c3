package handler

type createOrgRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Website string `json:"website" validate:"omitempty,url"`
}

type updateOrgRequest struct {
	Name    string `json:"name" validate:"omitempty,min=2"`
	Website string `json:"website" validate:"omitempty,url"`
}

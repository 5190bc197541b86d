package models

type Category struct {
	Id          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

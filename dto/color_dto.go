package dto

type ColorDTO struct {
	ColorName string `json:"colorName"`
	HexCode   string `json:"hexCode"`
}

type ColorFieldsDTO struct {
	ColorName *string `json:"colorName"`
	HexCode   *string `json:"hexCode"`
}

type RemoveImageDTO struct {
	ImageUrl string `json:"imageUrl" binding:"required"`
}

type ConfirmDTO struct {
	Confirm bool `json:"confirm"`
}

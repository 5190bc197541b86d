package dto

type LoginDTO struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	ReturnTo string `json:"returnTo" form:"return_to"`
}

package dto

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email" example:"jane.doe@my.centennialcollege.ca"`
	Password    string `json:"password" binding:"required,min=8" example:"hunter2hunter2"`
	FirstName   string `json:"firstName" binding:"required,min=2,max=100" example:"Jane"`
	LastName    string `json:"lastName" binding:"required,min=2,max=100" example:"Doe"`
	Institution string `json:"institution" binding:"required" example:"Centennial College"`
	Program     string `json:"program" binding:"required" example:"Software Engineering Technology"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"3600"`
}

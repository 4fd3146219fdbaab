package dto

type SignupRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateTaskRequest struct {
	Title   string  `json:"title"`
	Details string  `json:"details"`
	Budget  float64 `json:"budget"`
}

type CreateOfferRequest struct {
	Amount  float64 `json:"amount"`
	Message string  `json:"message"`
}

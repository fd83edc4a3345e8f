package request_models

type RecommendRequest struct {
	Query  string `json:"query" binding:"required"`
	Domain string `json:"domain"`
	City   string `json:"city"`
	Limit  int    `json:"limit"`
}

package response_models

type Recommendation struct {
	Item       CatalogItem `json:"item"`
	Similarity float64     `json:"similarity"`
}

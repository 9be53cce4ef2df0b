package category

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

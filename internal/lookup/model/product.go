package model

// Record is one parsed CSV row. Values maps every header name to its trimmed
// value; Product is the typed projection of the conventional columns.
type Record struct {
	Values  map[string]string `json:"values"`
	Product Product           `json:"product"`
}

// Get returns the value stored under field and whether the column exists.
func (r Record) Get(field string) (string, bool) {
	v, ok := r.Values[field]
	return v, ok
}

// Product holds the conventional columns of a Record. Tags use the canonical
// column names the parser rewrites configured headers to.
type Product struct {
	Code        string `csv:"code" json:"code"`
	Name        string `csv:"name" json:"name"`
	Price       string `csv:"price" json:"price"`
	Description string `csv:"description" json:"description"`
	ImageURL    string `csv:"image" json:"image_url"`
}

// DisplayState is the product currently rendered in the details view.
type DisplayState struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

package catalog

// ProductsByWareIDsQuery searches the product index with a disjunctive ware id filter
const ProductsByWareIDsQuery = `
query productsByWareIds($query: String!, $first: Int!) {
  products(query: $query, first: $first) {
    nodes {
      id
      wareId
      title
      description
      descriptionEn
      descriptionRu
      descriptionUk
      upc
      slug
      trademark {
        description
        slug
      }
      images {
        original
        displayOrder
      }
    }
  }
}
`

type productNode struct {
	ID            string `json:"id"`
	WareID        int64  `json:"wareId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	DescriptionEN string `json:"descriptionEn"`
	DescriptionRU string `json:"descriptionRu"`
	DescriptionUK string `json:"descriptionUk"`
	UPC           string `json:"upc"`
	Slug          string `json:"slug"`
	Trademark     *struct {
		Description string `json:"description"`
		Slug        string `json:"slug"`
	} `json:"trademark"`
	Images []struct {
		Original     string `json:"original"`
		DisplayOrder int    `json:"displayOrder"`
	} `json:"images"`
}

type productsResult struct {
	Products struct {
		Nodes []productNode `json:"nodes"`
	} `json:"products"`
}

package types

type Filter struct {
	Limit          int
	Page           int
	Offset         int
	Search         string
	Sort           map[string]string
	Filter         map[string]interface{}
	WithPagination bool
}

// internal/workers/restaurants/list-tag-groups/models.go
package listtaggroups

type Input struct{}

type Output struct {
	Groups []Group `json:"groups"`
}

type Group struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Tags     []Tag  `json:"tags"`
}

type Tag struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

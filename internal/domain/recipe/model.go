package recipe

import (
	"strconv"
	"strings"

	"shelfkeeper/internal/domain/resource"
	"shelfkeeper/internal/domain/schema"
)

type Recipe struct {
	ID          int      `json:"id" doc:"Caller-assigned recipe id"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
}

var Kind = resource.Kind{
	Name:   "Recipe",
	Fields: schema.Fields("id", "name", "ingredients"),
}

func (r Recipe) DocumentKey() string { return strconv.Itoa(r.ID) }

// DocumentFields exposes ingredients joined by commas so filters can match the list as a whole.
func (r Recipe) DocumentFields() map[string]any {
	return map[string]any{"id": r.ID, "name": r.Name, "ingredients": strings.Join(r.Ingredients, ",")}
}

func (r Recipe) RecordID() int { return r.ID }

func (r Recipe) WithRecordID(id int) Recipe {
	r.ID = id
	return r
}

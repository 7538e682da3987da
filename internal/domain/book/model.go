package book

import (
	"strconv"

	"shelfkeeper/internal/domain/resource"
	"shelfkeeper/internal/domain/schema"
)

type Book struct {
	ID     int    `json:"id" doc:"Caller-assigned book id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

var Kind = resource.Kind{
	Name:   "Book",
	Fields: schema.Fields("id", "title", "author"),
}

func (b Book) DocumentKey() string { return strconv.Itoa(b.ID) }

func (b Book) DocumentFields() map[string]any {
	return map[string]any{"id": b.ID, "title": b.Title, "author": b.Author}
}

func (b Book) RecordID() int { return b.ID }

func (b Book) WithRecordID(id int) Book {
	b.ID = id
	return b
}

package paging

import "strings"

// Envelope is the response body shared by every list and lookup endpoint.
type Envelope[T any] struct {
	Data  []T    `json:"data"`
	Links *Links `json:"links,omitempty"`
	Meta  Meta   `json:"meta"`
}

// Links point at the current page and its neighbours.
type Links struct {
	Self  string `json:"self"`
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
}

// NewEnvelope wraps items. Links are omitted when baseURL and path are both empty.
func NewEnvelope[T any](items []T, meta Meta, baseURL, path string) Envelope[T] {
	if items == nil {
		items = []T{}
	}
	env := Envelope[T]{Data: items, Meta: meta}
	if baseURL != "" || path != "" {
		links := BuildLinks(baseURL, path, meta)
		env.Links = &links
	}
	return env
}

// BuildLinks derives navigation links for path. Non-paginated results only get self.
func BuildLinks(baseURL, path string, meta Meta) Links {
	root := strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
	if !meta.Paginated() {
		return Links{Self: root}
	}

	at := func(n int) string {
		return root + "?" + Params{PageSize: meta.PageSize, PageNumber: n}.Values().Encode()
	}
	links := Links{
		Self:  at(meta.PageNumber),
		First: at(1),
		Last:  at(meta.PageCount),
	}
	if meta.PageNumber > 1 {
		links.Prev = at(meta.PageNumber - 1)
	}
	if meta.PageNumber < meta.PageCount {
		links.Next = at(meta.PageNumber + 1)
	}
	return links
}

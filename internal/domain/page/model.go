package page

import "errors"

// ErrNotFound is returned when no content exists for a view.
var ErrNotFound = errors.New("page not found")

// Page is the editorial content of a dashboard page.
type Page struct {
	View    string
	Title   string
	Summary string
	Body    string // Markdown
}

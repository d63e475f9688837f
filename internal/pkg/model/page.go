package model

// Page https://canvas.instructure.com/doc/api/pages.html
type Page struct {
	PageId    int    `json:"page_id,omitempty"`
	Url       string `json:"url,omitempty"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FrontPage bool   `json:"front_page,omitempty"`
	Published bool   `json:"published,omitempty"`
}

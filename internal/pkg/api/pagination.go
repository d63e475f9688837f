package api

import (
	"regexp"

	"github.com/go-resty/resty/v2"

	"github.com/canvastools/canvas-as-code/internal/pkg/client"
)

// PerPage - maximum page size allowed by the Canvas API.
const PerPage = 100

// RFC5988 web link, for example <https://canvas.example.com/api/v1/courses?page=2>; rel="next"
var nextPageLink = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// onEachPage invokes the callback for each loaded page and follows
// the "Link" header, rel="next", until the last page.
// The next page is loaded by the same sender, client or pool,
// and the parent request waits for the whole chain.
// https://canvas.instructure.com/doc/api/file.pagination.html
func onEachPage[T any](a *CanvasApi, request *client.Request, onPage func(page []T)) *client.Request {
	request.SetResult(&[]T{})
	request.OnSuccess(func(response *client.Response) {
		onPage(*response.Result().(*[]T))
		if url := nextPageUrl(response.Header().Get("Link")); len(url) > 0 {
			next := onEachPage(a, a.NewRequest(resty.MethodGet, url), onPage)
			response.WaitFor(next)
			response.Sender().Request(next).Send()
		}
	})
	return request
}

// nextPageUrl parses the URL of the next page from the "Link" header.
func nextPageUrl(linkHeader string) string {
	if m := nextPageLink.FindStringSubmatch(linkHeader); m != nil {
		return m[1]
	}
	return ""
}

package api_test

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/canvastools/canvas-as-code/internal/pkg/testapi"
)

func TestListFilesAllPages(t *testing.T) {
	t.Parallel()
	a, transport, _ := testapi.NewMockedCanvasApi()

	// Page 1, with a link to the next page
	page1 := []map[string]any{
		{"id": 1, "display_name": "a.pdf"},
		{"id": 2, "display_name": "b.pdf"},
	}
	transport.RegisterResponder(
		"GET",
		`https://canvas.example.com/api/v1/courses/123/files`,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "100", req.URL.Query().Get("per_page"))
			response, err := httpmock.NewJsonResponse(200, page1)
			if err != nil {
				return nil, err
			}
			response.Header.Set("Link", `<https://canvas.example.com/api/v1/courses/123/files?page=2>; rel="next"`)
			return response, nil
		},
	)

	// Page 2, the last one
	page2 := []map[string]any{
		{"id": 3, "display_name": "c.pdf"},
	}
	transport.RegisterResponder(
		"GET",
		`https://canvas.example.com/api/v1/courses/123/files?page=2`,
		httpmock.NewJsonResponderOrPanic(200, page2),
	)

	files, err := a.ListFiles(123)
	assert.NoError(t, err)
	assert.Len(t, files, 3)
	assert.Equal(t, "a.pdf", files[0].DisplayName)
	assert.Equal(t, "b.pdf", files[1].DisplayName)
	assert.Equal(t, "c.pdf", files[2].DisplayName)
}

func TestListFilesRetry(t *testing.T) {
	t.Parallel()
	a, transport, _ := testapi.NewMockedCanvasApi()
	transport.RegisterResponder(
		"GET",
		`https://canvas.example.com/api/v1/courses/123/files`,
		httpmock.NewStringResponder(504, "Gateway Timeout"),
	)

	files, err := a.ListFiles(123)
	assert.Nil(t, files)
	assert.Error(t, err)
	assert.Equal(t, `GET https://canvas.example.com/api/v1/courses/123/files?per_page=100 | returned http code 504`, err.Error())

	// 1 request + 3 retries
	assert.Equal(t, 4, transport.GetTotalCallCount())
}

func TestUploadFile(t *testing.T) {
	t.Parallel()
	a, transport, _ := testapi.NewMockedCanvasApi()

	// Step 1: declare the upload
	transport.RegisterResponder(
		"POST",
		`https://canvas.example.com/api/v1/folders/77/files`,
		func(req *http.Request) (*http.Response, error) {
			body, err := io.ReadAll(req.Body)
			assert.NoError(t, err)
			values, err := url.ParseQuery(string(body))
			assert.NoError(t, err)
			assert.Equal(t, "week1.pdf", values.Get("name"))
			assert.Equal(t, "7", values.Get("size"))
			assert.Equal(t, "overwrite", values.Get("on_duplicate"))
			return httpmock.NewJsonResponse(200, map[string]any{
				"upload_url":    "https://upload.example.com/bucket",
				"upload_params": map[string]string{"key": "item/week1.pdf", "acl": "private"},
			})
		},
	)

	// Step 2: the content goes to the pre-signed URL, without the bearer token
	transport.RegisterResponder(
		"POST",
		`https://upload.example.com/bucket`,
		func(req *http.Request) (*http.Response, error) {
			assert.Empty(t, req.Header.Get("Authorization"))
			assert.NoError(t, req.ParseMultipartForm(1024*1024))
			assert.Equal(t, []string{"item/week1.pdf"}, req.MultipartForm.Value["key"])
			assert.Equal(t, []string{"private"}, req.MultipartForm.Value["acl"])
			assert.Len(t, req.MultipartForm.File["file"], 1)
			assert.Equal(t, "week1.pdf", req.MultipartForm.File["file"][0].Filename)
			return httpmock.NewJsonResponse(201, map[string]any{"id": 555, "display_name": "week1.pdf", "size": 7})
		},
	)

	file, err := a.UploadFile(77, "week1.pdf", strings.NewReader("content"), 7)
	assert.NoError(t, err)
	assert.Equal(t, 555, file.Id)
	assert.Equal(t, "week1.pdf", file.DisplayName)
}

func TestUploadFileWithConfirmation(t *testing.T) {
	t.Parallel()
	a, transport, _ := testapi.NewMockedCanvasApi()

	transport.RegisterResponder(
		"POST",
		`https://canvas.example.com/api/v1/folders/77/files`,
		httpmock.NewJsonResponderOrPanic(200, map[string]any{
			"upload_url":    "https://upload.example.com/bucket",
			"upload_params": map[string]string{"key": "item/week1.pdf"},
		}),
	)

	// The upload returns only the confirmation URL, the file is processed asynchronously
	transport.RegisterResponder(
		"POST",
		`https://upload.example.com/bucket`,
		httpmock.NewJsonResponderOrPanic(201, map[string]any{
			"location": "https://canvas.example.com/api/v1/files/555/confirm",
		}),
	)

	// The file is ready on the second confirmation call
	confirmCalls := 0
	transport.RegisterResponder(
		"POST",
		`https://canvas.example.com/api/v1/files/555/confirm`,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer my-secret", req.Header.Get("Authorization"))
			confirmCalls++
			if confirmCalls == 1 {
				return httpmock.NewJsonResponse(200, map[string]any{})
			}
			return httpmock.NewJsonResponse(200, map[string]any{"id": 555, "display_name": "week1.pdf"})
		},
	)

	file, err := a.UploadFile(77, "week1.pdf", strings.NewReader("content"), 7)
	assert.NoError(t, err)
	assert.Equal(t, 555, file.Id)
	assert.Equal(t, 2, confirmCalls)
}

func TestUploadFileEmptyResponse(t *testing.T) {
	t.Parallel()
	a, transport, _ := testapi.NewMockedCanvasApi()

	transport.RegisterResponder(
		"POST",
		`https://canvas.example.com/api/v1/folders/77/files`,
		httpmock.NewJsonResponderOrPanic(200, map[string]any{
			"upload_url":    "https://upload.example.com/bucket",
			"upload_params": map[string]string{},
		}),
	)
	transport.RegisterResponder(
		"POST",
		`https://upload.example.com/bucket`,
		httpmock.NewJsonResponderOrPanic(201, map[string]any{}),
	)

	file, err := a.UploadFile(77, "week1.pdf", strings.NewReader("content"), 7)
	assert.Nil(t, file)
	assert.Error(t, err)
	assert.ErrorContains(t, err, `cannot confirm upload of the file "week1.pdf"`)
	assert.ErrorContains(t, err, "upload response contains no file id and no confirmation URL")
}

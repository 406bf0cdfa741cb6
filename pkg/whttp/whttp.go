// Package whttp fetches the cafeteria site's legacy pages and decodes
// them from windows-1254 into UTF-8. The pages are served without a
// charset header and carry Turkish letters (ı, ş, ğ, ü, ö, ç) that
// corrupt under a plain byte-to-string conversion.
package whttp

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"

	"github.com/cumenu/yemekhane/internal/utils"
)

// The site serves a bare error page to clients without a browser-like UA.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"

// FetchError reports a non-success HTTP status from a source page.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s failed: got status code %d", e.URL, e.StatusCode)
}

type Header struct {
	Name  string
	Value string
}

type Request struct {
	URL     string
	Method  string
	Headers []Header
}

type Response struct {
	StatusCode int
	Body       string // decoded UTF-8 text
	BodyLength int
	Title      string
}

// NewClient builds the HTTP client used for all source-page fetches.
// Retries default to zero; the scheduler that invokes the scrape owns
// retry policy.
func NewClient(retryMax int, timeout time.Duration) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.Logger = nil
	client := rc.StandardClient()
	client.Timeout = timeout
	return client
}

// FetchDecoded performs the request and decodes the windows-1254 body.
// Non-2xx statuses become a FetchError; no retrying happens here beyond
// whatever the supplied client does.
func FetchDecoded(wReq *Request, client *http.Client) (*Response, error) {
	if client == nil {
		client = http.DefaultClient
	}
	method := wReq.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequest(method, wReq.URL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "tr")
	req.Header.Set("Cache-Control", "no-transform")
	for _, h := range wReq.Headers {
		req.Header.Add(h.Name, h.Value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: wReq.URL, StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	decoded, err := charmap.Windows1254.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, err
	}

	wRes := &Response{StatusCode: resp.StatusCode, Body: string(decoded)}
	wRes.BodyLength = utf8.RuneCountInString(wRes.Body)
	if title, ok := htmlTitle(wRes.Body); ok {
		wRes.Title = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(title, "\n", ""), "\r", ""))
	}
	utils.Log.Debugf("fetched %s: %d runes, title %q", wReq.URL, wRes.BodyLength, wRes.Title)

	return wRes, nil
}

func isTitleElement(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "title"
}

func traverse(n *html.Node) (string, bool) {
	if isTitleElement(n) {
		if n.FirstChild != nil {
			return n.FirstChild.Data, true
		}
		return "", true
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		result, ok := traverse(c)
		if ok {
			return result, ok
		}
	}

	return "", false
}

func htmlTitle(body string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return "", false
	}
	return traverse(doc)
}

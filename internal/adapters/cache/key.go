package cache

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Key identifies a request. Requests with the same method, URL, headers and
// body share a key.
type Key struct {
	Method string
	URL    string
	digest uint64
}

func NewKey(method, url string, header http.Header, body []byte) Key {
	h := xxhash.New()

	lines := make([]string, 0, len(header))
	for name, values := range header {
		lines = append(lines, http.CanonicalHeaderKey(name)+":"+strings.Join(values, ","))
	}
	slices.Sort(lines)

	for _, line := range lines {
		_, _ = h.WriteString(line)
		_, _ = h.WriteString("\n")
	}
	_, _ = h.WriteString("\x00")
	_, _ = h.Write(body)

	return Key{
		Method: strings.ToUpper(method),
		URL:    url,
		digest: h.Sum64(),
	}
}

func (k Key) String() string {
	return fmt.Sprintf("%s %s#%016x", k.Method, k.URL, k.digest)
}

// urlOf extracts the URL from a stringified key
func urlOf(key string) (string, bool) {
	_, rest, ok := strings.Cut(key, " ")
	if !ok {
		return "", false
	}
	i := strings.LastIndex(rest, "#")
	if i < 0 {
		return "", false
	}
	return rest[:i], true
}

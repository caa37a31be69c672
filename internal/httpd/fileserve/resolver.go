// Package fileserve resolves an HTTP request target to a file under a
// sandboxed document root, grounded on the original get_real_path/
// process_GET logic (hw5/httpd.py) and expressed as plain Go filesystem
// calls in shockwave's style (shockwave has no static-file component, so
// this package follows the original's algorithm directly rather than
// generalizing an existing file).
package fileserve

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ngalkov/httpd/internal/httpd/httperr"
)

// indexFile is the fixed directory index name.
const indexFile = "index.html"

// Resolved is the outcome of resolving a request target to a servable file.
type Resolved struct {
	Path        string // absolute filesystem path
	Size        int64
	ContentType string
}

// Resolve maps target (a raw, possibly percent-encoded request-target) to
// a file under root, a canonical absolute directory path established at
// startup.
//
// Mirrors get_real_path + process_GET (hw5/httpd.py 201-224, 339-343):
// strip any query string, percent/+-decode, strip any number of leading
// slashes, join against root, clean the result, then reject anything
// that escapes root, then apply the directory->index.html fallback.
func Resolve(root, target string) (*Resolved, error) {
	path, err := decodeTarget(target)
	if err != nil {
		return nil, httperr.BadRequest("Invalid request target")
	}

	full := realPath(root, path)

	if !withinRoot(root, full) {
		return nil, httperr.Forbidden(httperr.ReasonForbidden)
	}

	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, httperr.NotFound(httperr.ReasonNotFound)
		}
		return nil, httperr.Forbidden(httperr.ReasonForbidden)
	}

	if info.IsDir() {
		full = filepath.Join(full, indexFile)
		info, err = os.Stat(full)
		if err != nil || info.IsDir() {
			// Missing or pathological index: Forbidden, not NotFound,
			// matching the original's historical behavior.
			return nil, httperr.Forbidden(httperr.ReasonForbidden)
		}
	}

	if info.Mode().Perm()&0o444 == 0 {
		return nil, httperr.Forbidden(httperr.ReasonForbidden)
	}

	return &Resolved{
		Path:        full,
		Size:        info.Size(),
		ContentType: MIMEType(strings.ToLower(filepath.Ext(full))),
	}, nil
}

// decodeTarget splits off any query string and percent/+-decodes the path
// component, the way url.parse + unquote_plus do in parse_url (hw5/httpd.py
// 259-264).
func decodeTarget(target string) (string, error) {
	raw := target
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.ReplaceAll(raw, "+", " ")
	return url.PathUnescape(raw)
}

// realPath strips any number of leading slashes or backslashes from path
// and joins it under root, then cleans the result. Mirrors get_real_path's
// `re.search(r"^[/\\]*(.*)$", relative_path)` followed by normpath(join(...)).
func realPath(root, path string) string {
	trimmed := strings.TrimLeft(path, `/\`)
	return filepath.Clean(filepath.Join(root, trimmed))
}

// withinRoot reports whether full lies at or under root, the way
// os.path.commonpath([doc_root, path]) == doc_root does in the original
// (hw5/httpd.py 208).
func withinRoot(root, full string) bool {
	if full == root {
		return true
	}
	if strings.HasSuffix(root, string(filepath.Separator)) {
		return strings.HasPrefix(full, root)
	}
	return strings.HasPrefix(full, root+string(filepath.Separator))
}

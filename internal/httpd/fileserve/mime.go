package fileserve

// mimeTypes is the extension-to-content-type table. The first group is
// the base table (with .htm added beside .html); the second group holds
// the additional extensions a real static file server would be expected
// to serve correctly, added per the module's own expansion of the base
// table.
var mimeTypes = map[string]string{
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".swf":  "application/x-shockwave-flash",
	".txt":  "text/plain",

	".json": "application/json",
	".xml":  "application/xml",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".webp": "image/webp",
	".pdf":  "application/pdf",
	".zip":  "application/zip",
	".gz":   "application/gzip",
	".woff": "font/woff",
	".woff2": "font/woff2",
	".ttf":  "font/ttf",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".csv":  "text/csv",
	".md":   "text/markdown",
}

// defaultMIMEType is returned for unknown or missing extensions.
const defaultMIMEType = "application/octet-stream"

// MIMEType returns the content type for ext (including the leading dot,
// as returned by filepath.Ext), falling back to defaultMIMEType.
func MIMEType(ext string) string {
	if t, ok := mimeTypes[ext]; ok {
		return t
	}
	return defaultMIMEType
}

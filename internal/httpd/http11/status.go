package http11

// reasonPhrases is the fixed status table: the reason phrase used when the
// caller hasn't overridden one. Generalizes shockwave's pre-compiled
// status-line byte constants (http11/constants.go) to a lookup table,
// since this server's status set is fixed and small and doesn't need
// shockwave's zero-allocation pre-baked "STATUS-LINE\r\n" byte slices (no
// per-request hot-path pressure here: one file response per request, not
// millions/sec).
var reasonPhrases = map[int]string{
	200: "OK",
	400: "Bad Request",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	500: "Internal Server Error",
}

// ReasonPhrase returns the fixed reason phrase for status, or "" if the
// status isn't in the table (callers are expected to supply their own
// reason in that case).
func ReasonPhrase(status int) string {
	return reasonPhrases[status]
}

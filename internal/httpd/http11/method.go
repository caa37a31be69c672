package http11

// implementedMethods is the server's method allow-list. A method outside
// this set is rejected at the parser with 405. Kept as a map (not the
// shockwave's switch-on-byte-length dispatch in http11/method.go) because
// the set is tiny and grown by editing one literal, not a hot-path concern.
var implementedMethods = map[string]bool{
	"GET":  true,
	"HEAD": true,
}

// IsImplementedMethod reports whether method is in the server's allow-list.
func IsImplementedMethod(method string) bool {
	return implementedMethods[method]
}

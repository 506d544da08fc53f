// Package permissions holds object-level access rules.
package permissions

import "net/http"

// IsSafeMethod reports whether method only reads state.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// IsOwner allows safe methods to anyone and every other method only to the actor that
// ownerOf reports as the owner of target.
func IsOwner[T any](method, actorID string, target T, ownerOf func(T) string) bool {
	if IsSafeMethod(method) {
		return true
	}
	return actorID != "" && actorID == ownerOf(target)
}

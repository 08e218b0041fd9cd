package docstore

import (
	"fmt"
	"strings"
)

// splitPath separates a collection path into its parent document path and the collection
// name: "users/u1/emotions" -> ("users/u1", "emotions"), "posts" -> ("", "posts").
func splitPath(collectionPath string) (parent, collection string, err error) {
	trimmed := strings.Trim(collectionPath, "/")
	if trimmed == "" {
		return "", "", fmt.Errorf("empty collection path")
	}
	segments := strings.Split(trimmed, "/")
	if len(segments)%2 == 0 {
		return "", "", fmt.Errorf("collection path %q points at a document", collectionPath)
	}
	for _, s := range segments {
		if s == "" {
			return "", "", fmt.Errorf("collection path %q has an empty segment", collectionPath)
		}
	}
	collection = segments[len(segments)-1]
	parent = strings.Join(segments[:len(segments)-1], "/")
	return parent, collection, nil
}

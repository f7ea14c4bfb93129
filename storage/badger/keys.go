package badger

import (
	"bytes"
	"strings"
)

// Key prefixes for different data types
const (
	itemCachePrefix = "itemcache"
	keySeparator    = ":"
)

// makeItemsKey generates the key for one handle's items.
// Format: prefix:namespace:id
func makeItemsKey(namespace, id string) []byte {
	return []byte(itemCachePrefix + keySeparator + namespace + keySeparator + id)
}

// makeNamespacePrefix generates the prefix shared by every key in namespace.
// Format: prefix:namespace:
func makeNamespacePrefix(namespace string) []byte {
	return []byte(itemCachePrefix + keySeparator + namespace + keySeparator)
}

// makeCachePrefix generates the prefix shared by every cached item list.
func makeCachePrefix() []byte {
	return []byte(itemCachePrefix + keySeparator)
}

// splitItemsKey returns the namespace and id encoded in key.
func splitItemsKey(key []byte) (namespace, id string, ok bool) {
	rest, found := bytes.CutPrefix(key, makeCachePrefix())
	if !found {
		return "", "", false
	}
	namespace, id, ok = strings.Cut(string(rest), keySeparator)
	return namespace, id, ok
}

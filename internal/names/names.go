// Package names turns asset keys into display names.
package names

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Title turns a key such as "ogre_chieftain" into "Ogre Chieftain"
func Title(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

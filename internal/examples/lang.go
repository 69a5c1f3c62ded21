// Package examples knows what a DeployR example is: its language, its
// di-config.json descriptor and how its artifacts are uploaded.
package examples

import "strings"

// Language classifies an example by its repository name.
type Language int

const (
	// Unclassified examples are listed by the source but never offered for install.
	Unclassified Language = iota
	JavaScript
	Java
	DotNet
)

func (l Language) String() string {
	switch l {
	case JavaScript:
		return "JavaScript"
	case Java:
		return "Java"
	case DotNet:
		return ".NET"
	default:
		return "Unclassified"
	}
}

// languageMarkers are checked in order; the first one found in a name wins.
var languageMarkers = []struct {
	marker string
	lang   Language
}{
	{"js-", JavaScript},
	{"java-", Java},
	{"dotnet-", DotNet},
}

// Classify returns the language a repository name denotes.
func Classify(name string) Language {
	for _, m := range languageMarkers {
		if strings.Contains(name, m.marker) {
			return m.lang
		}
	}
	return Unclassified
}

// IsExample reports whether a repository name denotes an example at all.
func IsExample(name string) bool {
	return strings.Contains(name, "example")
}

// Buckets holds example names grouped by language, in listing order.
type Buckets struct {
	JavaScript   []string
	Java         []string
	DotNet       []string
	Unclassified []string
}

// Get returns the bucket for lang.
func (b *Buckets) Get(lang Language) []string {
	switch lang {
	case JavaScript:
		return b.JavaScript
	case Java:
		return b.Java
	case DotNet:
		return b.DotNet
	default:
		return b.Unclassified
	}
}

// Len counts the installable (classified) examples.
func (b *Buckets) Len() int {
	return len(b.JavaScript) + len(b.Java) + len(b.DotNet)
}

// Partition groups the example repositories among names by language.
// Names that are not examples are ignored. Examples without a language
// marker land in Unclassified, which callers do not offer for install.
// found reports whether wanted is one of the examples.
func Partition(names []string, wanted string) (buckets Buckets, found bool) {
	for _, name := range names {
		if !IsExample(name) {
			continue
		}
		if wanted != "" && name == wanted {
			found = true
		}
		switch Classify(name) {
		case JavaScript:
			buckets.JavaScript = append(buckets.JavaScript, name)
		case Java:
			buckets.Java = append(buckets.Java, name)
		case DotNet:
			buckets.DotNet = append(buckets.DotNet, name)
		default:
			buckets.Unclassified = append(buckets.Unclassified, name)
		}
	}
	return buckets, found
}

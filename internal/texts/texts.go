// Package texts provides the catalog of reference texts to practice on.
package texts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// Text is a named reference text.
type Text struct {
	Name           string
	Body           string
	ShowWhitespace bool
}

const fibonacci = "def fibonacci(n):\n" +
	"  \tif n <= 0:\n" +
	"  \t\treturn \"Input should be a positive integer.\"\n" +
	"  \telif n == 1:\n" +
	"  \t\treturn 0\n" +
	"  \telif n == 2:\n" +
	"  \t\treturn 1\n" +
	"  \telse:\n" +
	"  \t\ta, b = 0, 1\n" +
	"  \t\tfor _ in range(2, n):\n" +
	"  \t\t\ta, b = b, a + b\n" +
	"  \t\treturn b"

// Builtin returns the texts shipped with the binary.
func Builtin() []Text {
	return []Text{
		{
			Name: "Paragraph",
			Body: "The sun was shining brightly on a beautiful summer day. Anna decided to go for a walk in the park. " +
				"She saw many colorful flowers and heard birds singing happily. As she walked, she met her friend Tom, " +
				"who was playing with his dog. They decided to sit on a bench and talk about their plans for the weekend. " +
				"They both agreed to go on a picnic by the lake, bringing their favorite snacks and games. " +
				"It was a perfect plan for a sunny day.",
		},
		{Name: "Short", Body: "Hello, Typing Project!"},
		{Name: "Fibonacci", Body: fibonacci, ShowWhitespace: true},
	}
}

// Catalog is an ordered set of texts with unique names.
type Catalog struct {
	texts []Text
}

// NewCatalog builds a catalog; later texts replace earlier ones with the same name.
func NewCatalog(texts ...Text) *Catalog {
	c := &Catalog{}
	for _, t := range texts {
		c.Add(t)
	}
	return c
}

// Add appends t or replaces the text with the same name in place.
func (c *Catalog) Add(t Text) {
	if i := c.Index(t.Name); i >= 0 {
		c.texts[i] = t
		return
	}
	c.texts = append(c.texts, t)
}

// Len returns the number of texts.
func (c *Catalog) Len() int {
	return len(c.texts)
}

// At returns the text at position i.
func (c *Catalog) At(i int) Text {
	return c.texts[i]
}

// Index returns the position of the named text or -1.
func (c *Catalog) Index(name string) int {
	for i, t := range c.texts {
		if strings.EqualFold(t.Name, name) {
			return i
		}
	}
	return -1
}

// Get looks a text up by name, ignoring case.
func (c *Catalog) Get(name string) (Text, bool) {
	i := c.Index(name)
	if i < 0 {
		return Text{}, false
	}
	return c.texts[i], true
}

// Names lists text names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.texts))
	for i, t := range c.texts {
		names[i] = t.Name
	}
	return names
}

// LoadDir reads every *.txt file in dir, sorted by name. A missing
// directory yields no texts.
func LoadDir(dir string) ([]Text, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read texts directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	out := make([]Text, 0, len(names))
	for _, name := range names {
		t, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// LoadFile reads a text from path, named after the file without extension.
func LoadFile(path string) (Text, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Text{}, fmt.Errorf("failed to read text: %w", err)
	}
	body := Normalize(string(data))
	if body == "" {
		return Text{}, fmt.Errorf("text %s is empty", path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Text{
		Name:           name,
		Body:           body,
		ShowWhitespace: strings.ContainsAny(body, "\t\n"),
	}, nil
}

// Normalize converts line endings to \n and drops trailing whitespace so a
// file's final newline does not have to be typed.
func Normalize(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.TrimRightFunc(body, unicode.IsSpace)
}

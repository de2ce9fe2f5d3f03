// Package wordlist loads word lists used for random practice texts.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// LoadForLang loads path and keeps the words suitable for lang.
func LoadForLang(path, lang string) ([]string, error) {
	words, err := LoadWords(path)
	if err != nil {
		return nil, err
	}
	words = Filter(words, FilterForLang(lang))
	if len(words) == 0 {
		return nil, fmt.Errorf("word list has no %s words", lang)
	}
	return words, nil
}

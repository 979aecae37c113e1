/*
Package syllable estimates how many syllables an English word has.

Counting is done with a vowel-group heuristic adjusted for silent endings
("pave", "paved", "paves") and consonant + "le" endings ("table"). Words the
heuristic gets wrong are listed in an exception dictionary held in a patricia
trie; a built-in list is embedded and more entries can be loaded from a text
file with one "word count" pair per line.

Only the single-syllable case matters for splitting: a single-syllable word is
never split.
*/
package syllable

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

//go:embed data/exceptions.txt
var builtinExceptions string

// Counter counts syllables. It is safe for concurrent use.
type Counter struct {
	exceptions *patricia.Trie
	size       int
	mu         sync.RWMutex
}

// NewCounter creates a Counter loaded with the built-in exception list.
func NewCounter() *Counter {
	c := &Counter{exceptions: patricia.NewTrie()}
	if _, err := c.Load(strings.NewReader(builtinExceptions)); err != nil {
		// the embedded list is part of the build
		panic(fmt.Errorf("built-in syllable exceptions: %w", err))
	}
	return c
}

// Load reads "word count" lines into the exception dictionary and returns how many were added.
// Blank lines and lines starting with '#' are skipped. Later entries override earlier ones.
func (c *Counter) Load(r io.Reader) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	scanner := bufio.NewScanner(r)
	added, lineNum := 0, 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return added, fmt.Errorf("line %d: expected \"word count\", got %q", lineNum, line)
		}
		count, err := strconv.Atoi(fields[1])
		if err != nil || count < 1 {
			return added, fmt.Errorf("line %d: invalid syllable count %q", lineNum, fields[1])
		}
		key := patricia.Prefix(strings.ToLower(fields[0]))
		if c.exceptions.Get(key) == nil {
			c.size++
		}
		c.exceptions.Set(key, count)
		added++
	}
	if err := scanner.Err(); err != nil {
		return added, err
	}
	return added, nil
}

// LoadFile adds the exceptions listed in a text file.
func (c *Counter) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open syllable dictionary: %w", err)
	}
	defer file.Close()

	n, err := c.Load(file)
	if err != nil {
		return fmt.Errorf("syllable dictionary %s: %w", path, err)
	}
	log.Debugf("Loaded %d syllable exceptions from %s", n, path)
	return nil
}

// Size returns the number of words in the exception dictionary.
func (c *Counter) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.size
}

// Count returns the number of syllables in word, 0 for a word without letters.
func (c *Counter) Count(word string) int {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return 0
	}

	c.mu.RLock()
	item := c.exceptions.Get(patricia.Prefix(word))
	c.mu.RUnlock()
	if count, ok := item.(int); ok {
		return count
	}
	return Estimate(word)
}

// Estimate counts syllables with the vowel-group heuristic only.
func Estimate(word string) int {
	w := []rune(strings.ToLower(word))
	if len(w) == 0 {
		return 0
	}

	count := 0
	prevVowel := false
	for i, r := range w {
		v := isVowel(r) || (r == 'y' && i > 0 && !isVowel(w[i-1]))
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if count == 0 {
		// "hmm", "psst"
		return 1
	}

	n := len(w)
	switch {
	case n > 2 && w[n-1] == 'e' && w[n-2] == 'l' && !isVowel(w[n-3]):
		// "table", "apple": the "le" is its own syllable
	case n > 1 && w[n-1] == 'e' && !isVowel(w[n-2]):
		count--
	case n > 2 && w[n-1] == 'd' && w[n-2] == 'e' && w[n-3] != 't' && w[n-3] != 'd' && !isVowel(w[n-3]):
		count--
	case n > 2 && w[n-1] == 's' && w[n-2] == 'e' && !sibilant(w[:n-2]) && !isVowel(w[n-3]):
		count--
	}

	return max(count, 1)
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// sibilant reports whether stem ends in a sound that keeps "-es" audible ("boxes", "wishes").
func sibilant(stem []rune) bool {
	s := string(stem)
	for _, suffix := range []string{"s", "x", "z", "ch", "sh", "c", "g"} {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

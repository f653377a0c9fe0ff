package beliefs

import (
	"fmt"
	"os"
)

// Content is the text to be ingested, after any truncation.
type Content struct {
	Text           string
	OriginalLength int
	Truncated      bool
}

// Length returns the character count of the content that will be sent.
func (c Content) Length() int { return len([]rune(c.Text)) }

// LoadContent reads the input file and truncates it to at most maxLength
// characters. Truncation is deterministic (a prefix of the original); there is
// no negotiation with the server about its actual limit.
func LoadContent(path string, maxLength int) (Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, fmt.Errorf("test content file not found: %w", err)
	}
	runes := []rune(string(data))
	c := Content{Text: string(data), OriginalLength: len(runes)}
	if len(runes) > maxLength {
		c.Text = string(runes[:maxLength])
		c.Truncated = true
	}
	return c, nil
}

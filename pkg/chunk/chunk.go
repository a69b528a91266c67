// Package chunk splits reply text into transport-sized pieces.
//
// Transports cap outbound message length (Telegram's limit is 4096
// characters). Split cuts on rune boundaries at fixed width so no
// multi-byte character is ever torn in half; it makes no attempt to
// break on whitespace.
package chunk

// DefaultLimit is the Telegram message length cap.
const DefaultLimit = 4096

// Split cuts text into pieces of at most limit runes, preserving order.
// The concatenation of the pieces equals the input exactly. Empty input
// yields no pieces; a non-positive limit yields the input as one piece.
func Split(text string, limit int) []string {
	if text == "" {
		return nil
	}
	if limit <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	pieces := make([]string, 0, (len(runes)+limit-1)/limit)
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		pieces = append(pieces, string(runes[start:end]))
	}
	return pieces
}

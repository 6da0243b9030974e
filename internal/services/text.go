package services

import "unicode/utf8"

// TruncateChars returns the first n characters (code points) of text.
func TruncateChars(text string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(text) <= n {
		return text
	}

	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}

// CharCount reports the length of text in characters.
func CharCount(text string) int {
	return utf8.RuneCountInString(text)
}

package models

import "strings"

// NormalizeText folds CRLF line endings to LF, which is what a CSV reader
// returns for multi-line fields
func NormalizeText(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// Normalized returns c with every text field passed through NormalizeText
func (c PdsaCycle) Normalized() PdsaCycle {
	c.CycleName = NormalizeText(c.CycleName)
	c.Plan = NormalizeText(c.Plan)
	c.Do = NormalizeText(c.Do)
	c.Study = NormalizeText(c.Study)
	c.Act = NormalizeText(c.Act)
	return c
}

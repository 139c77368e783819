package layout

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes accented letters and strips the combining
// marks, folding ă/â/î/ș/ț (and the legacy cedilla forms ş/ţ the reports
// sometimes carry) to their base Latin letters.
var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// FoldDiacritics maps Romanian diacritic characters to their base Latin
// letters so marker phrases can be compared literally regardless of which
// diacritic encoding the PDF producer used. Characters outside the folding
// set pass through unchanged, as does the input on a transform failure.
func FoldDiacritics(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return out
}

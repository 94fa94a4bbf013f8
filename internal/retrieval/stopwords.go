package retrieval

// englishStopwords is the fixed stopword list applied before n-gram
// extraction. Calendar queries are question-shaped ("when can I drop a
// course"), so interrogatives and auxiliaries carry no signal here.
var englishStopwords = map[string]struct{}{}

func init() {
	words := []string{
		"a", "about", "above", "after", "again", "all", "am", "an", "and",
		"any", "are", "as", "at", "be", "because", "been", "before", "being",
		"below", "between", "both", "but", "by", "can", "could", "did", "do",
		"does", "doing", "down", "during", "each", "few", "for", "from",
		"further", "had", "has", "have", "having", "he", "her", "here",
		"hers", "him", "his", "how", "i", "if", "in", "into", "is", "it",
		"its", "just", "me", "more", "most", "my", "no", "nor", "not", "now",
		"of", "off", "on", "once", "only", "or", "other", "our", "out",
		"over", "own", "same", "she", "should", "so", "some", "such", "than",
		"that", "the", "their", "them", "then", "there", "these", "they",
		"this", "those", "through", "to", "too", "under", "until", "up",
		"very", "was", "we", "were", "what", "when", "where", "which",
		"while", "who", "whom", "why", "will", "with", "would", "you",
		"your", "yours",
	}
	for _, w := range words {
		englishStopwords[w] = struct{}{}
	}
}

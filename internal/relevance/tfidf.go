// tfidf.go - TF-IDF vectorization and cosine similarity
package relevance

import "math"

// vectorizer builds TF-IDF vectors over a small corpus of documents.
// Term weighting uses smoothed inverse document frequency and L2
// normalization, over unigrams and bigrams of non-stop words.
type vectorizer struct {
	vocab []string
	index map[string]int
	idf   []float64
	docs  [][]float64
}

// fitTransform builds the vocabulary from all documents and returns one
// normalized TF-IDF vector per document, in input order.
func fitTransform(documents []string) *vectorizer {
	v := &vectorizer{index: make(map[string]int)}

	termLists := make([][]string, len(documents))
	for i, doc := range documents {
		termLists[i] = terms(tokenize(doc))
		for _, t := range termLists[i] {
			if _, ok := v.index[t]; !ok {
				v.index[t] = len(v.vocab)
				v.vocab = append(v.vocab, t)
			}
		}
	}

	// Document frequencies.
	df := make([]int, len(v.vocab))
	for _, list := range termLists {
		seen := make(map[int]struct{}, len(list))
		for _, t := range list {
			seen[v.index[t]] = struct{}{}
		}
		for idx := range seen {
			df[idx]++
		}
	}

	n := float64(len(documents))
	v.idf = make([]float64, len(v.vocab))
	for i, f := range df {
		v.idf[i] = math.Log((1+n)/(1+float64(f))) + 1
	}

	v.docs = make([][]float64, len(documents))
	for i, list := range termLists {
		v.docs[i] = v.vector(list)
	}

	return v
}

// vector computes the normalized TF-IDF vector for a term list.
func (v *vectorizer) vector(termList []string) []float64 {
	vec := make([]float64, len(v.vocab))
	for _, t := range termList {
		if idx, ok := v.index[t]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= v.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// cosine returns the cosine similarity of two same-length vectors.
func cosine(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	// Vectors are already L2-normalized.
	return dot
}

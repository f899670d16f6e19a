package logic

import "combogrip/internal/domain"

// CandidateStore holds the candidates of every source. A source's
// candidates are replaced as a whole when it reloads.
type CandidateStore interface {
	SetOrder(sources []string)
	Replace(source string, candidates []domain.Candidate)
	Remove(source string)
	Get(source string) []domain.Candidate
	All() []domain.Candidate
	Sources() []string
	Count() int
}

//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package topics

import (
	"errors"
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
)

var (
	ErrInvalidRange       = errors.New("invalid topic range")
	ErrEmptyResult        = errors.New("no candidate models to choose from")
	ErrNonPositiveTopN    = errors.New("the number of top documents per topic must be positive")
	ErrEmptyCollection    = errors.New("empty document collection")
	ErrVocabularyMismatch = errors.New("model and corpus vocabularies differ")
	ErrUnknownDoc         = errors.New("corpus refers to an unknown document")
	ErrDuplicateDoc       = errors.New("document id used twice")
)

// InvalidRangeError - the sweep needs low == vv.LDALOWK and low < high
type InvalidRangeError struct {
	Low  int
	High int
}

func (e *InvalidRangeError) Error() string {
	if e.Low != vv.LDALOWK {
		return fmt.Sprintf("%s: the sweep starts at k = %d, not %d", ErrInvalidRange, vv.LDALOWK, e.Low)
	}
	return fmt.Sprintf("%s: k in [%d, %d) is empty", ErrInvalidRange, e.Low, e.High)
}

// checkrange - the floor is fixed; only the ceiling is configurable
func checkrange(low int, high int) error {
	if low != vv.LDALOWK || high <= low {
		return &InvalidRangeError{Low: low, High: high}
	}
	return nil
}

func (e *InvalidRangeError) Is(target error) bool { return target == ErrInvalidRange }

// EmptyResultError - ChooseBestK() was handed nothing
type EmptyResultError struct{}

func (e *EmptyResultError) Error() string { return ErrEmptyResult.Error() }

func (e *EmptyResultError) Is(target error) bool { return target == ErrEmptyResult }

// VocabularyMismatchError - the corpus was not built with the dictionary the model was trained on
type VocabularyMismatchError struct {
	Model  string // dictionary fingerprints
	Corpus string
}

func (e *VocabularyMismatchError) Error() string {
	return fmt.Sprintf("%s: model %s vs corpus %s", ErrVocabularyMismatch, e.Model, e.Corpus)
}

func (e *VocabularyMismatchError) Is(target error) bool { return target == ErrVocabularyMismatch }

// UnknownDocError - a corpus DocID with no matching document
type UnknownDocError struct {
	ID int64
}

func (e *UnknownDocError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnknownDoc, e.ID)
}

func (e *UnknownDocError) Is(target error) bool { return target == ErrUnknownDoc }

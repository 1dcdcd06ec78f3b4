package tokenizer_test

import (
	"strings"
	"testing"

	"github.com/iwebbo/AnsibleRoleDoc/internal/tokenizer"
)

// wordCounter is a deterministic Counter used to exercise CountDocument
// without loading a real encoding.
type wordCounter struct{}

func (wordCounter) Name() string {
	return "word"
}

func (wordCounter) CountString(input string) (int, error) {
	return len(strings.Fields(input)), nil
}

// TestCountDocument verifies token counting through the Counter interface.
func TestCountDocument(testingInstance *testing.T) {
	result, countError := tokenizer.CountDocument(wordCounter{}, "one two three")
	if countError != nil {
		testingInstance.Fatalf("count document: %v", countError)
	}
	if !result.Counted || result.Tokens != 3 {
		testingInstance.Errorf("unexpected result %+v", result)
	}
}

// TestCountDocumentEmptyInput verifies that an empty document counts as zero
// tokens rather than being skipped.
func TestCountDocumentEmptyInput(testingInstance *testing.T) {
	result, countError := tokenizer.CountDocument(wordCounter{}, "")
	if countError != nil {
		testingInstance.Fatalf("count document: %v", countError)
	}
	if !result.Counted || result.Tokens != 0 {
		testingInstance.Errorf("unexpected result %+v", result)
	}
}

// TestCountDocumentInvalidUTF8 verifies that invalid byte sequences are
// reported as uncounted.
func TestCountDocumentInvalidUTF8(testingInstance *testing.T) {
	result, countError := tokenizer.CountDocument(wordCounter{}, string([]byte{0xff, 0xfe}))
	if countError != nil {
		testingInstance.Fatalf("count document: %v", countError)
	}
	if result.Counted {
		testingInstance.Errorf("invalid UTF-8 should not be counted: %+v", result)
	}
}

// TestCountDocumentNilCounter verifies the nil-counter guard.
func TestCountDocumentNilCounter(testingInstance *testing.T) {
	if _, countError := tokenizer.CountDocument(nil, "text"); countError == nil {
		testingInstance.Error("expected error for nil counter")
	}
}

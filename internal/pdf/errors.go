package pdf

import "fmt"

// UnreadableDocumentError reports a document that cannot be parsed at all:
// corrupt structure, encryption, or zero pages. Per-document; a batch run
// logs it and continues.
type UnreadableDocumentError struct {
	Path   string
	Reason string
	Err    error
}

func (e *UnreadableDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unreadable document %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("unreadable document %s: %s", e.Path, e.Reason)
}

func (e *UnreadableDocumentError) Unwrap() error {
	return e.Err
}

// ParseError reports a structurally valid, non-empty document that yielded
// no extractable text fragments. Distinguishes "no text layer" from an
// empty or broken file.
type ParseError struct {
	Path string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no extractable text fragments in %s", e.Path)
}

package translate

import (
	"errors"
	"fmt"

	"rst2sile/doctree"
)

// ErrStructure is matched by every StructureError.
var ErrStructure = errors.New("unsupported document structure")

// StructureError reports a document structure SILE cannot represent, such as
// sections nested deeper than subsections. Translation stops when it occurs.
type StructureError struct {
	Kind   doctree.Kind
	Depth  int
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: %s at section depth %d: %s", ErrStructure, e.Kind, e.Depth, e.Reason)
}

func (e *StructureError) Is(target error) bool {
	return target == ErrStructure
}

package runner

import (
	"fmt"
	"io"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// WriteDiff prints the unified diff between orig and updated, labelled with name.
// Nothing is printed when the contents are equal.
func WriteDiff(w io.Writer, name, orig, updated string) error {
	if orig == updated {
		return nil
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), orig, updated)
	unified := gotextdiff.ToUnified("a/"+name, "b/"+name, orig, edits)
	_, err := fmt.Fprint(w, unified)
	return err
}

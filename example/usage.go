package example

import (
	"fmt"
	"io"

	"github.com/ecordell/pipelinegen/pipeline"
)

// Demo runs a two step pipeline over 7 and reports the outcome to w.
func Demo(w io.Writer) {
	p := SingleFieldPipeline{Value: pipeline.Some(7)}

	// Step 1: add a fixed value.
	// Step 2: double the result if it exceeds 10, otherwise stop.
	output := p.Process3(
		func(input int) pipeline.Option[int] { return pipeline.Some(input + 3) },
		func(processed int) pipeline.Option[int] {
			if processed > 10 {
				return pipeline.Some(processed * 2)
			}
			return pipeline.None[int]()
		},
	)

	if result, ok := output.Get(); ok {
		fmt.Fprintf(w, "Pipeline completed successfully with output: %d\n", result)
		return
	}
	fmt.Fprintln(w, "Pipeline terminated early due to a failing condition.")
}

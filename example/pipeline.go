package example

import (
	"slices"

	"github.com/ecordell/pipelinegen/pipeline"
)

//go:generate go run github.com/ecordell/pipelinegen --output=pipeline_gen.go .

// SingleFieldPipeline holds the value its pipelines start from.
//
//pipeline:derive
type SingleFieldPipeline struct {
	Value pipeline.Option[int]
}

// Disabled keeps call sites compiling while processing is turned off.
//
//pipeline:derive(skip)
type Disabled struct {
	Value pipeline.Option[int]
}

// Timed announces its timeout each time a pipeline runs.
//
//pipeline:derive(timeout = 500, owner = "payments")
type Timed struct {
	Value pipeline.Option[int]
}

// Box works for any element type.
//
//pipeline:derive
type Box[T any] struct {
	Item pipeline.Option[T]
}

// Labels are duplicated with Clone before entering a pipeline.
type Labels []string

// Clone implements pipeline.Cloner.
func (l Labels) Clone() Labels {
	return slices.Clone(l)
}

// Basket is configured through its field tag rather than a directive.
type Basket struct {
	Labels pipeline.Option[Labels] `pipeline:"timeout=250"`
}

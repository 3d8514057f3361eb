package ir

import "errors"

// ErrUnknownMacro replaces the panic the original evaluator raises
// when a Text(Macro(name)) element names a macro absent from the
// style's macro table ("macro errors not implemented!"). This core
// makes that condition a typed, recoverable error instead.
var ErrUnknownMacro = errors.New("ir: unknown macro")

// ErrMissingReference is returned when the Database has no reference
// for the cite context's target ID.
var ErrMissingReference = errors.New("ir: missing reference")

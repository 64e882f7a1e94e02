package domain

import "fmt"

// OutputMode selects where the marked text goes.
type OutputMode string

const (
	// OutputStream writes the marked text to a stream, standard output by default.
	OutputStream OutputMode = "stream"
	// OutputPath writes the marked text to an explicit path, creating or truncating it.
	OutputPath OutputMode = "path"
	// OutputInPlace overwrites the source file.
	OutputInPlace OutputMode = "in-place"
)

// Destination describes the output target of a marking run.
type Destination struct {
	Mode OutputMode
	// Path is only meaningful for OutputPath.
	Path string
}

// ResolveDestination applies the command-line precedence: in-place wins over
// an explicit path, and with neither the result is streamed.
func ResolveDestination(inPlace bool, out string) Destination {
	switch {
	case inPlace:
		return Destination{Mode: OutputInPlace}
	case out != "":
		return Destination{Mode: OutputPath, Path: out}
	default:
		return Destination{Mode: OutputStream}
	}
}

func (d Destination) String() string {
	if d.Mode == OutputPath {
		return fmt.Sprintf("%s:%s", d.Mode, d.Path)
	}

	return string(d.Mode)
}

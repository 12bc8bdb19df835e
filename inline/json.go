package inline

import (
	"encoding/json"
	"io"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/playdeck/playdeck/controls"
)

// Output is one line of the stream. Snapshot is set for state frames, Error
// for rejected input lines.
type Output struct {
	Seq      int                `json:"seq"`
	Snapshot *controls.Snapshot `json:"snapshot,omitempty"`
	Error    string             `json:"error,omitempty"`
	// Final marks the last frame before the stream ends.
	Final bool `json:"final,omitempty"`
}

type encoder struct {
	out    io.Writer
	pretty bool
	seq    int
}

func (e *encoder) write(output Output) error {
	e.seq++
	output.Seq = e.seq

	var (
		data []byte
		err  error
	)

	if e.pretty {
		data, err = json.MarshalIndent(output, "", "  ")
	} else {
		data, err = json.Marshal(output)
	}
	if err != nil {
		return err
	}

	_, err = e.out.Write(append(data, '\n'))
	return err
}

func (e *encoder) snapshot(snap controls.Snapshot, final bool) error {
	return e.write(Output{Snapshot: &snap, Final: final})
}

// Schema describes a stream line.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		return "playdeck." + t.Name()
	}

	return reflector.Reflect(&Output{})
}

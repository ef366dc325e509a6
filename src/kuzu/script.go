package kuzu

import (
	"fmt"
	"io"
)

// ScriptConn is a Conn that records statements to a writer instead of
// executing them, one per line. It lets the CLI emit a script for the
// Kuzu shell when no embedded driver is linked in.
type ScriptConn struct {
	W io.Writer
}

func (c ScriptConn) Execute(stmt string) (Rows, error) {
	if _, err := fmt.Fprintln(c.W, stmt+";"); err != nil {
		return nil, err
	}

	return nil, nil
}

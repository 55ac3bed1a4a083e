package packet

import (
	"fmt"
	"io"
	"strings"
)

// Render writes an indented, one-packet-per-line view of the tree:
//
//	v1 less_than
//	  v6 literal 10
//	  v2 literal 20
func Render(w io.Writer, p *Packet) error {
	var err error
	Walk(p, func(p *Packet, depth int) bool {
		if err != nil {
			return false
		}
		indent := strings.Repeat("  ", depth)
		switch body := p.Body.(type) {
		case *Literal:
			_, err = fmt.Fprintf(w, "%sv%d literal %s\n", indent, p.Version, body.Int())
		case *Operator:
			_, err = fmt.Fprintf(w, "%sv%d %s\n", indent, p.Version, body.Op)
		}
		return true
	})
	return err
}

// String renders the tree as Render would.
func (p *Packet) String() string {
	var sb strings.Builder
	_ = Render(&sb, p)
	return sb.String()
}

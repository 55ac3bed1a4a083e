package canon

import (
	"fmt"
	"math/big"

	"github.com/roach88/bits/internal/packet"
)

// Kind names used in both the canonical form and Node.
const (
	KindLiteral  = "literal"
	KindOperator = "operator"
)

// FromPacket converts a packet tree into canonical values:
//
//	{"kind":"literal","value":2021,"version":6}
//	{"children":[...],"kind":"operator","op":"sum","version":3}
func FromPacket(p *packet.Packet) (Value, error) {
	if p == nil {
		return nil, fmt.Errorf("nil packet")
	}
	switch body := p.Body.(type) {
	case *packet.Literal:
		return Object{
			"kind":    String(KindLiteral),
			"value":   Int{body.Int()},
			"version": NewInt(int64(p.Version)),
		}, nil
	case *packet.Operator:
		children := make(Array, len(body.Children))
		for i, child := range body.Children {
			v, err := FromPacket(child)
			if err != nil {
				return nil, fmt.Errorf("children[%d]: %w", i, err)
			}
			children[i] = v
		}
		return Object{
			"children": children,
			"kind":     String(KindOperator),
			"op":       String(body.Op.String()),
			"version":  NewInt(int64(p.Version)),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported packet body %T", p.Body)
	}
}

// MarshalPacket returns the canonical JSON of a packet tree.
func MarshalPacket(p *packet.Packet) ([]byte, error) {
	v, err := FromPacket(p)
	if err != nil {
		return nil, err
	}
	return Marshal(v)
}

// Node is the editable, serializable form of a packet tree used for
// JSON/YAML output and as input to the encoder. Literal values are decimal
// strings so they survive any width.
type Node struct {
	Version    uint8  `json:"version" yaml:"version"`
	Op         string `json:"op" yaml:"op"`
	Value      string `json:"value,omitempty" yaml:"value,omitempty"`
	LengthType string `json:"length_type,omitempty" yaml:"length_type,omitempty"`
	Children   []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// ToNode converts a packet tree into a Node tree. Literals use Op "literal".
// A nil packet becomes the zero Node, which Node.Packet rejects.
func ToNode(p *packet.Packet) Node {
	if p == nil {
		return Node{}
	}
	switch body := p.Body.(type) {
	case *packet.Literal:
		return Node{Version: p.Version, Op: KindLiteral, Value: body.Int().String()}
	case *packet.Operator:
		n := Node{Version: p.Version, Op: body.Op.String(), LengthType: body.LengthType.String()}
		n.Children = make([]Node, len(body.Children))
		for i, child := range body.Children {
			n.Children[i] = ToNode(child)
		}
		return n
	default:
		return Node{Version: p.Version}
	}
}

// Packet converts a Node tree back into a packet tree. LengthType defaults
// to "bits". Arity is not checked here; the encoder and evaluator do that.
func (n Node) Packet() (*packet.Packet, error) {
	if n.Version > packet.MaxVersion {
		return nil, fmt.Errorf("version %d exceeds %d", n.Version, packet.MaxVersion)
	}
	if n.Op == KindLiteral {
		if len(n.Children) > 0 {
			return nil, fmt.Errorf("literal cannot have children")
		}
		value, ok := new(big.Int).SetString(n.Value, 10)
		if !ok || value.Sign() < 0 {
			return nil, fmt.Errorf("invalid literal value %q", n.Value)
		}
		return packet.NewLiteral(n.Version, value), nil
	}

	op, err := packet.ParseOpCode(n.Op)
	if err != nil {
		return nil, err
	}
	if n.Value != "" {
		return nil, fmt.Errorf("operator %s cannot have a value", n.Op)
	}
	lengthType := packet.LengthInBits
	switch n.LengthType {
	case "", packet.LengthInBits.String():
	case packet.LengthInPackets.String():
		lengthType = packet.LengthInPackets
	default:
		return nil, fmt.Errorf("unknown length_type %q", n.LengthType)
	}

	children := make([]*packet.Packet, len(n.Children))
	for i, c := range n.Children {
		child, err := c.Packet()
		if err != nil {
			return nil, fmt.Errorf("children[%d]: %w", i, err)
		}
		children[i] = child
	}
	return &packet.Packet{
		Version: n.Version,
		Body:    &packet.Operator{Op: op, LengthType: lengthType, Children: children},
	}, nil
}

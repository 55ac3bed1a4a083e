package packet

// Walk visits p and then each of its descendants in pre-order. depth is 0
// for p itself. Returning false from fn skips that packet's children.
func Walk(p *Packet, fn func(p *Packet, depth int) bool) {
	walk(p, 0, fn)
}

func walk(p *Packet, depth int, fn func(*Packet, int) bool) {
	if p == nil || !fn(p, depth) {
		return
	}
	for _, child := range p.Children() {
		walk(child, depth+1, fn)
	}
}

// Fold threads acc through a pre-order traversal of p.
func Fold[T any](p *Packet, acc T, fn func(acc T, p *Packet) T) T {
	Walk(p, func(p *Packet, _ int) bool {
		acc = fn(acc, p)
		return true
	})
	return acc
}

// VersionSum adds up the version field of every packet in the tree.
func VersionSum(p *Packet) uint64 {
	return Fold(p, uint64(0), func(total uint64, p *Packet) uint64 {
		return total + uint64(p.Version)
	})
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Packets   int `json:"packets" yaml:"packets"`
	Literals  int `json:"literals" yaml:"literals"`
	Operators int `json:"operators" yaml:"operators"`
	MaxDepth  int `json:"max_depth" yaml:"max_depth"`
}

// Summarize counts packets by kind and records the deepest level reached.
// A lone literal has MaxDepth 1.
func Summarize(p *Packet) Stats {
	var s Stats
	Walk(p, func(p *Packet, depth int) bool {
		s.Packets++
		if p.IsLiteral() {
			s.Literals++
		} else {
			s.Operators++
		}
		if depth+1 > s.MaxDepth {
			s.MaxDepth = depth + 1
		}
		return true
	})
	return s
}

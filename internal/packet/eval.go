package packet

import (
	"fmt"
	"math/big"
)

// Eval computes the value of the expression rooted at p.
//
// Trees produced by Parse always satisfy the arity rules. Hand-built trees
// that do not (a comparison without exactly two children, an operator with
// none, or a nil child) fail with INVALID_OPERATOR_ARITY and no value.
func Eval(p *Packet) (*big.Int, error) {
	if p == nil {
		return nil, fmt.Errorf("eval: nil packet")
	}
	switch body := p.Body.(type) {
	case *Literal:
		return new(big.Int).Set(body.Int()), nil
	case *Operator:
		return evalOperator(body)
	default:
		return nil, fmt.Errorf("eval: unknown packet body %T", p.Body)
	}
}

func evalOperator(op *Operator) (*big.Int, error) {
	if err := checkArity(op, -1); err != nil {
		return nil, err
	}
	values := make([]*big.Int, len(op.Children))
	for i, child := range op.Children {
		v, err := Eval(child)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	switch op.Op {
	case OpSum:
		acc := new(big.Int)
		for _, v := range values {
			acc.Add(acc, v)
		}
		return acc, nil
	case OpProduct:
		acc := big.NewInt(1)
		for _, v := range values {
			acc.Mul(acc, v)
		}
		return acc, nil
	case OpMin:
		acc := values[0]
		for _, v := range values[1:] {
			if v.Cmp(acc) < 0 {
				acc = v
			}
		}
		return acc, nil
	case OpMax:
		acc := values[0]
		for _, v := range values[1:] {
			if v.Cmp(acc) > 0 {
				acc = v
			}
		}
		return acc, nil
	case OpGreaterThan:
		return boolValue(values[0].Cmp(values[1]) > 0), nil
	case OpLessThan:
		return boolValue(values[0].Cmp(values[1]) < 0), nil
	case OpEqual:
		return boolValue(values[0].Cmp(values[1]) == 0), nil
	default:
		return nil, fmt.Errorf("eval: unknown operator %s", op.Op)
	}
}

func boolValue(b bool) *big.Int {
	if b {
		return big.NewInt(1)
	}
	return new(big.Int)
}

// Result holds both answers for one transmission.
type Result struct {
	VersionSum uint64
	Value      *big.Int
}

// Solve decodes hex and runs both traversals over the resulting tree.
func Solve(hex string, opts ...ParseOption) (*Packet, Result, error) {
	p, err := Decode(hex, opts...)
	if err != nil {
		return nil, Result{}, err
	}
	value, err := Eval(p)
	if err != nil {
		return nil, Result{}, err
	}
	return p, Result{VersionSum: VersionSum(p), Value: value}, nil
}

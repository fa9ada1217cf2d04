// Package motion defines the closed set of particle motion rules and the
// shared generator state they draw from.
package motion

import (
	"fmt"
	"strings"
)

// Kind identifies a motion rule.
type Kind uint8

const (
	KindStill Kind = iota
	KindRandomWalk
	KindHeavyTailedWalk
	KindSinusoidHorizontal
	KindSinusoidVertical
	KindSinusoidBoth
	KindConstantDirection
	KindGradientFlowA
	KindGradientFlowB
	numKinds
)

var kindNames = [numKinds]string{
	KindStill:              "still",
	KindRandomWalk:         "random-walk",
	KindHeavyTailedWalk:    "heavy-tailed-walk",
	KindSinusoidHorizontal: "sinusoid-horizontal",
	KindSinusoidVertical:   "sinusoid-vertical",
	KindSinusoidBoth:       "sinusoid-both",
	KindConstantDirection:  "constant-direction",
	KindGradientFlowA:      "gradient-flow-A",
	KindGradientFlowB:      "gradient-flow-B",
}

// String returns the canonical identifier.
func (k Kind) String() string {
	if k >= numKinds {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Kinds lists every rule kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// aliases maps lower-cased external identifiers to kinds. The short names
// are the ones older settings files use.
var aliases = map[string]Kind{
	"simple":    KindRandomWalk,
	"studentt":  KindHeavyTailedWalk,
	"cosy":      KindSinusoidHorizontal,
	"cosx":      KindSinusoidVertical,
	"cosxy":     KindSinusoidBoth,
	"direction": KindConstantDirection,
	"simplex":   KindGradientFlowA,
	"perlin":    KindGradientFlowB,
}

func init() {
	for k, name := range kindNames {
		aliases[strings.ToLower(name)] = Kind(k)
	}
}

// ParseKind resolves an external identifier. Unknown identifiers report
// false.
func ParseKind(id string) (Kind, bool) {
	k, ok := aliases[strings.ToLower(strings.TrimSpace(id))]
	return k, ok
}

// Rule is one motion rule. The set of implementations is closed.
type Rule interface {
	Kind() Kind
	isRule()
}

type (
	// Still leaves particles where they are.
	Still struct{}
	// RandomWalk adds a uniform step in [-1.5, 1.5) per axis.
	RandomWalk struct{}
	// HeavyTailedWalk adds a Student's-t step per axis.
	HeavyTailedWalk struct{}
	// SinusoidHorizontal drifts right while oscillating vertically.
	SinusoidHorizontal struct{}
	// SinusoidVertical drifts down while oscillating horizontally.
	SinusoidVertical struct{}
	// SinusoidBoth oscillates on both axes.
	SinusoidBoth struct{}
	// ConstantDirection adds a fixed displacement every frame.
	ConstantDirection struct{ DX, DY float64 }
	// GradientFlowA follows the simplex field with occasional jumps.
	GradientFlowA struct{}
	// GradientFlowB steers by an angle read from the time-evolving
	// gradient field.
	GradientFlowB struct{}
)

func (Still) Kind() Kind              { return KindStill }
func (RandomWalk) Kind() Kind         { return KindRandomWalk }
func (HeavyTailedWalk) Kind() Kind    { return KindHeavyTailedWalk }
func (SinusoidHorizontal) Kind() Kind { return KindSinusoidHorizontal }
func (SinusoidVertical) Kind() Kind   { return KindSinusoidVertical }
func (SinusoidBoth) Kind() Kind       { return KindSinusoidBoth }
func (ConstantDirection) Kind() Kind  { return KindConstantDirection }
func (GradientFlowA) Kind() Kind      { return KindGradientFlowA }
func (GradientFlowB) Kind() Kind      { return KindGradientFlowB }

func (Still) isRule()              {}
func (RandomWalk) isRule()         {}
func (HeavyTailedWalk) isRule()    {}
func (SinusoidHorizontal) isRule() {}
func (SinusoidVertical) isRule()   {}
func (SinusoidBoth) isRule()       {}
func (ConstantDirection) isRule()  {}
func (GradientFlowA) isRule()      {}
func (GradientFlowB) isRule()      {}

// FromKind builds the rule for k. dx and dy are used only by
// ConstantDirection.
func FromKind(k Kind, dx, dy float64) Rule {
	switch k {
	case KindRandomWalk:
		return RandomWalk{}
	case KindHeavyTailedWalk:
		return HeavyTailedWalk{}
	case KindSinusoidHorizontal:
		return SinusoidHorizontal{}
	case KindSinusoidVertical:
		return SinusoidVertical{}
	case KindSinusoidBoth:
		return SinusoidBoth{}
	case KindConstantDirection:
		return ConstantDirection{DX: dx, DY: dy}
	case KindGradientFlowA:
		return GradientFlowA{}
	case KindGradientFlowB:
		return GradientFlowB{}
	default:
		return Still{}
	}
}

// Parse resolves an external identifier to a rule. Unknown identifiers
// fall back to Still.
func Parse(id string, dx, dy float64) Rule {
	k, ok := ParseKind(id)
	if !ok {
		return Still{}
	}
	return FromKind(k, dx, dy)
}

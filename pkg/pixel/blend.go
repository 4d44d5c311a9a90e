package pixel

// BlendOp combines an incoming pixel into an existing one. Implementations are
// stateless and may be shared by any number of layers.
type BlendOp interface {
	Blend(existing, incoming Pixel, amount float32) Pixel
	String() string
}

var (
	MaxOp      BlendOp = Max{}
	MultiplyOp BlendOp = Multiply{}
	AddOp      BlendOp = Add{}
	LerpOp     BlendOp = Lerp{}
)

// Max keeps the brighter of the existing channel and the incoming channel
// weighted by amount.
type Max struct{}

func (Max) Blend(existing, incoming Pixel, amount float32) Pixel {
	return Pixel{
		R: max32(existing.R, incoming.R*amount),
		G: max32(existing.G, incoming.G*amount),
		B: max32(existing.B, incoming.B*amount),
	}
}

func (Max) String() string { return "max" }

// Multiply tints like a gel: white is transparent, and amount fades the
// filter in from no effect at 0 to a full channel product at 1.
type Multiply struct{}

func (Multiply) Blend(existing, incoming Pixel, amount float32) Pixel {
	keep := 1 - amount
	return Pixel{
		R: existing.R * (keep + amount*incoming.R),
		G: existing.G * (keep + amount*incoming.G),
		B: existing.B * (keep + amount*incoming.B),
	}
}

func (Multiply) String() string { return "multiply" }

type Add struct{}

func (Add) Blend(existing, incoming Pixel, amount float32) Pixel {
	return Pixel{
		R: existing.R + incoming.R*amount,
		G: existing.G + incoming.G*amount,
		B: existing.B + incoming.B*amount,
	}
}

func (Add) String() string { return "add" }

// Lerp cross-fades linearly from existing to incoming.
type Lerp struct{}

func (Lerp) Blend(existing, incoming Pixel, amount float32) Pixel {
	keep := 1 - amount
	return Pixel{
		R: existing.R*keep + incoming.R*amount,
		G: existing.G*keep + incoming.G*amount,
		B: existing.B*keep + incoming.B*amount,
	}
}

func (Lerp) String() string { return "lerp" }

func ParseBlendOp(name string) (BlendOp, bool) {
	switch name {
	case "max", "":
		return MaxOp, true
	case "multiply", "mult":
		return MultiplyOp, true
	case "add":
		return AddOp, true
	case "lerp":
		return LerpOp, true
	}
	return nil, false
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

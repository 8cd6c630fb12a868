package iterator

// Category is the capability level of an iterator.
//
//	random-access ⊂ bidirectional ⊂ forward ⊂ input
//	output (disjoint branch)
type Category uint8

const (
	InputCategory Category = iota + 1
	OutputCategory
	ForwardCategory
	BidirectionalCategory
	RandomAccessCategory
)

func (c Category) String() string {
	switch c {
	case InputCategory:
		return "input"
	case OutputCategory:
		return "output"
	case ForwardCategory:
		return "forward"
	case BidirectionalCategory:
		return "bidirectional"
	case RandomAccessCategory:
		return "random-access"
	default:
	}
	return "unknown"
}

// Refines reports whether an iterator of category c can be used
// where base is required.
func (c Category) Refines(base Category) bool {
	if c == OutputCategory || base == OutputCategory {
		return c == base
	}
	if base == InputCategory {
		return c == InputCategory || c >= ForwardCategory
	}
	return c >= base && base >= ForwardCategory
}

// Tags are zero-size markers. An iterator declares its category by
// embedding one of them, each tag embeds the one it refines.

type InputTag struct{}

func (InputTag) Category() Category { return InputCategory }

type OutputTag struct{}

func (OutputTag) Category() Category { return OutputCategory }

type ForwardTag struct{ InputTag }

func (ForwardTag) Category() Category { return ForwardCategory }

type BidirectionalTag struct{ ForwardTag }

func (BidirectionalTag) Category() Category { return BidirectionalCategory }

type RandomAccessTag struct{ BidirectionalTag }

func (RandomAccessTag) Category() Category { return RandomAccessCategory }

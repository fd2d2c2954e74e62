package expression

// node is a parsed formula. Nodes are immutable and can be shared between
// evaluations.
type node interface {
	eval(env *env) (float64, error)
}

type numberNode struct {
	value float64
}

// variableNode is the free variable, written x or 𝑥.
type variableNode struct {
	pos int
}

// identNode is a bare name that is neither the variable nor a constant.
type identNode struct {
	name string
	pos  int
}

type unaryNode struct {
	op      string
	operand node
}

type binaryNode struct {
	op          string
	left, right node
}

// compareNode holds a comparison chain such as 0 < x <= 10.
type compareNode struct {
	ops      []string
	operands []node
}

type logicNode struct {
	op          string
	left, right node
}

type conditionalNode struct {
	cond, then, otherwise node
}

type callNode struct {
	name string
	args []node
	pos  int
}

package types

// NodeType identifies the kind of an AST node.
type NodeType string

// Undefined is the distinguished "absent value" produced by member access on
// a null or non-object receiver. It is distinct from nil, which represents an
// explicit null in the context data.
type Undefined struct{}

// MarshalJSON implements json.Marshaler for Undefined.
// JSON has no undefined, so it serializes to null.
func (Undefined) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// UndefinedValue is the singleton used for the absent value.
var UndefinedValue = Undefined{}

// AST node types for the show/hide expression language.
const (
	// Literals
	NodeString  NodeType = "string"
	NodeNumber  NodeType = "number"
	NodeBoolean NodeType = "boolean"
	NodeNull    NodeType = "null"

	// Context access
	NodeName   NodeType = "name"   // bare identifier, looked up in the context
	NodeMember NodeType = "member" // expr.property

	// Constructors and calls
	NodeArray NodeType = "array" // [a, b, c]
	NodeCall  NodeType = "call"  // expr.method(args)

	// Operators
	NodeBinary NodeType = "binary" // ==, ===, <, &&, ||, ...
	NodeUnary  NodeType = "unary"  // !

	// Grouping
	NodeGroup NodeType = "group" // ( expr )
)

// ASTNode represents a node in the Abstract Syntax Tree.
//
// Nodes form a tree with exclusive ownership of their children and are never
// mutated after parsing, so a parsed tree may be cached and evaluated
// concurrently against many contexts.
type ASTNode struct {
	Type     NodeType
	Value    any     // NodeBoolean payload
	StrValue string  // string literal, identifier/property/method name, or operator lexeme
	NumValue float64 // NodeNumber payload

	LHS       *ASTNode   // binary left, member/call receiver, unary operand, group inner
	RHS       *ASTNode   // binary right
	Arguments []*ASTNode // call arguments, array elements
}

// NewASTNode creates a new AST node of the specified type.
func NewASTNode(nodeType NodeType) *ASTNode {
	return &ASTNode{Type: nodeType}
}

// String returns a string representation of the node type.
func (n *ASTNode) String() string {
	return string(n.Type)
}

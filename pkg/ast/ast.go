package ast

type NodeType string

const (
	NodeNumberLiteral       NodeType = "NumberLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeVariableReference   NodeType = "VariableReference"
	NodeQueryExpression     NodeType = "QueryExpression"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeLogicalExpression   NodeType = "LogicalExpression"
	NodeNotExpression       NodeType = "NotExpression"
	NodeCommand             NodeType = "Command"
	NodeAssignment          NodeType = "Assignment"
	NodeIfStatement         NodeType = "IfStatement"
	NodeWhileStatement      NodeType = "WhileStatement"
	NodeProcedureDefinition NodeType = "ProcedureDefinition"
	NodeProcedureCall       NodeType = "ProcedureCall"
	NodeScript              NodeType = "Script"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Expressions

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type VariableReference struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewVariableReference(name string) *VariableReference {
	return &VariableReference{nodeImpl: newNodeImpl(NodeVariableReference), Name: name}
}

// QueryKind identifies a zero-argument read of turtle or pen state.
type QueryKind string

const (
	QueryXCor    QueryKind = "XCOR"
	QueryYCor    QueryKind = "YCOR"
	QueryHeading QueryKind = "HEADING"
	QueryColor   QueryKind = "COLOR"
)

type QueryExpression struct {
	nodeImpl
	expressionMarker

	Query QueryKind `json:"query"`
}

func NewQueryExpression(query QueryKind) *QueryExpression {
	return &QueryExpression{nodeImpl: newNodeImpl(NodeQueryExpression), Query: query}
}

// BinaryOperator covers prefix arithmetic and comparison operators.
type BinaryOperator string

const (
	OpAdd BinaryOperator = "+"
	OpSub BinaryOperator = "-"
	OpMul BinaryOperator = "*"
	OpDiv BinaryOperator = "/"
	OpEq  BinaryOperator = "EQ"
	OpNe  BinaryOperator = "NE"
	OpLt  BinaryOperator = "LT"
	OpGt  BinaryOperator = "GT"
)

// IsComparison reports whether the operator yields a boolean result.
func (op BinaryOperator) IsComparison() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpGt:
		return true
	default:
		return false
	}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryExpression(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// LogicalOperator combines boolean operands; both sides always evaluate.
type LogicalOperator string

const (
	OpAnd LogicalOperator = "AND"
	OpOr  LogicalOperator = "OR"
)

type LogicalExpression struct {
	nodeImpl
	expressionMarker

	Operator LogicalOperator `json:"operator"`
	Left     Expression      `json:"left"`
	Right    Expression      `json:"right"`
}

func NewLogicalExpression(operator LogicalOperator, left, right Expression) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression), Operator: operator, Left: left, Right: right}
}

type NotExpression struct {
	nodeImpl
	expressionMarker

	Operand Expression `json:"operand"`
}

func NewNotExpression(operand Expression) *NotExpression {
	return &NotExpression{nodeImpl: newNodeImpl(NodeNotExpression), Operand: operand}
}

// Statements

// CommandKind names a fixed-arity turtle or pen command.
type CommandKind string

const (
	CmdForward     CommandKind = "FORWARD"
	CmdBack        CommandKind = "BACK"
	CmdLeft        CommandKind = "LEFT"
	CmdRight       CommandKind = "RIGHT"
	CmdTurn        CommandKind = "TURN"
	CmdSetHeading  CommandKind = "SETHEADING"
	CmdSetX        CommandKind = "SETX"
	CmdSetY        CommandKind = "SETY"
	CmdPenUp       CommandKind = "PENUP"
	CmdPenDown     CommandKind = "PENDOWN"
	CmdSetPenColor CommandKind = "SETPENCOLOR"
)

// CommandArity maps every command keyword to its operand count.
var CommandArity = map[CommandKind]int{
	CmdForward:     1,
	CmdBack:        1,
	CmdLeft:        1,
	CmdRight:       1,
	CmdTurn:        1,
	CmdSetHeading:  1,
	CmdSetX:        1,
	CmdSetY:        1,
	CmdPenUp:       0,
	CmdPenDown:     0,
	CmdSetPenColor: 1,
}

type Command struct {
	nodeImpl
	statementMarker

	Kind CommandKind  `json:"kind"`
	Args []Expression `json:"args,omitempty"`
}

func NewCommand(kind CommandKind, args []Expression) *Command {
	return &Command{nodeImpl: newNodeImpl(NodeCommand), Kind: kind, Args: args}
}

// AssignmentKind distinguishes MAKE from ADDASSIGN.
type AssignmentKind string

const (
	AssignMake AssignmentKind = "MAKE"
	AssignAdd  AssignmentKind = "ADDASSIGN"
)

type Assignment struct {
	nodeImpl
	statementMarker

	Kind  AssignmentKind `json:"kind"`
	Name  string         `json:"name"`
	Value Expression     `json:"value"`
}

func NewAssignment(kind AssignmentKind, name string, value Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Kind: kind, Name: name, Value: value}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression  `json:"condition"`
	Block     []Statement `json:"block"`
}

func NewIfStatement(condition Expression, block []Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Block: block}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression  `json:"condition"`
	Block     []Statement `json:"block"`
}

func NewWhileStatement(condition Expression, block []Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: condition, Block: block}
}

type ProcedureDefinition struct {
	nodeImpl
	statementMarker

	Name   string      `json:"name"`
	Params []string    `json:"params,omitempty"`
	Body   []Statement `json:"body"`
}

func NewProcedureDefinition(name string, params []string, body []Statement) *ProcedureDefinition {
	return &ProcedureDefinition{nodeImpl: newNodeImpl(NodeProcedureDefinition), Name: name, Params: params, Body: body}
}

type ProcedureCall struct {
	nodeImpl
	statementMarker

	Name string       `json:"name"`
	Args []Expression `json:"args,omitempty"`
}

func NewProcedureCall(name string, args []Expression) *ProcedureCall {
	return &ProcedureCall{nodeImpl: newNodeImpl(NodeProcedureCall), Name: name, Args: args}
}

// Script root

type Script struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewScript(body []Statement) *Script {
	return &Script{nodeImpl: newNodeImpl(NodeScript), Body: body}
}
